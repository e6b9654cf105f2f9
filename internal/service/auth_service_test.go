package service

import (
	"errors"
	"testing"
	"time"

	"driveflow_backend/internal/config"
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
)

func TestRegisterForcesStudentRole(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	svc := NewAuthService(repository.NewUserRepository(db), cfg)

	user := &model.User{Name: "李明", Email: "liming@example.com", Password: "changeme8", Role: model.SuperAdmin}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Student {
		t.Fatalf("role = %s, want %s", user.Role, model.Student)
	}
	if user.Password == "changeme8" {
		t.Fatal("password stored in plain text")
	}

	// 邮箱查重
	dup := &model.User{Name: "李明", Email: "liming@example.com", Password: "changeme8"}
	if err := svc.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate register err = %v, want %v", err, util.ErrEmailRegistered)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	svc := NewAuthService(repository.NewUserRepository(db), cfg)

	user := &model.User{Name: "李明", Email: "liming@example.com", Password: "changeme8"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, err := svc.Login("liming@example.com", "changeme8")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Student {
		t.Fatalf("claims = %+v, want user %d student", claims, user.ID)
	}

	if _, err := svc.Login("liming@example.com", "wrong-password"); err == nil {
		t.Fatal("wrong password accepted")
	}
	if _, err := svc.Login("nobody@example.com", "changeme8"); err == nil {
		t.Fatal("unknown email accepted")
	}

	// 登录成功后记录最近登录时间
	var stored model.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.LastLogin == nil {
		t.Fatal("last_login not updated")
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	svc := NewAuthService(repository.NewUserRepository(db), cfg)

	user := &model.User{Name: "李明", Email: "liming@example.com", Password: "changeme8"}
	if err := svc.Register(user); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := db.Model(&model.User{}).Where("id = ?", user.ID).Update("disabled", true).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}

	if _, err := svc.Login("liming@example.com", "changeme8"); !errors.Is(err, util.ErrAccountDisabled) {
		t.Fatalf("err = %v, want %v", err, util.ErrAccountDisabled)
	}
}
