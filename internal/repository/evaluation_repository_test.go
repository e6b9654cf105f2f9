package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"driveflow_backend/internal/model"
	"driveflow_backend/pkg/database"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// 并发提交评分时靠 appointment_id 的唯一索引兜底，
// 第二条插入必须翻译成 gorm.ErrDuplicatedKey
func TestEvaluationUniquePerAppointment(t *testing.T) {
	db := newTestDB(t)
	repo := NewEvaluationRepository(db)

	now := time.Now()
	first := &model.Evaluation{
		AppointmentID: 42,
		TemplateID:    1,
		Mistakes:      datatypes.JSON("[]"),
		TotalPoints:   0,
		Result:        model.EvaluationOK,
		FinalizedAt:   &now,
	}
	if err := repo.Create(first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := &model.Evaluation{
		AppointmentID: 42,
		TemplateID:    1,
		Mistakes:      datatypes.JSON("[]"),
		TotalPoints:   6,
		Result:        model.EvaluationOK,
		FinalizedAt:   &now,
	}
	if err := repo.Create(second); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second insert err = %v, want %v", err, gorm.ErrDuplicatedKey)
	}

	var count int64
	if err := db.Model(&model.Evaluation{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("evaluations = %d, want 1", count)
	}

	// 别的课程不受影响
	third := &model.Evaluation{
		AppointmentID: 43,
		TemplateID:    1,
		Mistakes:      datatypes.JSON("[]"),
		TotalPoints:   3,
		Result:        model.EvaluationOK,
		FinalizedAt:   &now,
	}
	if err := repo.Create(third); err != nil {
		t.Fatalf("third insert: %v", err)
	}
}

func TestEvaluationExistsByAppointmentID(t *testing.T) {
	db := newTestDB(t)
	repo := NewEvaluationRepository(db)

	exists, err := repo.ExistsByAppointmentID(7)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("exists = true before insert")
	}

	now := time.Now()
	if err := repo.Create(&model.Evaluation{AppointmentID: 7, TemplateID: 1, Mistakes: datatypes.JSON("[]"), Result: model.EvaluationOK, FinalizedAt: &now}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	exists, err = repo.ExistsByAppointmentID(7)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("exists = false after insert")
	}
}
