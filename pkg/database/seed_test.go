package database

import (
	"fmt"
	"strings"
	"testing"

	"driveflow_backend/internal/model"

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
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count %T: %v", value, err)
	}
	return count
}

func TestSeedReferenceDataIdempotent(t *testing.T) {
	db := newTestDB(t)

	for round := 1; round <= 2; round++ {
		if err := SeedReferenceData(db); err != nil {
			t.Fatalf("seed round %d: %v", round, err)
		}
	}

	if got := countRows(t, db, &model.License{}); got != 3 {
		t.Fatalf("licenses = %d, want 3", got)
	}
	if got := countRows(t, db, &model.ExamTemplate{}); got != 3 {
		t.Fatalf("templates = %d, want 3", got)
	}
	if got := countRows(t, db, &model.TemplateItem{}); got != 23 {
		t.Fatalf("template items = %d, want 23", got)
	}

	var admins int64
	if err := db.Model(&model.User{}).Where("role = ?", model.SuperAdmin).Count(&admins).Error; err != nil {
		t.Fatalf("count admins: %v", err)
	}
	if admins != 1 {
		t.Fatalf("super admins = %d, want 1", admins)
	}
}

func TestSeedTemplateMatchesCatalogue(t *testing.T) {
	db := newTestDB(t)
	if err := SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var license model.License
	if err := db.Where("type = ?", "C1").First(&license).Error; err != nil {
		t.Fatalf("load C1 license: %v", err)
	}
	var template model.ExamTemplate
	if err := db.Where("license_id = ?", license.ID).First(&template).Error; err != nil {
		t.Fatalf("load C1 template: %v", err)
	}
	if template.MaxPoints != 21 {
		t.Fatalf("C1 max points = %d, want 21", template.MaxPoints)
	}

	var items []model.TemplateItem
	if err := db.Where("template_id = ?", template.ID).Order("order_index ASC").Find(&items).Error; err != nil {
		t.Fatalf("load C1 items: %v", err)
	}
	if len(items) != 9 {
		t.Fatalf("C1 items = %d, want 9", len(items))
	}
	if items[0].Description != "起步时车辆后溜" || items[0].PenaltyPoints != 3 {
		t.Fatalf("first item = %q/%d, want 起步时车辆后溜/3", items[0].Description, items[0].PenaltyPoints)
	}
	last := items[len(items)-1]
	if last.Description != "未系安全带" || last.PenaltyPoints != 21 {
		t.Fatalf("last item = %q/%d, want 未系安全带/21", last.Description, last.PenaltyPoints)
	}
}

// 已经有平台管理员时不再创建默认账号
func TestSeedSkipsDefaultAdminWhenOneExists(t *testing.T) {
	db := newTestDB(t)

	existing := model.User{Name: "运维", Email: "ops@example.com", Password: "x", Role: model.SuperAdmin}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("create existing admin: %v", err)
	}

	if err := SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", "admin@driveflow.cn").Count(&count).Error; err != nil {
		t.Fatalf("count default admin: %v", err)
	}
	if count != 0 {
		t.Fatal("default admin created despite existing super admin")
	}
}
