package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"driveflow_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库。唯一索引冲突要和生产环境一样
// 翻译成 gorm.ErrDuplicatedKey，评分防重的用例依赖这一点。
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

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("create %T: %v", value, err)
	}
}

// lessonFixture 一套最小的驾校数据：驾校、准驾车型和它的评分表、班型、
// 教练和学员、生效的报名档案，以及一节已预约的课。
type lessonFixture struct {
	school      model.School
	license     model.License
	template    model.ExamTemplate
	items       []model.TemplateItem
	category    model.TeachingCategory
	instructor  model.User
	student     model.User
	enrollment  model.Enrollment
	appointment model.Appointment
}

func newLessonFixture(t *testing.T, db *gorm.DB) *lessonFixture {
	t.Helper()

	f := &lessonFixture{}

	f.school = model.School{Name: "东城驾校", Email: "dongcheng@example.com", City: "北京"}
	mustCreate(t, db, &f.school)

	f.license = model.License{Type: "C1", Description: "小型手动挡汽车"}
	mustCreate(t, db, &f.license)

	f.template = model.ExamTemplate{LicenseID: f.license.ID, MaxPoints: 21}
	mustCreate(t, db, &f.template)
	f.items = []model.TemplateItem{
		{TemplateID: f.template.ID, Description: "起步时车辆后溜", PenaltyPoints: 3, OrderIndex: 1},
		{TemplateID: f.template.ID, Description: "变更车道前未通过后视镜观察", PenaltyPoints: 5, OrderIndex: 2},
		{TemplateID: f.template.ID, Description: "未系安全带", PenaltyPoints: 21, OrderIndex: 3},
	}
	for i := range f.items {
		mustCreate(t, db, &f.items[i])
	}

	f.instructor = model.User{Name: "王建国", Email: "wang@example.com", Password: "x", Role: model.Instructor, SchoolID: &f.school.ID}
	mustCreate(t, db, &f.instructor)

	f.student = model.User{Name: "李明", Email: "liming@example.com", Password: "x", Role: model.Student}
	mustCreate(t, db, &f.student)

	f.category = model.TeachingCategory{SchoolID: f.school.ID, LicenseID: f.license.ID, SessionCost: 180, ScholarshipPrice: 3980}
	mustCreate(t, db, &f.category)

	f.enrollment = model.Enrollment{
		SchoolID:           f.school.ID,
		StudentID:          f.student.ID,
		InstructorID:       &f.instructor.ID,
		TeachingCategoryID: f.category.ID,
		Status:             model.EnrollmentActive,
	}
	mustCreate(t, db, &f.enrollment)

	f.appointment = f.bookLesson(t, db, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "09:00", "10:30")

	return f
}

func (f *lessonFixture) bookLesson(t *testing.T, db *gorm.DB, date time.Time, startHour, endHour string) model.Appointment {
	t.Helper()
	appointment := model.Appointment{
		EnrollmentID: f.enrollment.ID,
		Date:         date,
		StartHour:    startHour,
		EndHour:      endHour,
	}
	mustCreate(t, db, &appointment)
	return appointment
}

func claimsFor(user *model.User) *util.Claims {
	return &util.Claims{UserID: user.ID, Role: user.Role, SchoolID: user.SchoolID, Email: user.Email}
}

func newTestEvaluationService(db *gorm.DB) *EvaluationService {
	templateSvc := NewExamTemplateService(repository.NewExamTemplateRepository(db), nil)
	return NewEvaluationService(
		repository.NewEvaluationRepository(db),
		repository.NewAppointmentRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewUserRepository(db),
		templateSvc,
	)
}
