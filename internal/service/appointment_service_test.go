package service

import (
	"errors"
	"testing"
	"time"

	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"

	"gorm.io/gorm"
)

func newTestAppointmentService(db *gorm.DB) *AppointmentService {
	return NewAppointmentService(
		repository.NewAppointmentRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

func TestCreateAppointmentGuardsInstructorSlot(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestAppointmentService(db)
	claims := claimsFor(&f.instructor)

	// fixture 里 3月2日 09:00-10:30 已有一节课
	day := f.appointment.Date

	_, err := svc.Create(claims, CreateAppointmentReq{
		EnrollmentID: f.enrollment.ID,
		Date:         day,
		StartHour:    "10:00",
		EndHour:      "11:30",
	})
	if !errors.Is(err, util.ErrTimeSlotTaken) {
		t.Fatalf("overlapping slot err = %v, want %v", err, util.ErrTimeSlotTaken)
	}

	// 首尾相接不算重叠
	if _, err := svc.Create(claims, CreateAppointmentReq{
		EnrollmentID: f.enrollment.ID,
		Date:         day,
		StartHour:    "10:30",
		EndHour:      "12:00",
	}); err != nil {
		t.Fatalf("adjacent slot: %v", err)
	}

	// 换一天同一时段没有冲突
	if _, err := svc.Create(claims, CreateAppointmentReq{
		EnrollmentID: f.enrollment.ID,
		Date:         day.AddDate(0, 0, 1),
		StartHour:    "09:00",
		EndHour:      "10:30",
	}); err != nil {
		t.Fatalf("next day slot: %v", err)
	}
}

func TestCreateAppointmentValidations(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestAppointmentService(db)
	claims := claimsFor(&f.instructor)
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Create(claims, CreateAppointmentReq{EnrollmentID: f.enrollment.ID, Date: day, StartHour: "1030", EndHour: "12:00"}); !errors.Is(err, util.ErrInvalidDateRange) {
		t.Fatalf("malformed hour err = %v, want %v", err, util.ErrInvalidDateRange)
	}
	if _, err := svc.Create(claims, CreateAppointmentReq{EnrollmentID: f.enrollment.ID, Date: day, StartHour: "12:00", EndHour: "10:30"}); !errors.Is(err, util.ErrInvalidDateRange) {
		t.Fatalf("reversed hours err = %v, want %v", err, util.ErrInvalidDateRange)
	}
	if _, err := svc.Create(claims, CreateAppointmentReq{EnrollmentID: 9999, Date: day, StartHour: "09:00", EndHour: "10:30"}); !errors.Is(err, util.ErrEnrollmentNotFound) {
		t.Fatalf("missing enrollment err = %v, want %v", err, util.ErrEnrollmentNotFound)
	}

	// 学员不能自己约课
	if _, err := svc.Create(claimsFor(&f.student), CreateAppointmentReq{EnrollmentID: f.enrollment.ID, Date: day, StartHour: "09:00", EndHour: "10:30"}); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("student create err = %v, want %v", err, util.ErrPermissionDenied)
	}

	// 已结业的档案不能再约课
	f.enrollment.Status = model.EnrollmentFinished
	if err := db.Save(&f.enrollment).Error; err != nil {
		t.Fatalf("finish enrollment: %v", err)
	}
	if _, err := svc.Create(claims, CreateAppointmentReq{EnrollmentID: f.enrollment.ID, Date: day, StartHour: "09:00", EndHour: "10:30"}); !errors.Is(err, util.ErrEnrollmentNotActive) {
		t.Fatalf("finished enrollment err = %v, want %v", err, util.ErrEnrollmentNotActive)
	}
}

func TestCancelAppointment(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestAppointmentService(db)
	claims := claimsFor(&f.instructor)

	if err := svc.Cancel(claims, f.appointment.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	var gone model.Appointment
	if err := db.First(&gone, f.appointment.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("appointment still visible after cancel: %v", err)
	}

	// 学员无权取消
	lesson := f.bookLesson(t, db, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "09:00", "10:30")
	if err := svc.Cancel(claimsFor(&f.student), lesson.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("student cancel err = %v, want %v", err, util.ErrPermissionDenied)
	}
}

// 已定稿的评分把课程钉住，不允许再取消
func TestCancelAppointmentBlockedAfterEvaluation(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestAppointmentService(db)
	evalSvc := newTestEvaluationService(db)

	if _, err := evalSvc.Submit(claimsFor(&f.instructor), f.appointment.ID, SubmitEvaluationReq{MaxPoints: 21}); err != nil {
		t.Fatalf("submit evaluation: %v", err)
	}

	if err := svc.Cancel(claimsFor(&f.instructor), f.appointment.ID); !errors.Is(err, util.ErrAppointmentEvaluated) {
		t.Fatalf("cancel err = %v, want %v", err, util.ErrAppointmentEvaluated)
	}
}

func TestListInstructorDay(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestAppointmentService(db)

	day := f.appointment.Date
	afternoon := f.bookLesson(t, db, day, "14:00", "15:30")
	f.bookLesson(t, db, day.AddDate(0, 0, 1), "09:00", "10:30")

	lessons, err := svc.ListInstructorDay(f.instructor.ID, day)
	if err != nil {
		t.Fatalf("list day: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("lessons = %d, want 2", len(lessons))
	}
	// 按开始时间升序
	if lessons[0].ID != f.appointment.ID || lessons[1].ID != afternoon.ID {
		t.Fatalf("order = [%d %d], want [%d %d]", lessons[0].ID, lessons[1].ID, f.appointment.ID, afternoon.ID)
	}
}
