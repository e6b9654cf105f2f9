package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type AppointmentService struct {
	AppointmentRepo *repository.AppointmentRepository
	EnrollmentRepo  *repository.EnrollmentRepository
}

func NewAppointmentService(appointmentRepo *repository.AppointmentRepository, enrollmentRepo *repository.EnrollmentRepository) *AppointmentService {
	return &AppointmentService{
		AppointmentRepo: appointmentRepo,
		EnrollmentRepo:  enrollmentRepo,
	}
}

type CreateAppointmentReq struct {
	EnrollmentID uint      `json:"enrollmentId" binding:"required"`
	Date         time.Time `json:"date" binding:"required"`
	StartHour    string    `json:"startHour" binding:"required"`
	EndHour      string    `json:"endHour" binding:"required"`
}

// canManageEnrollment 指派教练本人或该驾校管理员可以操作课程
func canManageEnrollment(claims *util.Claims, enrollment *model.Enrollment) bool {
	switch claims.Role {
	case model.Instructor:
		return enrollment.InstructorID != nil && *enrollment.InstructorID == claims.UserID
	case model.SchoolAdmin:
		return claims.SchoolID != nil && *claims.SchoolID == enrollment.SchoolID
	}
	return false
}

// canViewEnrollment 在管理权限之外，学员本人也可以查看
func canViewEnrollment(claims *util.Claims, enrollment *model.Enrollment) bool {
	if claims.Role == model.Student && enrollment.StudentID == claims.UserID {
		return true
	}
	return canManageEnrollment(claims, enrollment)
}

// Create 预约一节驾驶课。报名档案必须有效，教练同时段不能有别的课。
func (s *AppointmentService) Create(claims *util.Claims, req CreateAppointmentReq) (*model.Appointment, error) {
	if !validHourRange(req.StartHour, req.EndHour) {
		return nil, util.ErrInvalidDateRange
	}

	enrollment, err := s.EnrollmentRepo.FindByID(req.EnrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}

	if !canManageEnrollment(claims, enrollment) {
		return nil, util.ErrPermissionDenied
	}
	if enrollment.Status != model.EnrollmentActive {
		return nil, util.ErrEnrollmentNotActive
	}

	if enrollment.InstructorID != nil {
		overlapping, err := s.AppointmentRepo.CountOverlapping(*enrollment.InstructorID, req.Date, req.StartHour, req.EndHour)
		if err != nil {
			return nil, err
		}
		if overlapping > 0 {
			return nil, util.ErrTimeSlotTaken
		}
	}

	appointment := &model.Appointment{
		EnrollmentID: req.EnrollmentID,
		Date:         req.Date,
		StartHour:    req.StartHour,
		EndHour:      req.EndHour,
	}
	return appointment, s.AppointmentRepo.Create(appointment)
}

func validHourRange(start, end string) bool {
	s, err := time.Parse(util.HourFormat, start)
	if err != nil {
		return false
	}
	e, err := time.Parse(util.HourFormat, end)
	if err != nil {
		return false
	}
	return s.Before(e)
}

func (s *AppointmentService) GetByID(claims *util.Claims, id uint) (*model.Appointment, error) {
	appointment, err := s.AppointmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if appointment.Enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}
	if !canViewEnrollment(claims, appointment.Enrollment) {
		return nil, util.ErrPermissionDenied
	}
	return appointment, nil
}

// Cancel 取消课程。已定稿的评分记录把课程钉住，不允许再取消。
func (s *AppointmentService) Cancel(claims *util.Claims, id uint) error {
	appointment, err := s.GetByID(claims, id)
	if err != nil {
		return err
	}
	if !canManageEnrollment(claims, appointment.Enrollment) {
		return util.ErrPermissionDenied
	}

	evaluated, err := s.AppointmentRepo.HasEvaluation(id)
	if err != nil {
		return err
	}
	if evaluated {
		return util.ErrAppointmentEvaluated
	}

	return s.AppointmentRepo.Delete(id)
}

func (s *AppointmentService) ListByEnrollment(claims *util.Claims, enrollmentID uint) ([]model.Appointment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !canViewEnrollment(claims, enrollment) {
		return nil, util.ErrPermissionDenied
	}
	return s.AppointmentRepo.ListByEnrollment(enrollmentID)
}

// ListInstructorDay 教练某一天的课程表
func (s *AppointmentService) ListInstructorDay(instructorID uint, date time.Time) ([]model.Appointment, error) {
	return s.AppointmentRepo.ListByInstructorAndDate(instructorID, date)
}
