package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CategoryRepo   *repository.TeachingCategoryRepository
	VehicleRepo    *repository.VehicleRepository
	UserRepo       *repository.UserRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	categoryRepo *repository.TeachingCategoryRepository,
	vehicleRepo *repository.VehicleRepository,
	userRepo *repository.UserRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CategoryRepo:   categoryRepo,
		VehicleRepo:    vehicleRepo,
		UserRepo:       userRepo,
	}
}

type CreateEnrollmentReq struct {
	StudentID            uint       `json:"studentId" binding:"required"`
	TeachingCategoryID   uint       `json:"teachingCategoryId" binding:"required"`
	StartDate            *time.Time `json:"startDate"`
	MedicalRecordExpiry  *time.Time `json:"medicalRecordExpiry"`
	CriminalRecordExpiry *time.Time `json:"criminalRecordExpiry"`
	ScholarshipPayment   bool       `json:"scholarshipPayment"`
}

// Create 建立报名档案。班型必须属于操作者的驾校，学员必须是学员角色。
func (s *EnrollmentService) Create(schoolID uint, req CreateEnrollmentReq) (*model.Enrollment, error) {
	category, err := s.CategoryRepo.FindByID(req.TeachingCategoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}

	student, err := s.UserRepo.FindByID(req.StudentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.Role != model.Student {
		return nil, util.ErrStudentNotFound
	}

	enrollment := &model.Enrollment{
		SchoolID:             schoolID,
		StudentID:            req.StudentID,
		TeachingCategoryID:   req.TeachingCategoryID,
		Status:               model.EnrollmentActive,
		StartDate:            req.StartDate,
		MedicalRecordExpiry:  req.MedicalRecordExpiry,
		CriminalRecordExpiry: req.CriminalRecordExpiry,
		ScholarshipPayment:   req.ScholarshipPayment,
	}
	return enrollment, s.EnrollmentRepo.Create(enrollment)
}

// GetByID 查询报名档案。schoolID 非 0 时校验归属驾校。
func (s *EnrollmentService) GetByID(id uint, schoolID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if schoolID != 0 && enrollment.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}
	return enrollment, nil
}

// AssignInstructor 为报名档案指派教练，教练必须是同驾校的教练账号
func (s *EnrollmentService) AssignInstructor(schoolID, enrollmentID, instructorID uint) (*model.Enrollment, error) {
	enrollment, err := s.GetByID(enrollmentID, schoolID)
	if err != nil {
		return nil, err
	}

	instructor, err := s.UserRepo.FindByID(instructorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if instructor.Role != model.Instructor || instructor.SchoolID == nil || *instructor.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}

	enrollment.InstructorID = &instructorID
	return enrollment, s.EnrollmentRepo.Update(enrollment)
}

// AssignVehicle 为报名档案指派教练车，车辆必须属于同驾校
func (s *EnrollmentService) AssignVehicle(schoolID, enrollmentID, vehicleID uint) (*model.Enrollment, error) {
	enrollment, err := s.GetByID(enrollmentID, schoolID)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.VehicleRepo.FindByID(vehicleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	if vehicle.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}

	enrollment.VehicleID = &vehicleID
	return enrollment, s.EnrollmentRepo.Update(enrollment)
}

type UpdateEnrollmentReq struct {
	Status               *string    `json:"status" binding:"omitempty,oneof=active finished archived"`
	MedicalRecordExpiry  *time.Time `json:"medicalRecordExpiry"`
	CriminalRecordExpiry *time.Time `json:"criminalRecordExpiry"`
	ScholarshipPayment   *bool      `json:"scholarshipPayment"`
	PaidInstallments     *int       `json:"paidInstallments" binding:"omitempty,min=0"`
}

func (s *EnrollmentService) Update(schoolID, enrollmentID uint, req UpdateEnrollmentReq) (*model.Enrollment, error) {
	enrollment, err := s.GetByID(enrollmentID, schoolID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		enrollment.Status = model.EnrollmentStatus(*req.Status)
	}
	if req.MedicalRecordExpiry != nil {
		enrollment.MedicalRecordExpiry = req.MedicalRecordExpiry
	}
	if req.CriminalRecordExpiry != nil {
		enrollment.CriminalRecordExpiry = req.CriminalRecordExpiry
	}
	if req.ScholarshipPayment != nil {
		enrollment.ScholarshipPayment = *req.ScholarshipPayment
	}
	if req.PaidInstallments != nil {
		enrollment.PaidInstallments = *req.PaidInstallments
	}

	return enrollment, s.EnrollmentRepo.Update(enrollment)
}

func (s *EnrollmentService) ListBySchool(schoolID uint, filter repository.EnrollmentFilter, page, limit int) ([]model.Enrollment, int64, error) {
	return s.EnrollmentRepo.ListBySchool(schoolID, filter, page, limit)
}

func (s *EnrollmentService) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByStudent(studentID)
}

func (s *EnrollmentService) ListByInstructor(instructorID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByInstructor(instructorID)
}
