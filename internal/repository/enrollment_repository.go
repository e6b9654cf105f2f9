package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Preload("Student").
		Preload("Instructor").
		Preload("Vehicle").
		Preload("TeachingCategory").
		Preload("TeachingCategory.License").
		First(&enrollment, id).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) Update(enrollment *model.Enrollment) error {
	return r.DB.Save(enrollment).Error
}

type EnrollmentFilter struct {
	Status      model.EnrollmentStatus
	StudentName string
}

func (r *EnrollmentRepository) ListBySchool(schoolID uint, filter EnrollmentFilter, page, limit int) ([]model.Enrollment, int64, error) {
	query := r.DB.Model(&model.Enrollment{}).Where("enrollments.school_id = ?", schoolID)

	if filter.Status != "" {
		query = query.Where("enrollments.status = ?", filter.Status)
	}
	if filter.StudentName != "" {
		query = query.Joins("JOIN users u ON enrollments.student_id = u.id").
			Where("u.name LIKE ?", "%"+filter.StudentName+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollments []model.Enrollment
	offset := (page - 1) * limit
	err := query.Preload("Student").
		Preload("Instructor").
		Preload("TeachingCategory").
		Preload("TeachingCategory.License").
		Order("enrollments.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&enrollments).Error
	return enrollments, total, err
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Instructor").
		Preload("Vehicle").
		Preload("TeachingCategory").
		Preload("TeachingCategory.License").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListByInstructor(instructorID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Preload("Student").
		Preload("Vehicle").
		Preload("TeachingCategory").
		Preload("TeachingCategory.License").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&enrollments).Error
	return enrollments, err
}

// IsInstructorOfStudent 教练是否带过该学员（存在任一报名档案即可）
func (r *EnrollmentRepository) IsInstructorOfStudent(instructorID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("instructor_id = ? AND student_id = ?", instructorID, studentID).
		Count(&count).Error
	return count > 0, err
}

// IsStudentOfSchool 学员是否在该驾校有报名档案
func (r *EnrollmentRepository) IsStudentOfSchool(studentID, schoolID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("student_id = ? AND school_id = ?", studentID, schoolID).
		Count(&count).Error
	return count > 0, err
}
