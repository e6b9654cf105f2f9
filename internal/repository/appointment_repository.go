package repository

import (
	"driveflow_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	DB *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(appointment *model.Appointment) error {
	return r.DB.Create(appointment).Error
}

func (r *AppointmentRepository) FindByID(id uint) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.DB.Preload("Enrollment").
		Preload("Enrollment.TeachingCategory").
		First(&appointment, id).Error
	return &appointment, err
}

func (r *AppointmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Appointment{}, id).Error
}

func (r *AppointmentRepository) ListByEnrollment(enrollmentID uint) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.DB.Where("enrollment_id = ?", enrollmentID).
		Order("date DESC, start_hour DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) ListByInstructorAndDate(instructorID uint, date time.Time) ([]model.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var appointments []model.Appointment
	err := r.DB.Joins("JOIN enrollments e ON appointments.enrollment_id = e.id").
		Where("e.instructor_id = ? AND appointments.date >= ? AND appointments.date < ? AND e.deleted_at IS NULL", instructorID, dayStart, dayEnd).
		Preload("Enrollment").
		Preload("Enrollment.Student").
		Order("appointments.start_hour ASC").
		Find(&appointments).Error
	return appointments, err
}

// CountOverlapping 统计该教练当天与 [startHour, endHour) 时段重叠的课程数，
// "HH:MM" 字符串可以直接按字典序比较
func (r *AppointmentRepository) CountOverlapping(instructorID uint, date time.Time, startHour, endHour string) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.DB.Model(&model.Appointment{}).
		Joins("JOIN enrollments e ON appointments.enrollment_id = e.id").
		Where("e.instructor_id = ? AND appointments.date >= ? AND appointments.date < ? AND e.deleted_at IS NULL", instructorID, dayStart, dayEnd).
		Where("appointments.start_hour < ? AND appointments.end_hour > ?", endHour, startHour).
		Count(&count).Error
	return count, err
}

func (r *AppointmentRepository) HasEvaluation(appointmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Evaluation{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	return count > 0, err
}
