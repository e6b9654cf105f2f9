package repository

import (
	"driveflow_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EvaluationRepository struct {
	DB *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{DB: db}
}

// Create 落库评分记录。appointment_id 的唯一索引在并发提交时兜底，
// 冲突经 TranslateError 翻译为 gorm.ErrDuplicatedKey，由服务层转成业务错误。
func (r *EvaluationRepository) Create(evaluation *model.Evaluation) error {
	return r.DB.Create(evaluation).Error
}

func (r *EvaluationRepository) FindByID(id uint) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.DB.Preload("Appointment").
		Preload("Appointment.Enrollment").
		Preload("Appointment.Enrollment.Student").
		Preload("Appointment.Enrollment.Instructor").
		First(&evaluation, id).Error
	return &evaluation, err
}

func (r *EvaluationRepository) FindByAppointmentID(appointmentID uint) (*model.Evaluation, error) {
	var evaluation model.Evaluation
	err := r.DB.Where("appointment_id = ?", appointmentID).First(&evaluation).Error
	return &evaluation, err
}

func (r *EvaluationRepository) ExistsByAppointmentID(appointmentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Evaluation{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error
	return count > 0, err
}

type EvaluationHistoryRow struct {
	ID            uint       `json:"id"`
	AppointmentID uint       `json:"appointmentId"`
	Date          time.Time  `json:"date"`
	TotalPoints   int        `json:"totalPoints"`
	MaxPoints     int        `json:"maxPoints"`
	Result        string     `json:"result"`
	FinalizedAt   *time.Time `json:"finalizedAt"`
}

// ListByStudent 按课程日期倒序、同日按评分ID倒序返回学员的评分历史。
// from 为闭区间下界，until 为开区间上界（服务层已把含当天的 to 换算成次日）。
func (r *EvaluationRepository) ListByStudent(studentID uint, from, until *time.Time, page, limit int) ([]EvaluationHistoryRow, int64, error) {
	query := r.DB.Table("evaluations e").
		Select("e.id, e.appointment_id, a.date, e.total_points, t.max_points, e.result, e.finalized_at").
		Joins("JOIN appointments a ON e.appointment_id = a.id").
		Joins("JOIN enrollments en ON a.enrollment_id = en.id").
		Joins("JOIN exam_templates t ON e.template_id = t.id").
		Where("en.student_id = ?", studentID).
		Where("e.deleted_at IS NULL AND a.deleted_at IS NULL AND en.deleted_at IS NULL")

	if from != nil {
		query = query.Where("a.date >= ?", *from)
	}
	if until != nil {
		query = query.Where("a.date < ?", *until)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []EvaluationHistoryRow
	offset := (page - 1) * limit
	err := query.Order("a.date DESC, e.id DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	return rows, total, err
}
