package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(school *model.School) error {
	return r.DB.Create(school).Error
}

func (r *SchoolRepository) FindByID(id uint) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, id).Error
	return &school, err
}

func (r *SchoolRepository) Update(school *model.School) error {
	return r.DB.Save(school).Error
}

func (r *SchoolRepository) Delete(id uint) error {
	return r.DB.Delete(&model.School{}, id).Error
}

func (r *SchoolRepository) List(search string, status model.SchoolStatus, page, limit int) ([]model.School, int64, error) {
	query := r.DB.Model(&model.School{})

	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR city LIKE ? OR county LIKE ?", like, like, like)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var schools []model.School
	offset := (page - 1) * limit
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&schools).Error
	return schools, total, err
}
