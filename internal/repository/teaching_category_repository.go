package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type TeachingCategoryRepository struct {
	DB *gorm.DB
}

func NewTeachingCategoryRepository(db *gorm.DB) *TeachingCategoryRepository {
	return &TeachingCategoryRepository{DB: db}
}

func (r *TeachingCategoryRepository) Create(category *model.TeachingCategory) error {
	return r.DB.Create(category).Error
}

func (r *TeachingCategoryRepository) FindByID(id uint) (*model.TeachingCategory, error) {
	var category model.TeachingCategory
	err := r.DB.Preload("License").First(&category, id).Error
	return &category, err
}

func (r *TeachingCategoryRepository) Update(category *model.TeachingCategory) error {
	return r.DB.Save(category).Error
}

func (r *TeachingCategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.TeachingCategory{}, id).Error
}

func (r *TeachingCategoryRepository) ListBySchool(schoolID uint) ([]model.TeachingCategory, error) {
	var categories []model.TeachingCategory
	err := r.DB.Preload("License").
		Where("school_id = ?", schoolID).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *TeachingCategoryRepository) CountEnrollments(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("teaching_category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
