package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type ExamTemplateRepository struct {
	DB *gorm.DB
}

func NewExamTemplateRepository(db *gorm.DB) *ExamTemplateRepository {
	return &ExamTemplateRepository{DB: db}
}

func (r *ExamTemplateRepository) FindByID(id uint) (*model.ExamTemplate, error) {
	var template model.ExamTemplate
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("template_items.order_index ASC")
	}).Preload("License").First(&template, id).Error
	return &template, err
}

func (r *ExamTemplateRepository) FindByLicenseID(licenseID uint) (*model.ExamTemplate, error) {
	var template model.ExamTemplate
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("template_items.order_index ASC")
	}).Preload("License").Where("license_id = ?", licenseID).First(&template).Error
	return &template, err
}

func (r *ExamTemplateRepository) List() ([]model.ExamTemplate, error) {
	var templates []model.ExamTemplate
	err := r.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("template_items.order_index ASC")
	}).Preload("License").Order("license_id ASC").Find(&templates).Error
	return templates, err
}
