package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(document *model.Document) error {
	return r.DB.Create(document).Error
}

func (r *DocumentRepository) FindByID(id string) (*model.Document, error) {
	var document model.Document
	err := r.DB.First(&document, "id = ?", id).Error
	return &document, err
}

func (r *DocumentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Document{}, "id = ?", id).Error
}

func (r *DocumentRepository) ListByEnrollment(enrollmentID uint) ([]model.Document, error) {
	var documents []model.Document
	err := r.DB.Where("enrollment_id = ?", enrollmentID).
		Order("created_at DESC").
		Find(&documents).Error
	return documents, err
}
