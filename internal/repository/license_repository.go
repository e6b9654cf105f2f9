package repository

import (
	"driveflow_backend/internal/model"

	"gorm.io/gorm"
)

type LicenseRepository struct {
	DB *gorm.DB
}

func NewLicenseRepository(db *gorm.DB) *LicenseRepository {
	return &LicenseRepository{DB: db}
}

func (r *LicenseRepository) Create(license *model.License) error {
	return r.DB.Create(license).Error
}

func (r *LicenseRepository) FindByID(id uint) (*model.License, error) {
	var license model.License
	err := r.DB.First(&license, id).Error
	return &license, err
}

func (r *LicenseRepository) FindByType(licenseType string) (*model.License, error) {
	var license model.License
	err := r.DB.Where("type = ?", licenseType).First(&license).Error
	return &license, err
}

func (r *LicenseRepository) List() ([]model.License, error) {
	var licenses []model.License
	err := r.DB.Order("type ASC").Find(&licenses).Error
	return licenses, err
}

func (r *LicenseRepository) Update(license *model.License) error {
	return r.DB.Save(license).Error
}

func (r *LicenseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.License{}, id).Error
}
