package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type LicenseService struct {
	LicenseRepo *repository.LicenseRepository
}

func NewLicenseService(licenseRepo *repository.LicenseRepository) *LicenseService {
	return &LicenseService{LicenseRepo: licenseRepo}
}

type LicenseReq struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

func (s *LicenseService) Create(req LicenseReq) (*model.License, error) {
	_, err := s.LicenseRepo.FindByType(req.Type)
	if err == nil {
		return nil, util.ErrLicenseRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	license := &model.License{Type: req.Type, Description: req.Description}
	return license, s.LicenseRepo.Create(license)
}

func (s *LicenseService) GetByID(id uint) (*model.License, error) {
	license, err := s.LicenseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLicenseNotFound
	}
	return license, err
}

func (s *LicenseService) List() ([]model.License, error) {
	return s.LicenseRepo.List()
}

func (s *LicenseService) Update(id uint, req LicenseReq) (*model.License, error) {
	license, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	license.Type = req.Type
	license.Description = req.Description
	return license, s.LicenseRepo.Update(license)
}

func (s *LicenseService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.LicenseRepo.Delete(id)
}
