package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type TeachingCategoryService struct {
	CategoryRepo *repository.TeachingCategoryRepository
	LicenseRepo  *repository.LicenseRepository
}

func NewTeachingCategoryService(categoryRepo *repository.TeachingCategoryRepository, licenseRepo *repository.LicenseRepository) *TeachingCategoryService {
	return &TeachingCategoryService{CategoryRepo: categoryRepo, LicenseRepo: licenseRepo}
}

type TeachingCategoryReq struct {
	LicenseID         uint    `json:"licenseId" binding:"required"`
	SessionCost       float64 `json:"sessionCost" binding:"min=0"`
	SessionDuration   int     `json:"sessionDuration" binding:"min=0"`
	ScholarshipPrice  float64 `json:"scholarshipPrice" binding:"min=0"`
	MinDrivingLessons int     `json:"minDrivingLessons" binding:"min=0"`
}

func (s *TeachingCategoryService) Create(schoolID uint, req TeachingCategoryReq) (*model.TeachingCategory, error) {
	if _, err := s.LicenseRepo.FindByID(req.LicenseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLicenseNotFound
		}
		return nil, err
	}

	category := &model.TeachingCategory{
		SchoolID:          schoolID,
		LicenseID:         req.LicenseID,
		SessionCost:       req.SessionCost,
		SessionDuration:   req.SessionDuration,
		ScholarshipPrice:  req.ScholarshipPrice,
		MinDrivingLessons: req.MinDrivingLessons,
	}
	if category.SessionDuration == 0 {
		category.SessionDuration = 90
	}
	return category, s.CategoryRepo.Create(category)
}

func (s *TeachingCategoryService) GetByID(schoolID, id uint) (*model.TeachingCategory, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	if category.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}
	return category, nil
}

func (s *TeachingCategoryService) Update(schoolID, id uint, req TeachingCategoryReq) (*model.TeachingCategory, error) {
	category, err := s.GetByID(schoolID, id)
	if err != nil {
		return nil, err
	}

	category.LicenseID = req.LicenseID
	category.SessionCost = req.SessionCost
	category.ScholarshipPrice = req.ScholarshipPrice
	category.MinDrivingLessons = req.MinDrivingLessons
	if req.SessionDuration > 0 {
		category.SessionDuration = req.SessionDuration
	}

	return category, s.CategoryRepo.Update(category)
}

// Delete 删除班型，有报名档案引用时拒绝
func (s *TeachingCategoryService) Delete(schoolID, id uint) error {
	if _, err := s.GetByID(schoolID, id); err != nil {
		return err
	}

	count, err := s.CategoryRepo.CountEnrollments(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrCategoryInUse
	}

	return s.CategoryRepo.Delete(id)
}

func (s *TeachingCategoryService) ListBySchool(schoolID uint) ([]model.TeachingCategory, error) {
	return s.CategoryRepo.ListBySchool(schoolID)
}
