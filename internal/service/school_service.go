package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type SchoolService struct {
	SchoolRepo *repository.SchoolRepository
}

func NewSchoolService(schoolRepo *repository.SchoolRepository) *SchoolService {
	return &SchoolService{SchoolRepo: schoolRepo}
}

type SchoolReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
	Address string `json:"address"`
	City    string `json:"city"`
	County  string `json:"county"`
	Status  string `json:"status" binding:"omitempty,oneof=active demo archived"`
}

func (s *SchoolService) Create(req SchoolReq) (*model.School, error) {
	school := &model.School{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Website: req.Website,
		Address: req.Address,
		City:    req.City,
		County:  req.County,
		Status:  model.SchoolActive,
	}
	if req.Status != "" {
		school.Status = model.SchoolStatus(req.Status)
	}
	return school, s.SchoolRepo.Create(school)
}

func (s *SchoolService) GetByID(id uint) (*model.School, error) {
	school, err := s.SchoolRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSchoolNotFound
	}
	return school, err
}

func (s *SchoolService) Update(id uint, req SchoolReq) (*model.School, error) {
	school, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	school.Name = req.Name
	school.Email = req.Email
	school.Phone = req.Phone
	school.Website = req.Website
	school.Address = req.Address
	school.City = req.City
	school.County = req.County
	if req.Status != "" {
		school.Status = model.SchoolStatus(req.Status)
	}

	return school, s.SchoolRepo.Update(school)
}

// Delete 归档并软删除驾校。已定稿的评分记录保留，不做级联清理。
func (s *SchoolService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.SchoolRepo.Delete(id)
}

func (s *SchoolService) List(search string, status string, page, limit int) ([]model.School, int64, error) {
	return s.SchoolRepo.List(search, model.SchoolStatus(status), page, limit)
}
