package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type VehicleService struct {
	VehicleRepo *repository.VehicleRepository
	LicenseRepo *repository.LicenseRepository
}

func NewVehicleService(vehicleRepo *repository.VehicleRepository, licenseRepo *repository.LicenseRepository) *VehicleService {
	return &VehicleService{VehicleRepo: vehicleRepo, LicenseRepo: licenseRepo}
}

type VehicleReq struct {
	LicensePlate     string     `json:"licensePlate" binding:"required"`
	Brand            string     `json:"brand"`
	TransmissionType string     `json:"transmissionType" binding:"omitempty,oneof=manual automatic"`
	Color            string     `json:"color"`
	LicenseID        uint       `json:"licenseId" binding:"required"`
	InspectionExpiry *time.Time `json:"inspectionExpiry"`
	InsuranceExpiry  *time.Time `json:"insuranceExpiry"`
}

func (s *VehicleService) Create(schoolID uint, req VehicleReq) (*model.Vehicle, error) {
	if _, err := s.LicenseRepo.FindByID(req.LicenseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLicenseNotFound
		}
		return nil, err
	}

	vehicle := &model.Vehicle{
		SchoolID:         schoolID,
		LicensePlate:     req.LicensePlate,
		Brand:            req.Brand,
		TransmissionType: model.TransmissionManual,
		Color:            req.Color,
		LicenseID:        req.LicenseID,
		InspectionExpiry: req.InspectionExpiry,
		InsuranceExpiry:  req.InsuranceExpiry,
	}
	if req.TransmissionType != "" {
		vehicle.TransmissionType = model.TransmissionType(req.TransmissionType)
	}

	err := s.VehicleRepo.Create(vehicle)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrPlateRegistered
	}
	return vehicle, err
}

// GetByID 查询车辆并校验归属驾校
func (s *VehicleService) GetByID(schoolID, id uint) (*model.Vehicle, error) {
	vehicle, err := s.VehicleRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	if vehicle.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}
	return vehicle, nil
}

func (s *VehicleService) Update(schoolID, id uint, req VehicleReq) (*model.Vehicle, error) {
	vehicle, err := s.GetByID(schoolID, id)
	if err != nil {
		return nil, err
	}

	vehicle.LicensePlate = req.LicensePlate
	vehicle.Brand = req.Brand
	vehicle.Color = req.Color
	vehicle.LicenseID = req.LicenseID
	vehicle.InspectionExpiry = req.InspectionExpiry
	vehicle.InsuranceExpiry = req.InsuranceExpiry
	if req.TransmissionType != "" {
		vehicle.TransmissionType = model.TransmissionType(req.TransmissionType)
	}

	err = s.VehicleRepo.Update(vehicle)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, util.ErrPlateRegistered
	}
	return vehicle, err
}

func (s *VehicleService) Delete(schoolID, id uint) error {
	if _, err := s.GetByID(schoolID, id); err != nil {
		return err
	}
	return s.VehicleRepo.Delete(id)
}

func (s *VehicleService) ListBySchool(schoolID uint, expiringInDays, page, limit int) ([]model.Vehicle, int64, error) {
	return s.VehicleRepo.ListBySchool(schoolID, expiringInDays, page, limit)
}
