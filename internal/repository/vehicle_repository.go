package repository

import (
	"driveflow_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	DB *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{DB: db}
}

func (r *VehicleRepository) Create(vehicle *model.Vehicle) error {
	return r.DB.Create(vehicle).Error
}

func (r *VehicleRepository) FindByID(id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := r.DB.Preload("License").First(&vehicle, id).Error
	return &vehicle, err
}

func (r *VehicleRepository) Update(vehicle *model.Vehicle) error {
	return r.DB.Save(vehicle).Error
}

func (r *VehicleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Vehicle{}, id).Error
}

// ListBySchool 分页列出驾校车辆，expiringInDays > 0 时只返回
// 年检或保险在该天数内到期（或已过期）的车辆
func (r *VehicleRepository) ListBySchool(schoolID uint, expiringInDays, page, limit int) ([]model.Vehicle, int64, error) {
	query := r.DB.Model(&model.Vehicle{}).Where("school_id = ?", schoolID)

	if expiringInDays > 0 {
		deadline := time.Now().AddDate(0, 0, expiringInDays)
		query = query.Where("inspection_expiry <= ? OR insurance_expiry <= ?", deadline, deadline)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []model.Vehicle
	offset := (page - 1) * limit
	err := query.Preload("License").
		Order("license_plate ASC").
		Offset(offset).Limit(limit).
		Find(&vehicles).Error
	return vehicles, total, err
}
