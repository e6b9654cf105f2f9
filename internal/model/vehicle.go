package model

import (
	"time"
)

type TransmissionType string

const (
	TransmissionManual    TransmissionType = "manual"
	TransmissionAutomatic TransmissionType = "automatic"
)

// swagger:model Vehicle
type Vehicle struct {
	BaseModel
	SchoolID         uint             `gorm:"index;not null;type:bigint unsigned;uniqueIndex:idx_school_plate" json:"schoolId"`
	School           *School          `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	LicensePlate     string           `gorm:"size:20;not null;uniqueIndex:idx_school_plate" json:"licensePlate"`
	Brand            string           `gorm:"size:100" json:"brand"`
	TransmissionType TransmissionType `gorm:"size:20;not null;default:'manual'" json:"transmissionType"`
	Color            string           `gorm:"size:30" json:"color"`
	LicenseID        uint             `gorm:"index;type:bigint unsigned" json:"licenseId"`
	License          *License         `gorm:"foreignKey:LicenseID" json:"license,omitempty"`
	InspectionExpiry *time.Time       `json:"inspectionExpiry,omitempty"`
	InsuranceExpiry  *time.Time       `json:"insuranceExpiry,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
