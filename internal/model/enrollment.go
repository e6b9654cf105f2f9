package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive   EnrollmentStatus = "active"
	EnrollmentFinished EnrollmentStatus = "finished"
	EnrollmentArchived EnrollmentStatus = "archived"
)

// Enrollment 学员报名档案，把学员、教练、车辆和班型绑定在一起。
// SchoolID 冗余自班型所属驾校，权限判断和历史查询直接用它。
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	SchoolID             uint              `gorm:"index;not null;type:bigint unsigned" json:"schoolId"`
	School               *School           `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	StudentID            uint              `gorm:"index;not null;type:bigint unsigned" json:"studentId"`
	Student              *User             `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	InstructorID         *uint             `gorm:"index;type:bigint unsigned" json:"instructorId,omitempty"`
	Instructor           *User             `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	VehicleID            *uint             `gorm:"index;type:bigint unsigned" json:"vehicleId,omitempty"`
	Vehicle              *Vehicle          `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	TeachingCategoryID   uint              `gorm:"index;not null;type:bigint unsigned" json:"teachingCategoryId"`
	TeachingCategory     *TeachingCategory `gorm:"foreignKey:TeachingCategoryID" json:"teachingCategory,omitempty"`
	Status               EnrollmentStatus  `gorm:"size:20;not null;default:'active'" json:"status"`
	StartDate            *time.Time        `json:"startDate,omitempty"`
	MedicalRecordExpiry  *time.Time        `json:"medicalRecordExpiry,omitempty"`
	CriminalRecordExpiry *time.Time        `json:"criminalRecordExpiry,omitempty"`
	ScholarshipPayment   bool              `gorm:"default:false" json:"scholarshipPayment"`
	PaidInstallments     int               `gorm:"default:0" json:"paidInstallments"` // 已付分期数，线下收款的内部台账
}

func (Enrollment) TableName() string {
	return "enrollments"
}
