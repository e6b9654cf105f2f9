package model

import (
	"time"
)

// Appointment 一节已预约的驾驶课
// swagger:model Appointment
type Appointment struct {
	BaseModel
	EnrollmentID uint        `gorm:"index;not null;type:bigint unsigned" json:"enrollmentId"`
	Enrollment   *Enrollment `gorm:"foreignKey:EnrollmentID" json:"enrollment,omitempty"`
	Date         time.Time   `gorm:"index;not null" json:"date"`
	StartHour    string      `gorm:"size:5;not null" json:"startHour"` // "HH:MM"
	EndHour      string      `gorm:"size:5;not null" json:"endHour"`
}

func (Appointment) TableName() string {
	return "appointments"
}
