package model

import (
	"time"
)

type UserRole string

const (
	Student     UserRole = "student"
	Instructor  UserRole = "instructor"
	SchoolAdmin UserRole = "school_admin"
	SuperAdmin  UserRole = "super_admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Role      UserRole   `gorm:"size:20;not null;default:'student'" json:"role"`
	Phone     string     `gorm:"size:20" json:"phone"`
	SchoolID  *uint      `gorm:"index;type:bigint unsigned" json:"schoolId,omitempty"`
	School    *School    `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Avatar    string     `gorm:"size:255" json:"avatar"`
	Language  string     `gorm:"size:10;default:'zh'" json:"language"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	LastSeen  *time.Time `json:"lastSeen,omitempty"`
}

func (User) TableName() string {
	return "users"
}
