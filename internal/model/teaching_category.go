package model

// TeachingCategory 驾校开设的培训班型（某一准驾车型的收费与学时方案）
// swagger:model TeachingCategory
type TeachingCategory struct {
	BaseModel
	SchoolID          uint     `gorm:"index;not null;type:bigint unsigned" json:"schoolId"`
	School            *School  `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	LicenseID         uint     `gorm:"index;not null;type:bigint unsigned" json:"licenseId"`
	License           *License `gorm:"foreignKey:LicenseID" json:"license,omitempty"`
	SessionCost       float64  `gorm:"not null" json:"sessionCost"`
	SessionDuration   int      `gorm:"not null;default:90" json:"sessionDuration"` // 分钟
	ScholarshipPrice  float64  `gorm:"not null" json:"scholarshipPrice"`
	MinDrivingLessons int      `gorm:"not null;default:15" json:"minDrivingLessons"`
}

func (TeachingCategory) TableName() string {
	return "teaching_categories"
}
