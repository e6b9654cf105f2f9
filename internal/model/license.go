package model

// License 准驾车型，如 C1 C2 A2
// swagger:model License
type License struct {
	BaseModel
	Type        string `gorm:"size:10;unique;not null" json:"type"`
	Description string `gorm:"size:255" json:"description"`
}

func (License) TableName() string {
	return "licenses"
}
