package model

type SchoolStatus string

const (
	SchoolActive   SchoolStatus = "active"
	SchoolDemo     SchoolStatus = "demo"
	SchoolArchived SchoolStatus = "archived"
)

// swagger:model School
type School struct {
	BaseModel
	Name    string       `gorm:"size:150;not null" json:"name"`
	Email   string       `gorm:"size:100;unique;not null" json:"email"`
	Phone   string       `gorm:"size:20" json:"phone"`
	Website string       `gorm:"size:255" json:"website"`
	Address string       `gorm:"size:255" json:"address"`
	City    string       `gorm:"size:100" json:"city"`
	County  string       `gorm:"size:100" json:"county"`
	Status  SchoolStatus `gorm:"size:20;not null;default:'active'" json:"status"`
}

func (School) TableName() string {
	return "schools"
}
