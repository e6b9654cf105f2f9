package model

// ExamTemplate 某一准驾车型的官方考核评分表。种子数据导入后不可变，
// 评分记录通过 TemplateID 引用它。
// swagger:model ExamTemplate
type ExamTemplate struct {
	BaseModel
	LicenseID uint           `gorm:"uniqueIndex;not null;type:bigint unsigned" json:"licenseId"`
	License   *License       `gorm:"foreignKey:LicenseID" json:"license,omitempty"`
	MaxPoints int            `gorm:"not null" json:"maxPoints"` // 允许的最大扣分，超过即不合格
	Items     []TemplateItem `gorm:"foreignKey:TemplateID" json:"items,omitempty"`
}

func (ExamTemplate) TableName() string {
	return "exam_templates"
}

// TemplateItem 评分表中的一个扣分项
// swagger:model TemplateItem
type TemplateItem struct {
	BaseModel
	TemplateID    uint   `gorm:"index;not null;type:bigint unsigned;uniqueIndex:idx_template_desc" json:"templateId"`
	Description   string `gorm:"size:255;not null;uniqueIndex:idx_template_desc" json:"description"`
	PenaltyPoints int    `gorm:"not null" json:"penaltyPoints"`
	OrderIndex    int    `gorm:"not null;default:0" json:"orderIndex"`
}

func (TemplateItem) TableName() string {
	return "template_items"
}
