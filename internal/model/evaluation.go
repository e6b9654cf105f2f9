package model

import (
	"time"

	"gorm.io/datatypes"
)

type EvaluationResult string

const (
	EvaluationOK     EvaluationResult = "OK"
	EvaluationFailed EvaluationResult = "FAILED"
)

// MistakeEntry 评分记录中的一条扣分：扣分项及出现次数
type MistakeEntry struct {
	ItemID uint `json:"itemId"`
	Count  int  `json:"count"`
}

// Evaluation 一节课的考核评分记录。appointment_id 上的唯一索引保证
// 每节课至多一条记录，落库即定稿，之后不再修改。
// swagger:model Evaluation
type Evaluation struct {
	BaseModel
	AppointmentID uint             `gorm:"uniqueIndex;not null;type:bigint unsigned" json:"appointmentId"`
	Appointment   *Appointment     `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	TemplateID    uint             `gorm:"index;not null;type:bigint unsigned" json:"templateId"`
	Mistakes      datatypes.JSON   `gorm:"type:json" json:"mistakes"`
	TotalPoints   int              `gorm:"not null" json:"totalPoints"`
	Result        EvaluationResult `gorm:"size:10;not null" json:"result"`
	FinalizedAt   *time.Time       `json:"finalizedAt,omitempty"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}
