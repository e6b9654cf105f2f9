package model

type DocumentKind string

const (
	DocMedicalRecord  DocumentKind = "medical_record"
	DocCriminalRecord DocumentKind = "criminal_record"
	DocIDCopy         DocumentKind = "id_copy"
	DocContract       DocumentKind = "contract"
)

// Document 报名档案附件（体检证明、无犯罪记录等扫描件）
// swagger:model Document
type Document struct {
	UUIDBase
	EnrollmentID uint         `gorm:"index;not null;type:bigint unsigned" json:"enrollmentId"`
	Kind         DocumentKind `gorm:"size:30;not null" json:"kind"`
	FileName     string       `gorm:"size:255;not null" json:"fileName"`
	ContentType  string       `gorm:"size:100" json:"contentType"`
	Size         int64        `gorm:"default:0" json:"size"`
	URL          string       `gorm:"size:500" json:"url"`
	UploadedBy   uint         `gorm:"index;type:bigint unsigned" json:"uploadedBy"`
}

func (Document) TableName() string {
	return "documents"
}
