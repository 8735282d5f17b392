package models

import "github.com/google/uuid"

// Attachment stores metadata for a file attached to a grievance. The bytes
// live in external blob storage; StorageKey identifies them there.
type Attachment struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	GrievanceID    uuid.UUID `json:"grievance_id" gorm:"type:uuid;not null;index" validate:"required"`
	Filename       string    `json:"filename" gorm:"not null;size:255" validate:"required,max=255"`
	FileType       string    `json:"filetype" gorm:"size:100"`
	FileSize       int64     `json:"filesize"`
	StorageKey     string    `json:"storage_key" gorm:"not null;size:500"`
	URL            string    `json:"url" gorm:"size:1000"`
	UploadedBy     uuid.UUID `json:"uploaded_by" gorm:"type:uuid;not null"`
}

// TableName returns the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}
