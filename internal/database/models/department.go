package models

import "github.com/google/uuid"

// Department groups users within an organization. Names are unique per
// organization case-insensitively, enforced both in the service layer and by
// a functional unique index created during migration.
type Department struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name           string    `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Description    string    `json:"description" gorm:"size:500" validate:"max=500"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
}

// TableName returns the table name for Department
func (Department) TableName() string {
	return "departments"
}
