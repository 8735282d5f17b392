package models

import "github.com/google/uuid"

// Role bundles permission tags for an organization. Users reference exactly
// one role; the permission set is what the authorization gate checks.
type Role struct {
	BaseModel
	OrganizationID uuid.UUID `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	Name           string    `json:"name" gorm:"not null;size:100" validate:"required,min=2,max=100"`
	Permissions    []string  `json:"permissions" gorm:"serializer:json;type:jsonb"`
}

// TableName returns the table name for Role
func (Role) TableName() string {
	return "roles"
}
