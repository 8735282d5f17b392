package models

import "github.com/google/uuid"

// Grievance is a complaint filed by an employee, routed to a department and
// optionally assigned to a handler. Soft deleted via is_active.
type Grievance struct {
	BaseModel
	OrganizationID uuid.UUID         `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	Title          string            `json:"title" gorm:"not null;size:100" validate:"required,min=5,max=100"`
	Description    string            `json:"description" gorm:"type:text;not null" validate:"required,min=10,max=1000"`
	DepartmentID   uuid.UUID         `json:"department_id" gorm:"type:uuid;not null;index" validate:"required"`
	Severity       GrievanceSeverity `json:"severity" gorm:"type:varchar(20);not null" validate:"required,oneof=low medium high"`
	Status         GrievanceStatus   `json:"status" gorm:"type:varchar(20);not null;default:'submitted'" validate:"required,oneof=submitted reviewing assigned in-progress resolved dismissed"`
	IsActive       bool              `json:"is_active" gorm:"not null;default:true"`
	EmployeeID     string            `json:"employee_id" gorm:"not null;size:40"`
	ReportedBy     uuid.UUID         `json:"reported_by" gorm:"type:uuid;not null;index"`
	AssignedTo     *uuid.UUID        `json:"assigned_to,omitempty" gorm:"type:uuid;index"`

	Department  *Department  `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Reporter    *User        `json:"reporter,omitempty" gorm:"foreignKey:ReportedBy"`
	Assignee    *User        `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	Attachments []Attachment `json:"attachments,omitempty" gorm:"foreignKey:GrievanceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Grievance
func (Grievance) TableName() string {
	return "grievances"
}
