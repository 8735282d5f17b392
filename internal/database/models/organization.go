package models

import "time"

// Organization represents the root entity for multi-tenancy. Every other
// entity is scoped to exactly one organization.
type Organization struct {
	BaseModel
	Name        string `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	Email       string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	Website     string `json:"website" gorm:"size:200"`
	Logo        string `json:"logo" gorm:"size:500"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"size:200"`
	City        string `json:"city" gorm:"size:100"`
	State       string `json:"state" gorm:"size:100"`
	Country     string `json:"country" gorm:"size:100"`
	Pincode     string `json:"pincode" gorm:"size:20"`
	Phone       string `json:"phone" gorm:"size:20"`

	// One-time verification code for super-admin bootstrap. Only the bcrypt
	// hash is stored; the expiry is checked when the OTP is verified.
	OTPHash      *string    `json:"-" gorm:"size:100"`
	OTPExpiresAt *time.Time `json:"-"`

	// Relationships
	Departments []Department `json:"departments,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Roles       []Role       `json:"roles,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Users       []User       `json:"users,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Organization
func (Organization) TableName() string {
	return "organizations"
}

// HasValidOTP reports whether an unexpired OTP hash is stored
func (o *Organization) HasValidOTP(now time.Time) bool {
	return o.OTPHash != nil && o.OTPExpiresAt != nil && now.Before(*o.OTPExpiresAt)
}
