package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an employee account within an organization. Username, email and
// employee id are unique per organization among non-deleted users. Users are
// soft deleted: is_deleted is set and is_active cleared, the row stays.
type User struct {
	BaseModel
	OrganizationID     uuid.UUID  `json:"organization_id" gorm:"type:uuid;not null;index" validate:"required"`
	RoleID             uuid.UUID  `json:"role_id" gorm:"type:uuid;not null;index" validate:"required"`
	DepartmentID       uuid.UUID  `json:"department_id" gorm:"type:uuid;not null;index" validate:"required"`
	Username           string     `json:"username" gorm:"not null;size:30" validate:"required,alphanum,min=3,max=30"`
	Email              string     `json:"email" gorm:"not null;size:255" validate:"required,email,max=255"`
	EmployeeID         string     `json:"employee_id" gorm:"not null;size:40" validate:"required,max=40"`
	Password           string     `json:"-" gorm:"not null;size:100" validate:"required,min=6"`
	FirstName          string     `json:"firstname" gorm:"not null;size:100" validate:"required,max=100"`
	LastName           string     `json:"lastname" gorm:"not null;size:100" validate:"required,max=100"`
	PhoneNumber        string     `json:"phone_number" gorm:"size:20"`
	SpecialPermissions []string   `json:"special_permissions" gorm:"serializer:json;type:jsonb"`
	IsActive           bool       `json:"is_active" gorm:"not null;default:true"`
	IsDeleted          bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	LastLogin          *time.Time `json:"last_login,omitempty"`

	Role       *Role       `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hashes the password before the row is first written
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if err := u.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	return u.hashPassword()
}

func (u *User) hashPassword() error {
	if u.Password == "" {
		return nil
	}
	// Already hashed passwords pass through untouched
	if _, err := bcrypt.Cost([]byte(u.Password)); err == nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ComparePassword checks a plaintext password against the stored hash
func (u *User) ComparePassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
