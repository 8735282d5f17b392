package repository

import (
	"time"

	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationRepository handles database operations for organizations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(id uuid.UUID) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByEmail retrieves an organization by its contact email
func (r *OrganizationRepository) GetByEmail(email string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.First(&org, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *OrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// SetOTP stores a fresh OTP hash and its expiry on the organization
func (r *OrganizationRepository) SetOTP(id uuid.UUID, otpHash string, expiresAt time.Time) error {
	return r.db.Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp_hash": otpHash, "otp_expires_at": expiresAt}).Error
}

// ClearOTP removes any stored OTP from the organization
func (r *OrganizationRepository) ClearOTP(id uuid.UUID) error {
	return r.db.Model(&models.Organization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"otp_hash": nil, "otp_expires_at": nil}).Error
}
