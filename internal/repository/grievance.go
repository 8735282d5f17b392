package repository

import (
	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GrievanceRepository handles database operations for grievances
type GrievanceRepository struct {
	db *gorm.DB
}

// NewGrievanceRepository creates a new grievance repository
func NewGrievanceRepository(db *gorm.DB) *GrievanceRepository {
	return &GrievanceRepository{db: db}
}

// Create creates a new grievance
func (r *GrievanceRepository) Create(grievance *models.Grievance) error {
	return r.db.Create(grievance).Error
}

// GetByID retrieves an active grievance by ID within an organization,
// including its department, reporter, assignee and attachments
func (r *GrievanceRepository) GetByID(orgID, id uuid.UUID) (*models.Grievance, error) {
	var grievance models.Grievance
	err := r.db.
		Preload("Department").
		Preload("Reporter").
		Preload("Assignee").
		Preload("Attachments").
		First(&grievance, "id = ? AND organization_id = ? AND is_active = true", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &grievance, nil
}

// Update applies partial updates to an active grievance within an organization
func (r *GrievanceRepository) Update(orgID, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Grievance{}).
		Where("id = ? AND organization_id = ? AND is_active = true", id, orgID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks a grievance inactive without removing the row
func (r *GrievanceRepository) SoftDelete(orgID, id uuid.UUID) error {
	result := r.db.Model(&models.Grievance{}).
		Where("id = ? AND organization_id = ? AND is_active = true", id, orgID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
