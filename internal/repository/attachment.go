package repository

import (
	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentRepository handles database operations for attachments
type AttachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create creates a new attachment record
func (r *AttachmentRepository) Create(attachment *models.Attachment) error {
	return r.db.Create(attachment).Error
}

// GetByGrievanceID retrieves the attachments of a grievance within an organization
func (r *AttachmentRepository) GetByGrievanceID(orgID, grievanceID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.
		Where("organization_id = ? AND grievance_id = ?", orgID, grievanceID).
		Order("created_at ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}
