package repository

import (
	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// Create creates a new department
func (r *DepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

// GetByID retrieves a department by ID within an organization
func (r *DepartmentRepository) GetByID(orgID, id uuid.UUID) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// GetByNameInsensitive retrieves a department by name within an organization,
// matching case-insensitively
func (r *DepartmentRepository) GetByNameInsensitive(orgID uuid.UUID, name string) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, "organization_id = ? AND lower(name) = lower(?)", orgID, name).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// GetByOrganizationID retrieves departments for an organization with
// pagination, sorted by name
func (r *DepartmentRepository) GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Department, int64, error) {
	var departments []models.Department
	var total int64

	if err := r.db.Model(&models.Department{}).
		Where("organization_id = ?", orgID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("organization_id = ?", orgID).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&departments).Error
	if err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

// Update applies partial updates to a department within an organization
func (r *DepartmentRepository) Update(orgID, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Department{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a department within an organization
func (r *DepartmentRepository) Delete(orgID, id uuid.UUID) error {
	return r.db.Delete(&models.Department{}, "id = ? AND organization_id = ?", id, orgID).Error
}
