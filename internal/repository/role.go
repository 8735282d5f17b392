package repository

import (
	"errors"

	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleRepository handles database operations for roles
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// GetByID retrieves a role by ID within an organization
func (r *RoleRepository) GetByID(orgID, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := r.db.First(&role, "id = ? AND organization_id = ?", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByOrganizationID retrieves all roles of an organization
func (r *RoleRepository) GetByOrganizationID(orgID uuid.UUID) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.Where("organization_id = ?", orgID).Order("name ASC").Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// Update applies partial updates to a role within an organization
func (r *RoleRepository) Update(orgID, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.Role{}).
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

// Delete removes a role within an organization
func (r *RoleRepository) Delete(orgID, id uuid.UUID) error {
	return r.db.Delete(&models.Role{}, "id = ? AND organization_id = ?", id, orgID).Error
}

// UpsertByName creates the named role or replaces its permission set
func (r *RoleRepository) UpsertByName(orgID uuid.UUID, name string, permissions []string) error {
	var role models.Role
	err := r.db.First(&role, "organization_id = ? AND name = ?", orgID, name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(&models.Role{
			OrganizationID: orgID,
			Name:           name,
			Permissions:    permissions,
		}).Error
	}
	if err != nil {
		return err
	}
	role.Permissions = permissions
	return r.db.Save(&role).Error
}
