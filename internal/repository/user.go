package repository

import (
	"time"

	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users. Soft-deleted rows
// never surface from lookups.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a non-deleted user by ID within an organization
func (r *UserRepository) GetByID(orgID, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Preload("Department").
		First(&user, "id = ? AND organization_id = ? AND is_deleted = false", id, orgID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetActiveByUsernameOrEmail retrieves an active user matching either field.
// Login is the one lookup that is not organization scoped: the credential
// itself carries no tenant.
func (r *UserRepository) GetActiveByUsernameOrEmail(username, email string) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("is_active = true AND is_deleted = false").
		Where("username = ? OR email = ?", username, email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindDuplicate returns a non-deleted user in the organization sharing any of
// the unique fields
func (r *UserRepository) FindDuplicate(orgID uuid.UUID, username, email, employeeID string) (*models.User, error) {
	var user models.User
	err := r.db.
		Where("organization_id = ? AND is_deleted = false", orgID).
		Where("username = ? OR email = ? OR employee_id = ?", username, email, employeeID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByUsername reports whether a non-deleted user holds the username
func (r *UserRepository) ExistsByUsername(orgID uuid.UUID, username string) (bool, error) {
	return r.exists("username = ?", orgID, username)
}

// ExistsByEmail reports whether a non-deleted user holds the email
func (r *UserRepository) ExistsByEmail(orgID uuid.UUID, email string) (bool, error) {
	return r.exists("email = ?", orgID, email)
}

// ExistsByEmployeeID reports whether a non-deleted user holds the employee id
func (r *UserRepository) ExistsByEmployeeID(orgID uuid.UUID, employeeID string) (bool, error) {
	return r.exists("employee_id = ?", orgID, employeeID)
}

func (r *UserRepository) exists(cond string, orgID uuid.UUID, value string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("organization_id = ? AND is_deleted = false", orgID).
		Where(cond, value).
		Count(&count).Error
	return count > 0, err
}

// CountByDepartment counts non-deleted users referencing a department
func (r *UserRepository) CountByDepartment(orgID, departmentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("organization_id = ? AND department_id = ? AND is_deleted = false", orgID, departmentID).
		Count(&count).Error
	return count, err
}

// CountByRole counts non-deleted users referencing a role
func (r *UserRepository) CountByRole(orgID, roleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("organization_id = ? AND role_id = ? AND is_deleted = false", orgID, roleID).
		Count(&count).Error
	return count, err
}

// ReassignDepartment repoints every user of one department to another and
// returns how many rows changed
func (r *UserRepository) ReassignDepartment(orgID, fromID, toID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("organization_id = ? AND department_id = ?", orgID, fromID).
		Update("department_id", toID)
	return result.RowsAffected, result.Error
}

// ReassignRole repoints every user of one role to another and returns how
// many rows changed
func (r *UserRepository) ReassignRole(orgID, fromID, toID uuid.UUID) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("organization_id = ? AND role_id = ?", orgID, fromID).
		Update("role_id", toID)
	return result.RowsAffected, result.Error
}

// Update applies partial updates to a non-deleted user within an organization
func (r *UserRepository) Update(orgID, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND organization_id = ? AND is_deleted = false", id, orgID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete marks a user deleted and inactive without removing the row
func (r *UserRepository) SoftDelete(orgID, id uuid.UUID) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND organization_id = ? AND is_deleted = false", id, orgID).
		Updates(map[string]interface{}{"is_deleted": true, "is_active": false})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateLastLogin stamps a successful login
func (r *UserRepository) UpdateLastLogin(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
