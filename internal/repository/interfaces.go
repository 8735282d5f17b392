package repository

import (
	"time"

	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// OrganizationRepositoryInterface defines the interface for organization repository operations.
// Organizations are the tenant root, so lookups are global.
type OrganizationRepositoryInterface interface {
	Create(org *models.Organization) error
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetByEmail(email string) (*models.Organization, error)
	Update(org *models.Organization) error
	SetOTP(id uuid.UUID, otpHash string, expiresAt time.Time) error
	ClearOTP(id uuid.UUID) error
}

// DepartmentRepositoryInterface defines the interface for department repository
// operations. Every query is scoped to an organization.
type DepartmentRepositoryInterface interface {
	Create(department *models.Department) error
	GetByID(orgID, id uuid.UUID) (*models.Department, error)
	GetByNameInsensitive(orgID uuid.UUID, name string) (*models.Department, error)
	GetByOrganizationID(orgID uuid.UUID, limit, offset int) ([]models.Department, int64, error)
	Update(orgID, id uuid.UUID, updates map[string]interface{}) error
	Delete(orgID, id uuid.UUID) error
}

// RoleRepositoryInterface defines the interface for role repository operations
type RoleRepositoryInterface interface {
	Create(role *models.Role) error
	GetByID(orgID, id uuid.UUID) (*models.Role, error)
	GetByOrganizationID(orgID uuid.UUID) ([]models.Role, error)
	Update(orgID, id uuid.UUID, updates map[string]interface{}) error
	Delete(orgID, id uuid.UUID) error
	UpsertByName(orgID uuid.UUID, name string, permissions []string) error
}

// UserRepositoryInterface defines the interface for user repository operations.
// Soft-deleted users are excluded from every lookup.
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(orgID, id uuid.UUID) (*models.User, error)
	GetActiveByUsernameOrEmail(username, email string) (*models.User, error)
	FindDuplicate(orgID uuid.UUID, username, email, employeeID string) (*models.User, error)
	ExistsByUsername(orgID uuid.UUID, username string) (bool, error)
	ExistsByEmail(orgID uuid.UUID, email string) (bool, error)
	ExistsByEmployeeID(orgID uuid.UUID, employeeID string) (bool, error)
	CountByDepartment(orgID, departmentID uuid.UUID) (int64, error)
	CountByRole(orgID, roleID uuid.UUID) (int64, error)
	ReassignDepartment(orgID, fromID, toID uuid.UUID) (int64, error)
	ReassignRole(orgID, fromID, toID uuid.UUID) (int64, error)
	Update(orgID, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(orgID, id uuid.UUID) error
	UpdateLastLogin(id uuid.UUID, at time.Time) error
}

// GrievanceRepositoryInterface defines the interface for grievance repository operations
type GrievanceRepositoryInterface interface {
	Create(grievance *models.Grievance) error
	GetByID(orgID, id uuid.UUID) (*models.Grievance, error)
	Update(orgID, id uuid.UUID, updates map[string]interface{}) error
	SoftDelete(orgID, id uuid.UUID) error
}

// AttachmentRepositoryInterface defines the interface for attachment repository operations
type AttachmentRepositoryInterface interface {
	Create(attachment *models.Attachment) error
	GetByGrievanceID(orgID, grievanceID uuid.UUID) ([]models.Attachment, error)
}

// Repositories bundles every repository bound to one database handle. The
// TxManager hands a transaction-bound bundle to multi-step workflows.
type Repositories struct {
	Organizations OrganizationRepositoryInterface
	Departments   DepartmentRepositoryInterface
	Roles         RoleRepositoryInterface
	Users         UserRepositoryInterface
	Grievances    GrievanceRepositoryInterface
	Attachments   AttachmentRepositoryInterface
}

// TxManagerInterface runs a function with repositories bound to a single
// transaction: the whole function commits or rolls back as one unit.
type TxManagerInterface interface {
	Do(fn func(tx *Repositories) error) error
}
