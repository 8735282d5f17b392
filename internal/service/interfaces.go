package service

import (
	"grievance-portal-backend/internal/auth"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// OrganizationServiceInterface defines operations on organizations
type OrganizationServiceInterface interface {
	Create(req *CreateOrganizationRequest) (*OrganizationResponse, error)
	Update(req *UpdateOrganizationRequest) (*OrganizationResponse, error)
}

// DepartmentServiceInterface defines operations on departments
type DepartmentServiceInterface interface {
	Create(caller *auth.Caller, req *CreateDepartmentRequest) (*DepartmentResponse, error)
	Update(caller *auth.Caller, id uuid.UUID, req *UpdateDepartmentRequest) (*DepartmentResponse, error)
	Delete(caller *auth.Caller, id uuid.UUID, req *DeleteDepartmentRequest) error
	GetByID(caller *auth.Caller, id uuid.UUID) (*DepartmentResponse, error)
	List(caller *auth.Caller, page, limit int) (*DepartmentListResponse, error)
}

// RoleServiceInterface defines operations on roles
type RoleServiceInterface interface {
	Create(caller *auth.Caller, req *CreateRoleRequest) (*RoleResponse, error)
	Update(caller *auth.Caller, id uuid.UUID, req *UpdateRoleRequest) (*RoleResponse, error)
	Delete(caller *auth.Caller, id uuid.UUID, req *DeleteRoleRequest) error
	GetByID(caller *auth.Caller, id uuid.UUID) (*RoleResponse, error)
	List(caller *auth.Caller) ([]RoleResponse, error)
	ResetDefaultRoles(caller *auth.Caller) error
}

// UserServiceInterface defines operations on users and identity
type UserServiceInterface interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	Create(caller *auth.Caller, req *CreateUserRequest) (*UserResponse, error)
	GetByID(caller *auth.Caller, id uuid.UUID) (*UserResponse, error)
	Update(caller *auth.Caller, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	UpdateProfile(caller *auth.Caller, req *UpdateProfileRequest) (*UserResponse, error)
	Delete(caller *auth.Caller, id uuid.UUID) error
	CreateSuperAdmin(req *CreateSuperAdminRequest) (*LoginResponse, error)
	GenerateOTP(req *GenerateOTPRequest) error
	CheckUsername(caller *auth.Caller, username string) (bool, error)
	CheckEmail(caller *auth.Caller, email string) (bool, error)
	CheckEmployeeID(caller *auth.Caller, employeeID string) (bool, error)
}

// GrievanceServiceInterface defines operations on grievances
type GrievanceServiceInterface interface {
	Create(caller *auth.Caller, req *CreateGrievanceRequest, files []AttachmentUpload) (*GrievanceResponse, error)
	Update(caller *auth.Caller, id uuid.UUID, req *UpdateGrievanceRequest) (*GrievanceResponse, error)
	Delete(caller *auth.Caller, id uuid.UUID) error
	GetByID(caller *auth.Caller, id uuid.UUID) (*GrievanceResponse, error)
}
