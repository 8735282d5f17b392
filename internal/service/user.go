package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/database/models"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/logger"
	"grievance-portal-backend/internal/mailer"
	"grievance-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles user accounts, login and the super admin bootstrap flow
type UserService struct {
	repo        repository.UserRepositoryInterface
	orgRepo     repository.OrganizationRepositoryInterface
	roleRepo    repository.RoleRepositoryInterface
	deptRepo    repository.DepartmentRepositoryInterface
	txManager   repository.TxManagerInterface
	authService *auth.Service
	mailer      mailer.Mailer
	otpLifetime time.Duration
	validator   *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(
	repo repository.UserRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	roleRepo repository.RoleRepositoryInterface,
	deptRepo repository.DepartmentRepositoryInterface,
	txManager repository.TxManagerInterface,
	authService *auth.Service,
	mail mailer.Mailer,
	otpLifetime time.Duration,
	validator *validator.Validate,
) *UserService {
	return &UserService{
		repo:        repo,
		orgRepo:     orgRepo,
		roleRepo:    roleRepo,
		deptRepo:    deptRepo,
		txManager:   txManager,
		authService: authService,
		mailer:      mail,
		otpLifetime: otpLifetime,
		validator:   validator,
	}
}

// LoginRequest carries login credentials. Exactly one of username or email
// must be set alongside the password.
type LoginRequest struct {
	Username   string `json:"username" validate:"required_without=Email,excluded_with=Email,omitempty,min=3,max=30"`
	Email      string `json:"email" validate:"required_without=Username,omitempty,email"`
	Password   string `json:"password" validate:"required,min=6"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse carries the signed token and the authenticated user
type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Username           string   `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email              string   `json:"email" validate:"required,email,max=255"`
	EmployeeID         string   `json:"employee_id" validate:"required,max=40"`
	Password           string   `json:"password" validate:"required,min=6,max=72"`
	FirstName          string   `json:"firstname" validate:"required,max=100"`
	LastName           string   `json:"lastname" validate:"required,max=100"`
	PhoneNumber        string   `json:"phone_number" validate:"omitempty,max=20"`
	RoleID             string   `json:"role_id" validate:"required,uuid"`
	DepartmentID       string   `json:"department_id" validate:"required,uuid"`
	SpecialPermissions []string `json:"special_permissions"`
}

// UpdateUserRequest represents a partial update of a user
type UpdateUserRequest struct {
	Username           *string  `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	FirstName          *string  `json:"firstname,omitempty" validate:"omitempty,max=100"`
	LastName           *string  `json:"lastname,omitempty" validate:"omitempty,max=100"`
	PhoneNumber        *string  `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	RoleID             *string  `json:"role_id,omitempty" validate:"omitempty,uuid"`
	DepartmentID       *string  `json:"department_id,omitempty" validate:"omitempty,uuid"`
	SpecialPermissions []string `json:"special_permissions,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

// UpdateProfileRequest is the self-service subset of user updates
type UpdateProfileRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitempty,alphanum,min=3,max=30"`
	FirstName   *string `json:"firstname,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"lastname,omitempty" validate:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
}

// CreateSuperAdminRequest bootstraps the first account of an organization.
// It must carry the OTP that was mailed to the organization address.
type CreateSuperAdminRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	OTP            string `json:"otp" validate:"required,len=6,numeric"`
	Username       string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email          string `json:"email" validate:"required,email,max=255"`
	EmployeeID     string `json:"employee_id" validate:"required,max=40"`
	Password       string `json:"password" validate:"required,min=6,max=72"`
	FirstName      string `json:"firstname" validate:"required,max=100"`
	LastName       string `json:"lastname" validate:"required,max=100"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=20"`
}

// GenerateOTPRequest asks for a fresh OTP to be mailed to the organization
type GenerateOTPRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrganizationID     uuid.UUID           `json:"organization_id"`
	Username           string              `json:"username"`
	Email              string              `json:"email"`
	EmployeeID         string              `json:"employee_id"`
	FirstName          string              `json:"firstname"`
	LastName           string              `json:"lastname"`
	Name               string              `json:"name"`
	PhoneNumber        string              `json:"phone_number,omitempty"`
	RoleID             uuid.UUID           `json:"role_id"`
	DepartmentID       uuid.UUID           `json:"department_id"`
	SpecialPermissions []string            `json:"special_permissions,omitempty"`
	IsActive           bool                `json:"is_active"`
	LastLogin          *time.Time          `json:"last_login,omitempty"`
	Role               *RoleResponse       `json:"role,omitempty"`
	Department         *DepartmentResponse `json:"department,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// Login authenticates a user by username or email. Unknown accounts and
// wrong passwords produce the same error.
func (s *UserService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetActiveByUsernameOrEmail(req.Username, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.ComparePassword(req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.authService.IssueToken(user.ID, user.OrganizationID, req.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := s.repo.UpdateLastLogin(user.ID, time.Now()); err != nil {
		logger.New().WithField("user_id", user.ID).WithError(err).Warn("Failed to record last login")
	}

	return &LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Create creates a user inside the caller's organization. Username, email and
// employee id must all be free among non-deleted users.
func (s *UserService) Create(caller *auth.Caller, req *CreateUserRequest) (*UserResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if err := checkPermissionTags(req.SpecialPermissions); err != nil {
		return nil, err
	}

	roleID, _ := uuid.Parse(req.RoleID)
	deptID, _ := uuid.Parse(req.DepartmentID)

	if _, err := s.roleRepo.GetByID(caller.OrganizationID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if _, err := s.deptRepo.GetByID(caller.OrganizationID, deptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	dup, err := s.repo.FindDuplicate(caller.OrganizationID, req.Username, req.Email, req.EmployeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check duplicates: %w", err)
	}
	if dup != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &models.User{
		OrganizationID:     caller.OrganizationID,
		RoleID:             roleID,
		DepartmentID:       deptID,
		Username:           req.Username,
		Email:              req.Email,
		EmployeeID:         req.EmployeeID,
		Password:           req.Password,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		PhoneNumber:        req.PhoneNumber,
		SpecialPermissions: req.SpecialPermissions,
		IsActive:           true,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

// GetByID retrieves a user with role and department loaded
func (s *UserService) GetByID(caller *auth.Caller, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

// Update applies a partial update to a user
func (s *UserService) Update(caller *auth.Caller, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		if err := s.checkUsernameFree(caller.OrganizationID, *req.Username); err != nil {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.RoleID != nil {
		roleID, _ := uuid.Parse(*req.RoleID)
		if _, err := s.roleRepo.GetByID(caller.OrganizationID, roleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRoleNotFound
			}
			return nil, fmt.Errorf("failed to get role: %w", err)
		}
		updates["role_id"] = roleID
	}
	if req.DepartmentID != nil {
		deptID, _ := uuid.Parse(*req.DepartmentID)
		if _, err := s.deptRepo.GetByID(caller.OrganizationID, deptID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrDepartmentNotFound
			}
			return nil, fmt.Errorf("failed to get department: %w", err)
		}
		updates["department_id"] = deptID
	}
	if req.SpecialPermissions != nil {
		if err := checkPermissionTags(req.SpecialPermissions); err != nil {
			return nil, err
		}
		updates["special_permissions"] = req.SpecialPermissions
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if err := s.repo.Update(caller.OrganizationID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetByID(caller, id)
}

// UpdateProfile lets a signed-in user edit their own name, phone and username
func (s *UserService) UpdateProfile(caller *auth.Caller, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		if err := s.checkUsernameFree(caller.OrganizationID, *req.Username); err != nil {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if err := s.repo.Update(caller.OrganizationID, caller.UserID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetByID(caller, caller.UserID)
}

// Delete soft deletes a user. The row stays for grievance history.
func (s *UserService) Delete(caller *auth.Caller, id uuid.UUID) error {
	if err := s.repo.SoftDelete(caller.OrganizationID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// CreateSuperAdmin verifies the mailed OTP and atomically creates the
// SUPER_ADMIN role, the Admin department and the first user of the
// organization, then signs the user in.
func (s *UserService) CreateSuperAdmin(req *CreateSuperAdminRequest) (*LoginResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	orgID, _ := uuid.Parse(req.OrganizationID)
	org, err := s.orgRepo.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	// Expiry is checked when the OTP is used, not on a timer
	if !org.HasValidOTP(time.Now()) {
		return nil, apperrors.ErrOTPExpired
	}
	if bcrypt.CompareHashAndPassword([]byte(*org.OTPHash), []byte(req.OTP)) != nil {
		return nil, apperrors.ErrInvalidOTP
	}

	roles, err := s.roleRepo.GetByOrganizationID(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	for i := range roles {
		if roles[i].Name == auth.SuperAdminRoleName {
			count, err := s.repo.CountByRole(orgID, roles[i].ID)
			if err != nil {
				return nil, fmt.Errorf("failed to count super admins: %w", err)
			}
			if count > 0 {
				return nil, apperrors.ErrSuperAdminExists
			}
		}
	}

	var user *models.User
	err = s.txManager.Do(func(tx *repository.Repositories) error {
		role := &models.Role{
			OrganizationID: orgID,
			Name:           auth.SuperAdminRoleName,
			Permissions:    auth.DefaultAdminPermissions,
		}
		if err := tx.Roles.Create(role); err != nil {
			return fmt.Errorf("failed to create super admin role: %w", err)
		}

		dept := &models.Department{
			OrganizationID: orgID,
			Name:           auth.AdminDepartmentName,
			Description:    "Administration",
			IsActive:       true,
		}
		if err := tx.Departments.Create(dept); err != nil {
			return fmt.Errorf("failed to create admin department: %w", err)
		}

		user = &models.User{
			OrganizationID: orgID,
			RoleID:         role.ID,
			DepartmentID:   dept.ID,
			Username:       req.Username,
			Email:          req.Email,
			EmployeeID:     req.EmployeeID,
			Password:       req.Password,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			PhoneNumber:    req.PhoneNumber,
			IsActive:       true,
		}
		if err := tx.Users.Create(user); err != nil {
			return fmt.Errorf("failed to create super admin user: %w", err)
		}

		if err := tx.Organizations.ClearOTP(orgID); err != nil {
			return fmt.Errorf("failed to clear OTP: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.authService.IssueToken(user.ID, orgID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// GenerateOTP stores a hashed one-time code for the organization and mails
// the plaintext to the organization address
func (s *UserService) GenerateOTP(req *GenerateOTPRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	orgID, _ := uuid.Parse(req.OrganizationID)
	org, err := s.orgRepo.GetByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to get organization: %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash OTP: %w", err)
	}

	if err := s.orgRepo.SetOTP(orgID, string(hash), time.Now().Add(s.otpLifetime)); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	body := fmt.Sprintf("<h1>Your OTP is %s</h1><p>It expires in %d minutes.</p>", code, int(s.otpLifetime.Minutes()))
	if err := s.mailer.Send(org.Email, "Email Verification", body); err != nil {
		return apperrors.NewExternalError("mailer", err)
	}

	return nil
}

// CheckUsername reports whether a username is already taken in the caller's
// organization
func (s *UserService) CheckUsername(caller *auth.Caller, username string) (bool, error) {
	exists, err := s.repo.ExistsByUsername(caller.OrganizationID, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// CheckEmail reports whether an email is already taken in the caller's
// organization
func (s *UserService) CheckEmail(caller *auth.Caller, email string) (bool, error) {
	exists, err := s.repo.ExistsByEmail(caller.OrganizationID, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// CheckEmployeeID reports whether an employee id is already taken in the
// caller's organization
func (s *UserService) CheckEmployeeID(caller *auth.Caller, employeeID string) (bool, error) {
	exists, err := s.repo.ExistsByEmployeeID(caller.OrganizationID, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to check employee id: %w", err)
	}
	return exists, nil
}

func (s *UserService) checkUsernameFree(orgID uuid.UUID, username string) error {
	exists, err := s.repo.ExistsByUsername(orgID, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return apperrors.ErrUserExists
	}
	return nil
}

// generateOTPCode returns a 6 digit code with leading zeros preserved
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *models.User) *UserResponse {
	resp := &UserResponse{
		ID:                 u.ID,
		OrganizationID:     u.OrganizationID,
		Username:           u.Username,
		Email:              u.Email,
		EmployeeID:         u.EmployeeID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Name:               u.FullName(),
		PhoneNumber:        u.PhoneNumber,
		RoleID:             u.RoleID,
		DepartmentID:       u.DepartmentID,
		SpecialPermissions: u.SpecialPermissions,
		IsActive:           u.IsActive,
		LastLogin:          u.LastLogin,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
	if u.Role != nil {
		resp.Role = toRoleResponse(u.Role)
	}
	if u.Department != nil {
		resp.Department = toDepartmentResponse(u.Department)
	}
	return resp
}
