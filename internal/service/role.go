package service

import (
	"errors"
	"fmt"
	"time"

	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/database/models"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleService handles business logic for roles and their permission sets
type RoleService struct {
	repo      repository.RoleRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	txManager repository.TxManagerInterface
	validator *validator.Validate
}

// NewRoleService creates a new role service
func NewRoleService(
	repo repository.RoleRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	txManager repository.TxManagerInterface,
	validator *validator.Validate,
) *RoleService {
	return &RoleService{
		repo:      repo,
		userRepo:  userRepo,
		txManager: txManager,
		validator: validator,
	}
}

// CreateRoleRequest represents the request to create a role
type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Permissions []string `json:"permissions" validate:"required"`
}

// UpdateRoleRequest represents the request to update a role
type UpdateRoleRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Permissions []string `json:"permissions,omitempty"`
}

// DeleteRoleRequest optionally names a replacement role for users of the one
// being deleted
type DeleteRoleRequest struct {
	ReplaceRoleID string `json:"replace_role_id" validate:"omitempty,uuid"`
}

// RoleResponse represents the response for role operations
type RoleResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Permissions    []string  `json:"permissions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Create creates a role. Permission tags are checked against the registry.
func (s *RoleService) Create(caller *auth.Caller, req *CreateRoleRequest) (*RoleResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if err := checkPermissionTags(req.Permissions); err != nil {
		return nil, err
	}

	role := &models.Role{
		OrganizationID: caller.OrganizationID,
		Name:           req.Name,
		Permissions:    req.Permissions,
	}

	if err := s.repo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return toRoleResponse(role), nil
}

// Update applies a partial update to a role
func (s *RoleService) Update(caller *auth.Caller, id uuid.UUID, req *UpdateRoleRequest) (*RoleResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Permissions != nil {
		if err := checkPermissionTags(req.Permissions); err != nil {
			return nil, err
		}
		updates["permissions"] = req.Permissions
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if err := s.repo.Update(caller.OrganizationID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	role, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload role: %w", err)
	}
	return toRoleResponse(role), nil
}

// Delete removes a role with the same reassign-or-block rule as departments,
// atomically.
func (s *RoleService) Delete(caller *auth.Caller, id uuid.UUID, req *DeleteRoleRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	return s.txManager.Do(func(tx *repository.Repositories) error {
		if _, err := tx.Roles.GetByID(caller.OrganizationID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRoleNotFound
			}
			return fmt.Errorf("failed to get role: %w", err)
		}

		if req.ReplaceRoleID != "" {
			replaceID, err := uuid.Parse(req.ReplaceRoleID)
			if err != nil {
				return apperrors.NewValidationError("replace_role_id", "must be a valid id")
			}

			if _, err := tx.Roles.GetByID(caller.OrganizationID, replaceID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFoundError("replacement role")
				}
				return fmt.Errorf("failed to get replacement role: %w", err)
			}

			updated, err := tx.Users.ReassignRole(caller.OrganizationID, id, replaceID)
			if err != nil {
				return fmt.Errorf("failed to reassign users: %w", err)
			}
			if updated == 0 {
				return apperrors.ErrNoUsersToReassign
			}
		} else {
			count, err := tx.Users.CountByRole(caller.OrganizationID, id)
			if err != nil {
				return fmt.Errorf("failed to count role users: %w", err)
			}
			if count > 0 {
				return apperrors.ErrRoleInUse
			}
		}

		if err := tx.Roles.Delete(caller.OrganizationID, id); err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a role within the caller's organization
func (s *RoleService) GetByID(caller *auth.Caller, id uuid.UUID) (*RoleResponse, error) {
	role, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	return toRoleResponse(role), nil
}

// List retrieves every role of the caller's organization
func (s *RoleService) List(caller *auth.Caller) ([]RoleResponse, error) {
	roles, err := s.repo.GetByOrganizationID(caller.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	responses := make([]RoleResponse, 0, len(roles))
	for i := range roles {
		responses = append(responses, *toRoleResponse(&roles[i]))
	}
	return responses, nil
}

// ResetDefaultRoles installs or refreshes the default role bundles for the
// caller's organization
func (s *RoleService) ResetDefaultRoles(caller *auth.Caller) error {
	for _, bundle := range auth.DefaultRoleBundles {
		if err := s.repo.UpsertByName(caller.OrganizationID, bundle.Name, bundle.Permissions); err != nil {
			return fmt.Errorf("failed to reset role %s: %w", bundle.Name, err)
		}
	}
	return nil
}

func checkPermissionTags(tags []string) error {
	for _, tag := range tags {
		if !auth.IsKnownPermission(tag) {
			return apperrors.NewValidationError("permissions", fmt.Sprintf("unknown permission tag %q", tag))
		}
	}
	return nil
}

func toRoleResponse(r *models.Role) *RoleResponse {
	return &RoleResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		Permissions:    r.Permissions,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
