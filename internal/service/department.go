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

// DepartmentService handles business logic for departments
type DepartmentService struct {
	repo      repository.DepartmentRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	txManager repository.TxManagerInterface
	validator *validator.Validate
}

// NewDepartmentService creates a new department service
func NewDepartmentService(
	repo repository.DepartmentRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	txManager repository.TxManagerInterface,
	validator *validator.Validate,
) *DepartmentService {
	return &DepartmentService{
		repo:      repo,
		userRepo:  userRepo,
		txManager: txManager,
		validator: validator,
	}
}

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateDepartmentRequest represents the request to update a department.
// At least one field must be supplied.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// DeleteDepartmentRequest optionally names a replacement department for
// users of the one being deleted
type DeleteDepartmentRequest struct {
	ReplaceDepartmentID string `json:"replace_department_id" validate:"omitempty,uuid"`
}

// DepartmentResponse represents the response for department operations
type DepartmentResponse struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalDepartments"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// DepartmentListResponse represents a paginated department listing
type DepartmentListResponse struct {
	Departments    []DepartmentResponse `json:"departments"`
	PaginationInfo PaginationInfo       `json:"paginationInfo"`
}

// Create creates a department. Names are unique per organization
// case-insensitively.
func (s *DepartmentService) Create(caller *auth.Caller, req *CreateDepartmentRequest) (*DepartmentResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByNameInsensitive(caller.OrganizationID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing department: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrDepartmentExists
	}

	department := &models.Department{
		OrganizationID: caller.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		IsActive:       true,
	}

	if err := s.repo.Create(department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return toDepartmentResponse(department), nil
}

// Update applies a partial update to a department
func (s *DepartmentService) Update(caller *auth.Caller, id uuid.UUID, req *UpdateDepartmentRequest) (*DepartmentResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if req.Name != nil {
		existing, err := s.repo.GetByNameInsensitive(caller.OrganizationID, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing department: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.ErrDepartmentExists
		}
	}

	if err := s.repo.Update(caller.OrganizationID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	department, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload department: %w", err)
	}
	return toDepartmentResponse(department), nil
}

// Delete removes a department. With a replacement id every referencing user
// is repointed first; without one the department must be unreferenced. The
// whole sequence runs in a single transaction.
func (s *DepartmentService) Delete(caller *auth.Caller, id uuid.UUID, req *DeleteDepartmentRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	return s.txManager.Do(func(tx *repository.Repositories) error {
		if _, err := tx.Departments.GetByID(caller.OrganizationID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrDepartmentNotFound
			}
			return fmt.Errorf("failed to get department: %w", err)
		}

		if req.ReplaceDepartmentID != "" {
			replaceID, err := uuid.Parse(req.ReplaceDepartmentID)
			if err != nil {
				return apperrors.NewValidationError("replace_department_id", "must be a valid id")
			}

			if _, err := tx.Departments.GetByID(caller.OrganizationID, replaceID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFoundError("replacement department")
				}
				return fmt.Errorf("failed to get replacement department: %w", err)
			}

			updated, err := tx.Users.ReassignDepartment(caller.OrganizationID, id, replaceID)
			if err != nil {
				return fmt.Errorf("failed to reassign users: %w", err)
			}
			if updated == 0 {
				// Replacement requested but nothing referenced the target;
				// the caller's view of the data is stale.
				return apperrors.ErrNoUsersToReassign
			}
		} else {
			count, err := tx.Users.CountByDepartment(caller.OrganizationID, id)
			if err != nil {
				return fmt.Errorf("failed to count department users: %w", err)
			}
			if count > 0 {
				return apperrors.ErrDepartmentInUse
			}
		}

		if err := tx.Departments.Delete(caller.OrganizationID, id); err != nil {
			return fmt.Errorf("failed to delete department: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a department within the caller's organization
func (s *DepartmentService) GetByID(caller *auth.Caller, id uuid.UUID) (*DepartmentResponse, error) {
	department, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return toDepartmentResponse(department), nil
}

// List retrieves the caller's departments sorted by name, paginated
func (s *DepartmentService) List(caller *auth.Caller, page, limit int) (*DepartmentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	departments, total, err := s.repo.GetByOrganizationID(caller.OrganizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	responses := make([]DepartmentResponse, 0, len(departments))
	for i := range departments {
		responses = append(responses, *toDepartmentResponse(&departments[i]))
	}

	return &DepartmentListResponse{
		Departments: responses,
		PaginationInfo: PaginationInfo{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       limit,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}, nil
}

func toDepartmentResponse(d *models.Department) *DepartmentResponse {
	return &DepartmentResponse{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Description:    d.Description,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
