package service

import (
	"errors"
	"fmt"
	"time"

	"grievance-portal-backend/internal/database/models"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrganizationService handles registration and updates of tenant organizations
type OrganizationService struct {
	repo      repository.OrganizationRepositoryInterface
	validator *validator.Validate
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo repository.OrganizationRepositoryInterface, validator *validator.Validate) *OrganizationService {
	return &OrganizationService{repo: repo, validator: validator}
}

// CreateOrganizationRequest represents the public registration payload
type CreateOrganizationRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Website     string `json:"website" validate:"required,max=200"`
	Logo        string `json:"logo" validate:"max=500"`
	Description string `json:"description" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,max=20"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Address     string `json:"address" validate:"required,max=200"`
}

// UpdateOrganizationRequest represents the organization update payload. The
// contact email is immutable; everything else is replaced wholesale.
type UpdateOrganizationRequest struct {
	ID          string `json:"_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Website     string `json:"website" validate:"required,max=200"`
	Logo        string `json:"logo" validate:"required,max=500"`
	Description string `json:"description" validate:"required"`
	City        string `json:"city" validate:"required,max=100"`
	State       string `json:"state" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,max=20"`
	Phone       string `json:"phone" validate:"required,max=20"`
	Address     string `json:"address" validate:"required,max=200"`
}

// OrganizationResponse represents the response for organization operations
type OrganizationResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Website     string    `json:"website"`
	Logo        string    `json:"logo"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Pincode     string    `json:"pincode"`
	Phone       string    `json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Create registers a new organization. Registration is public and creates no
// users; the super-admin bootstrap happens separately after OTP verification.
func (s *OrganizationService) Create(req *CreateOrganizationRequest) (*OrganizationResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing organization: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrOrganizationExists
	}

	org := &models.Organization{
		Name:        req.Name,
		Email:       req.Email,
		Website:     req.Website,
		Logo:        req.Logo,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		Pincode:     req.Pincode,
		Phone:       req.Phone,
	}

	if err := s.repo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return toOrganizationResponse(org), nil
}

// Update replaces the mutable fields of an organization
func (s *OrganizationService) Update(req *UpdateOrganizationRequest) (*OrganizationResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apperrors.NewValidationError("_id", "must be a valid id")
	}

	org, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	org.Name = req.Name
	org.Website = req.Website
	org.Logo = req.Logo
	org.Description = req.Description
	org.City = req.City
	org.State = req.State
	org.Country = req.Country
	org.Pincode = req.Pincode
	org.Phone = req.Phone
	org.Address = req.Address

	if err := s.repo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return toOrganizationResponse(org), nil
}

func toOrganizationResponse(org *models.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Email:       org.Email,
		Website:     org.Website,
		Logo:        org.Logo,
		Description: org.Description,
		Address:     org.Address,
		City:        org.City,
		State:       org.State,
		Country:     org.Country,
		Pincode:     org.Pincode,
		Phone:       org.Phone,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}
