package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/database/models"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/logger"
	"grievance-portal-backend/internal/realtime"
	"grievance-portal-backend/internal/repository"
	"grievance-portal-backend/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxAttachments caps files per grievance
const MaxAttachments = 5

// GrievanceService handles grievance workflows including attachment uploads
// and realtime notifications
type GrievanceService struct {
	repo      repository.GrievanceRepositoryInterface
	deptRepo  repository.DepartmentRepositoryInterface
	userRepo  repository.UserRepositoryInterface
	txManager repository.TxManagerInterface
	uploader  storage.Uploader
	hub       *realtime.Hub
	validator *validator.Validate
}

// NewGrievanceService creates a new grievance service
func NewGrievanceService(
	repo repository.GrievanceRepositoryInterface,
	deptRepo repository.DepartmentRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	txManager repository.TxManagerInterface,
	uploader storage.Uploader,
	hub *realtime.Hub,
	validator *validator.Validate,
) *GrievanceService {
	return &GrievanceService{
		repo:      repo,
		deptRepo:  deptRepo,
		userRepo:  userRepo,
		txManager: txManager,
		uploader:  uploader,
		hub:       hub,
		validator: validator,
	}
}

// CreateGrievanceRequest represents the request to file a grievance
type CreateGrievanceRequest struct {
	Title        string `json:"title" form:"title" validate:"required,min=5,max=100"`
	Description  string `json:"description" form:"description" validate:"required,min=10,max=1000"`
	DepartmentID string `json:"department_id" form:"department_id" validate:"required,uuid"`
	Severity     string `json:"severity" form:"severity" validate:"required,oneof=low medium high"`
}

// UpdateGrievanceRequest represents a partial update of a grievance. Which
// fields the caller may touch depends on their permissions.
type UpdateGrievanceRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=5,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,min=10,max=1000"`
	DepartmentID *string `json:"department_id,omitempty" validate:"omitempty,uuid"`
	Severity     *string `json:"severity,omitempty" validate:"omitempty,oneof=low medium high"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=submitted reviewing assigned in-progress resolved dismissed"`
	AssignedTo   *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
}

// AttachmentUpload is one incoming multipart file
type AttachmentUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AttachmentResponse represents one stored attachment
type AttachmentResponse struct {
	ID       uuid.UUID `json:"id"`
	Filename string    `json:"filename"`
	FileType string    `json:"filetype"`
	FileSize int64     `json:"filesize"`
	URL      string    `json:"url"`
}

// GrievanceResponse represents the response for grievance operations
type GrievanceResponse struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	DepartmentID uuid.UUID            `json:"department_id"`
	Severity     string               `json:"severity"`
	Status       string               `json:"status"`
	EmployeeID   string               `json:"employee_id"`
	ReportedBy   uuid.UUID            `json:"reported_by"`
	AssignedTo   *uuid.UUID           `json:"assigned_to,omitempty"`
	Department   *DepartmentResponse  `json:"department,omitempty"`
	Reporter     *UserResponse        `json:"reporter,omitempty"`
	Assignee     *UserResponse        `json:"assignee,omitempty"`
	Attachments  []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// Create files a grievance with up to MaxAttachments files. Uploads and the
// database rows commit or roll back together; blobs already uploaded when a
// later step fails are removed best effort.
func (s *GrievanceService) Create(caller *auth.Caller, req *CreateGrievanceRequest, files []AttachmentUpload) (*GrievanceResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	if len(files) > MaxAttachments {
		return nil, apperrors.ErrTooManyAttachments
	}

	deptID, _ := uuid.Parse(req.DepartmentID)
	if _, err := s.deptRepo.GetByID(caller.OrganizationID, deptID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidDepartment
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	grievanceID := uuid.New()
	var uploaded []string

	err := s.txManager.Do(func(tx *repository.Repositories) error {
		grievance := &models.Grievance{
			BaseModel:      models.BaseModel{ID: grievanceID},
			OrganizationID: caller.OrganizationID,
			Title:          req.Title,
			Description:    req.Description,
			DepartmentID:   deptID,
			Severity:       models.GrievanceSeverity(req.Severity),
			Status:         models.StatusSubmitted,
			IsActive:       true,
			EmployeeID:     caller.EmployeeID,
			ReportedBy:     caller.UserID,
		}
		if err := tx.Grievances.Create(grievance); err != nil {
			return fmt.Errorf("failed to create grievance: %w", err)
		}

		for _, file := range files {
			stored, err := s.uploader.Upload(caller.OrganizationID, file.Filename, file.Content)
			if err != nil {
				return apperrors.NewExternalError("storage", err)
			}
			uploaded = append(uploaded, stored.Key)

			attachment := &models.Attachment{
				OrganizationID: caller.OrganizationID,
				GrievanceID:    grievanceID,
				Filename:       file.Filename,
				FileType:       file.ContentType,
				FileSize:       file.Size,
				StorageKey:     stored.Key,
				URL:            stored.URL,
				UploadedBy:     caller.UserID,
			}
			if err := tx.Attachments.Create(attachment); err != nil {
				return fmt.Errorf("failed to create attachment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		for _, key := range uploaded {
			if delErr := s.uploader.Delete(key); delErr != nil {
				logger.New().WithField("key", key).WithError(delErr).Warn("Failed to clean up orphaned upload")
			}
		}
		return nil, err
	}

	grievance, err := s.repo.GetByID(caller.OrganizationID, grievanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload grievance: %w", err)
	}

	s.notify("grievance.created", grievance)
	return toGrievanceResponse(grievance), nil
}

// Update applies the widest update the caller's permissions allow: full edit,
// status only, or assignee only.
func (s *GrievanceService) Update(caller *auth.Caller, id uuid.UUID, req *UpdateGrievanceRequest) (*GrievanceResponse, error) {
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	switch {
	case caller.HasPermission(auth.PermUpdateGrievance):
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.DepartmentID != nil {
			deptID, _ := uuid.Parse(*req.DepartmentID)
			if _, err := s.deptRepo.GetByID(caller.OrganizationID, deptID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, apperrors.ErrInvalidDepartment
				}
				return nil, fmt.Errorf("failed to get department: %w", err)
			}
			updates["department_id"] = deptID
		}
		if req.Severity != nil {
			updates["severity"] = *req.Severity
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if req.AssignedTo != nil {
			assigneeID, err := s.resolveAssignee(caller, *req.AssignedTo)
			if err != nil {
				return nil, err
			}
			updates["assigned_to"] = assigneeID
		}
	case caller.HasPermission(auth.PermUpdateGrievanceStatus) && req.Status != nil:
		updates["status"] = *req.Status
	case caller.HasPermission(auth.PermUpdateGrievanceAssignee) && req.AssignedTo != nil:
		assigneeID, err := s.resolveAssignee(caller, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		updates["assigned_to"] = assigneeID
	default:
		return nil, apperrors.ErrPermissionDenied
	}
	if len(updates) == 0 {
		return nil, apperrors.ErrNothingToUpdate
	}

	if err := s.repo.Update(caller.OrganizationID, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to update grievance: %w", err)
	}

	grievance, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload grievance: %w", err)
	}

	s.notify("grievance.updated", grievance)
	return toGrievanceResponse(grievance), nil
}

// Delete soft deletes a grievance. Attachments stay linked for audit.
func (s *GrievanceService) Delete(caller *auth.Caller, id uuid.UUID) error {
	if err := s.repo.SoftDelete(caller.OrganizationID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGrievanceNotFound
		}
		return fmt.Errorf("failed to delete grievance: %w", err)
	}
	return nil
}

// GetByID retrieves a grievance with department, reporter, assignee and
// attachments loaded
func (s *GrievanceService) GetByID(caller *auth.Caller, id uuid.UUID) (*GrievanceResponse, error) {
	grievance, err := s.repo.GetByID(caller.OrganizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGrievanceNotFound
		}
		return nil, fmt.Errorf("failed to get grievance: %w", err)
	}
	return toGrievanceResponse(grievance), nil
}

// resolveAssignee checks the assignee exists in the caller's organization
func (s *GrievanceService) resolveAssignee(caller *auth.Caller, raw string) (uuid.UUID, error) {
	assigneeID, _ := uuid.Parse(raw)
	if _, err := s.userRepo.GetByID(caller.OrganizationID, assigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get assignee: %w", err)
	}
	return assigneeID, nil
}

// notify pushes a grievance event to all websocket clients
func (s *GrievanceService) notify(event string, g *models.Grievance) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"event":     event,
		"grievance": toGrievanceResponse(g),
	})
	if err != nil {
		logger.New().WithError(err).Warn("Failed to encode grievance notification")
		return
	}
	s.hub.Broadcast(payload)
}

func toGrievanceResponse(g *models.Grievance) *GrievanceResponse {
	resp := &GrievanceResponse{
		ID:           g.ID,
		Title:        g.Title,
		Description:  g.Description,
		DepartmentID: g.DepartmentID,
		Severity:     string(g.Severity),
		Status:       string(g.Status),
		EmployeeID:   g.EmployeeID,
		ReportedBy:   g.ReportedBy,
		AssignedTo:   g.AssignedTo,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.Department != nil {
		resp.Department = toDepartmentResponse(g.Department)
	}
	if g.Reporter != nil {
		resp.Reporter = toUserResponse(g.Reporter)
	}
	if g.Assignee != nil {
		resp.Assignee = toUserResponse(g.Assignee)
	}
	for i := range g.Attachments {
		a := &g.Attachments[i]
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:       a.ID,
			Filename: a.Filename,
			FileType: a.FileType,
			FileSize: a.FileSize,
			URL:      a.URL,
		})
	}
	return resp
}
