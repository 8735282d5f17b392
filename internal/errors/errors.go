package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found. Entities
// outside the caller's organization report not-found as well, never the record.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents a duplicate-unique-field conflict
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in organization"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a malformed or missing input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors collects every field failure of a request so callers get
// the full list, not just the first
type ValidationErrors struct {
	Errors []string
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Errors[0])
}

// AuthenticationError represents a missing or invalid credential
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents a valid credential lacking a required permission
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConflictError represents a business-rule conflict such as deleting an
// entity that is still referenced
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// ExternalError represents a failure in an external collaborator (blob
// storage upload, outbound mail)
type ExternalError struct {
	Collaborator string
	Err          error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Collaborator, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// Entity Not Found Errors
var (
	ErrOrganizationNotFound = &NotFoundError{Entity: "organization"}
	ErrDepartmentNotFound   = &NotFoundError{Entity: "department"}
	ErrRoleNotFound         = &NotFoundError{Entity: "role"}
	ErrUserNotFound         = &NotFoundError{Entity: "user"}
	ErrGrievanceNotFound    = &NotFoundError{Entity: "grievance"}
)

// Already Exists Errors
var (
	ErrOrganizationExists = &AlreadyExistsError{Entity: "organization", Context: "with this email"}
	ErrDepartmentExists   = &AlreadyExistsError{Entity: "department", Context: "with this name in the organization"}
	ErrUserExists         = &AlreadyExistsError{Entity: "user", Context: "with this email, username or employee ID"}
	ErrSuperAdminExists   = &AlreadyExistsError{Entity: "super admin", Context: "for this organization"}
)

// Business Rule Errors
var (
	ErrDepartmentInUse    = &ConflictError{Message: "department is assigned to a user"}
	ErrRoleInUse          = &ConflictError{Message: "role is assigned to a user"}
	ErrNoUsersToReassign  = errors.New("no users found to update")
	ErrNothingToUpdate    = errors.New("no fields provided to update")
	ErrTooManyAttachments = errors.New("too many attachments")
	ErrInvalidDepartment  = errors.New("invalid department")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired")
)

// Authentication & Authorization Errors
var (
	// ErrInvalidCredentials deliberately covers both unknown identity and
	// wrong password so the response does not reveal which one failed.
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid credentials"}
	ErrMissingCredential  = &AuthenticationError{Message: "authorization header is required"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrPermissionDenied   = &AuthorizationError{Message: "permission denied"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError or ValidationErrors
func IsValidation(err error) bool {
	var validationErr *ValidationError
	var validationErrs *ValidationErrors
	return errors.As(err, &validationErr) || errors.As(err, &validationErrs)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsExternal checks if an error is an ExternalError
func IsExternal(err error) bool {
	var extErr *ExternalError
	return errors.As(err, &extErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrors wraps a list of field-level messages
func NewValidationErrors(msgs ...string) error {
	return &ValidationErrors{Errors: msgs}
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// NewExternalError wraps a collaborator failure
func NewExternalError(collaborator string, err error) error {
	return &ExternalError{Collaborator: collaborator, Err: err}
}

// FieldErrors extracts the collected messages from a ValidationErrors, or a
// single-element slice for any other error
func FieldErrors(err error) []string {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return []string{err.Error()}
}
