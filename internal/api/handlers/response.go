package handlers

import (
	"errors"
	"net/http"

	"grievance-portal-backend/internal/auth"
	apperrors "grievance-portal-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// respondOK writes a success envelope
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps a service error onto a status code and failure envelope.
// Unclassified errors surface as a generic 500 so internals never leak.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		c.JSON(status, Response{
			Success: false,
			Message: "Internal server error",
			Errors:  []string{"internal server error"},
		})
		return
	}

	c.JSON(status, Response{
		Success: false,
		Message: messageFor(status),
		Errors:  apperrors.FieldErrors(err),
	})
}

func statusFor(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsAuthentication(err):
		return http.StatusUnauthorized
	case apperrors.IsAuthorization(err):
		return http.StatusForbidden
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsAlreadyExists(err), apperrors.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrNothingToUpdate),
		errors.Is(err, apperrors.ErrNoUsersToReassign),
		errors.Is(err, apperrors.ErrTooManyAttachments),
		errors.Is(err, apperrors.ErrInvalidDepartment),
		errors.Is(err, apperrors.ErrInvalidOTP),
		errors.Is(err, apperrors.ErrOTPExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Request validation failed"
	case http.StatusUnauthorized:
		return "Authentication failed"
	case http.StatusForbidden:
		return "Permission denied"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusConflict:
		return "Conflict"
	default:
		return "Request failed"
	}
}

// bindJSON decodes the request body and converts decode failures into the
// standard envelope
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Request validation failed",
			Errors:  []string{"invalid request body"},
		})
		return false
	}
	return true
}

// requireCaller fetches the identity resolved by the auth middleware
func requireCaller(c *gin.Context) (*auth.Caller, bool) {
	caller, ok := auth.GetCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, Response{
			Success: false,
			Message: "Authentication failed",
			Errors:  []string{"authorization header is required"},
		})
		return nil, false
	}
	return caller, true
}

// pathUUID parses a :id style path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Request validation failed",
			Errors:  []string{"invalid " + name + " parameter"},
		})
		return uuid.Nil, false
	}
	return id, true
}
