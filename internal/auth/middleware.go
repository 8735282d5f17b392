package auth

import (
	"net/http"
	"strings"

	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// Middleware resolves bearer credentials into a Caller and gates routes on
// permission tags
type Middleware struct {
	service  *Service
	userRepo repository.UserRepositoryInterface
	roleRepo repository.RoleRepositoryInterface
}

// NewMiddleware creates the authentication middleware
func NewMiddleware(service *Service, userRepo repository.UserRepositoryInterface, roleRepo repository.RoleRepositoryInterface) *Middleware {
	return &Middleware{service: service, userRepo: userRepo, roleRepo: roleRepo}
}

// RequireAuth validates the bearer token, loads the caller's user and role,
// and stores an explicit Caller on the context. Every failure here is an
// authentication failure (401), distinct from missing permissions (403).
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, apperrors.ErrMissingCredential)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		claims, err := m.service.ParseToken(tokenString)
		if err != nil {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		user, err := m.userRepo.GetByID(claims.OrganizationID, claims.UserID)
		if err != nil || !user.IsActive {
			abortUnauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		caller := &Caller{
			UserID:         user.ID,
			OrganizationID: user.OrganizationID,
			RoleID:         user.RoleID,
			EmployeeID:     user.EmployeeID,
		}

		if role, err := m.roleRepo.GetByID(user.OrganizationID, user.RoleID); err == nil {
			caller.Permissions = append(caller.Permissions, role.Permissions...)
		}
		caller.Permissions = append(caller.Permissions, user.SpecialPermissions...)

		SetCaller(c, caller)
		c.Next()
	}
}

// RequirePermission gates a route on holding at least one of the given tags.
// Must run after RequireAuth.
func (m *Middleware) RequirePermission(tags ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := GetCaller(c)
		if !ok {
			abortUnauthorized(c, apperrors.ErrMissingCredential)
			return
		}

		if !caller.HasAnyPermission(tags...) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Permission denied",
				"errors":  []string{apperrors.ErrPermissionDenied.Error()},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Authentication failed",
		"errors":  []string{err.Error()},
	})
	c.Abort()
}
