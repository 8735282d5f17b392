package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const callerContextKey = "auth_caller"

// Caller is the resolved identity of the requester: explicit state threaded
// into services rather than ambient request globals. Permissions holds the
// union of the caller's role permissions and special permissions.
type Caller struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	RoleID         uuid.UUID
	EmployeeID     string
	Permissions    []string
}

// HasPermission reports whether the caller holds the permission tag
func (c *Caller) HasPermission(tag string) bool {
	for _, p := range c.Permissions {
		if p == tag {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the caller holds at least one of the tags
func (c *Caller) HasAnyPermission(tags ...string) bool {
	for _, tag := range tags {
		if c.HasPermission(tag) {
			return true
		}
	}
	return false
}

// SetCaller stores the caller on the request context
func SetCaller(c *gin.Context, caller *Caller) {
	c.Set(callerContextKey, caller)
}

// GetCaller retrieves the caller resolved by the auth middleware
func GetCaller(c *gin.Context) (*Caller, bool) {
	v, exists := c.Get(callerContextKey)
	if !exists {
		return nil, false
	}
	caller, ok := v.(*Caller)
	return caller, ok
}
