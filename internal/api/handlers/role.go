package handlers

import (
	"net/http"

	"grievance-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RoleHandler handles HTTP requests for roles
type RoleHandler struct {
	service service.RoleServiceInterface
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(service service.RoleServiceInterface) *RoleHandler {
	return &RoleHandler{service: service}
}

// Create handles POST /api/v1/roles/create
// @Summary Create a role
// @Description Create a role carrying a set of known permission tags
// @Tags roles
// @Accept json
// @Produce json
// @Param role body service.CreateRoleRequest true "Role data"
// @Success 201 {object} handlers.Response "Successfully created role"
// @Failure 400 {object} handlers.Response "Invalid request body or unknown permission"
// @Security BearerAuth
// @Router /roles/create [post]
func (h *RoleHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req service.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.service.Create(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Role created successfully", role)
}

// Update handles PATCH /api/v1/roles/update/:id
// @Summary Update a role
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Param role body service.UpdateRoleRequest true "Fields to update"
// @Success 200 {object} handlers.Response "Successfully updated role"
// @Failure 404 {object} handlers.Response "Role not found"
// @Security BearerAuth
// @Router /roles/update/{id} [patch]
func (h *RoleHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.service.Update(caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Role updated successfully", role)
}

// Delete handles DELETE /api/v1/roles/delete/:id
// @Summary Delete a role
// @Description Delete a role, optionally moving its users to a replacement first
// @Tags roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Param body body service.DeleteRoleRequest false "Optional replacement role"
// @Success 200 {object} handlers.Response "Successfully deleted role"
// @Failure 404 {object} handlers.Response "Role not found"
// @Failure 409 {object} handlers.Response "Role still has users"
// @Security BearerAuth
// @Router /roles/delete/{id} [delete]
func (h *RoleHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req := service.DeleteRoleRequest{}
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	if err := h.service.Delete(caller, id, &req); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Role deleted successfully", nil)
}

// Details handles GET /api/v1/roles/details/:id
// @Summary Get a role
// @Tags roles
// @Produce json
// @Param id path string true "Role ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully retrieved role"
// @Failure 404 {object} handlers.Response "Role not found"
// @Security BearerAuth
// @Router /roles/details/{id} [get]
func (h *RoleHandler) Details(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	role, err := h.service.GetByID(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Role retrieved successfully", role)
}

// All handles POST /api/v1/roles/all
// @Summary List all roles of the organization
// @Tags roles
// @Produce json
// @Success 200 {object} handlers.Response "Successfully retrieved roles"
// @Security BearerAuth
// @Router /roles/all [post]
func (h *RoleHandler) All(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	roles, err := h.service.List(caller)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Roles retrieved successfully", roles)
}

// ResetPermissions handles GET /api/v1/roles/reset-permissions
// @Summary Reset default roles
// @Description Install or refresh the default role bundles for the organization
// @Tags roles
// @Produce json
// @Success 200 {object} handlers.Response "Default roles reset"
// @Security BearerAuth
// @Router /roles/reset-permissions [get]
func (h *RoleHandler) ResetPermissions(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	if err := h.service.ResetDefaultRoles(caller); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Default roles reset successfully", nil)
}
