package handlers

import (
	"net/http"
	"strconv"

	"grievance-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DepartmentHandler handles HTTP requests for departments
type DepartmentHandler struct {
	service service.DepartmentServiceInterface
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(service service.DepartmentServiceInterface) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// Create handles POST /api/v1/departments/create
// @Summary Create a department
// @Description Create a department; names are unique per organization, case insensitive
// @Tags departments
// @Accept json
// @Produce json
// @Param department body service.CreateDepartmentRequest true "Department data"
// @Success 201 {object} handlers.Response "Successfully created department"
// @Failure 400 {object} handlers.Response "Invalid request body"
// @Failure 409 {object} handlers.Response "Department already exists"
// @Security BearerAuth
// @Router /departments/create [post]
func (h *DepartmentHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req service.CreateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	department, err := h.service.Create(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Department created successfully", department)
}

// Update handles PATCH /api/v1/departments/update/:id
// @Summary Update a department
// @Description Apply a partial update; at least one field must be present
// @Tags departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID (UUID)"
// @Param department body service.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} handlers.Response "Successfully updated department"
// @Failure 400 {object} handlers.Response "Invalid request body"
// @Failure 404 {object} handlers.Response "Department not found"
// @Security BearerAuth
// @Router /departments/update/{id} [patch]
func (h *DepartmentHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	department, err := h.service.Update(caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Department updated successfully", department)
}

// Delete handles DELETE /api/v1/departments/delete/:id
// @Summary Delete a department
// @Description Delete a department, optionally moving its users to a replacement first
// @Tags departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID (UUID)"
// @Param body body service.DeleteDepartmentRequest false "Optional replacement department"
// @Success 200 {object} handlers.Response "Successfully deleted department"
// @Failure 404 {object} handlers.Response "Department not found"
// @Failure 409 {object} handlers.Response "Department still has users"
// @Security BearerAuth
// @Router /departments/delete/{id} [delete]
func (h *DepartmentHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	req := service.DeleteDepartmentRequest{}
	if c.Request.ContentLength > 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	if err := h.service.Delete(caller, id, &req); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Department deleted successfully", nil)
}

// Details handles GET /api/v1/departments/details/:id
// @Summary Get a department
// @Tags departments
// @Produce json
// @Param id path string true "Department ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully retrieved department"
// @Failure 404 {object} handlers.Response "Department not found"
// @Security BearerAuth
// @Router /departments/details/{id} [get]
func (h *DepartmentHandler) Details(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	department, err := h.service.GetByID(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Department retrieved successfully", department)
}

// List handles GET /api/v1/departments
// @Summary List departments
// @Description List the organization's departments sorted by name, paginated
// @Tags departments
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} handlers.Response "Successfully retrieved departments"
// @Security BearerAuth
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	departments, err := h.service.List(caller, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Departments retrieved successfully", departments)
}
