package handlers

import (
	"net/http"

	"grievance-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OrganizationHandler handles HTTP requests for organizations
type OrganizationHandler struct {
	service service.OrganizationServiceInterface
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(service service.OrganizationServiceInterface) *OrganizationHandler {
	return &OrganizationHandler{service: service}
}

// Create handles POST /api/v1/organizations
// @Summary Register a new organization
// @Description Register an organization; the contact email must be unused
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body service.CreateOrganizationRequest true "Organization data"
// @Success 201 {object} handlers.Response "Successfully created organization"
// @Failure 400 {object} handlers.Response "Invalid request body"
// @Failure 409 {object} handlers.Response "Organization already exists"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req service.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.service.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Organization created successfully", org)
}

// Update handles POST /api/v1/organizations/update
// @Summary Update an organization
// @Description Update organization details by id; the email cannot change
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body service.UpdateOrganizationRequest true "Organization data"
// @Success 200 {object} handlers.Response "Successfully updated organization"
// @Failure 400 {object} handlers.Response "Invalid request body"
// @Failure 404 {object} handlers.Response "Organization not found"
// @Failure 500 {object} handlers.Response "Internal server error"
// @Router /organizations/update [post]
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req service.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.service.Update(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Organization updated successfully", org)
}
