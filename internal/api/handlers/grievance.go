package handlers

import (
	"net/http"

	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GrievanceHandler handles HTTP requests for grievances
type GrievanceHandler struct {
	service service.GrievanceServiceInterface
}

// NewGrievanceHandler creates a new grievance handler
func NewGrievanceHandler(service service.GrievanceServiceInterface) *GrievanceHandler {
	return &GrievanceHandler{service: service}
}

// Create handles POST /api/v1/grievances/create
// @Summary File a grievance
// @Description Multipart form with title, description, department_id, severity and up to 5 attachment files
// @Tags grievances
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param department_id formData string true "Department ID (UUID)"
// @Param severity formData string true "Severity (low, medium, high)"
// @Param attachments formData file false "Attachment files (max 5)"
// @Success 201 {object} handlers.Response "Successfully filed grievance"
// @Failure 400 {object} handlers.Response "Invalid form or too many attachments"
// @Security BearerAuth
// @Router /grievances/create [post]
func (h *GrievanceHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req service.CreateGrievanceRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Request validation failed",
			Errors:  []string{"invalid request form"},
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Request validation failed",
			Errors:  []string{"invalid multipart form"},
		})
		return
	}

	var files []service.AttachmentUpload
	if form != nil {
		headers := form.File["attachments"]
		if len(headers) > service.MaxAttachments {
			respondError(c, apperrors.ErrTooManyAttachments)
			return
		}
		for _, header := range headers {
			f, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, Response{
					Success: false,
					Message: "Request validation failed",
					Errors:  []string{"could not read attachment " + header.Filename},
				})
				return
			}
			defer f.Close()

			files = append(files, service.AttachmentUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Content:     f,
			})
		}
	}

	grievance, err := h.service.Create(caller, &req, files)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Grievance filed successfully", grievance)
}

// Update handles PUT /api/v1/grievances/update/:id
// @Summary Update a grievance
// @Description What may change depends on the caller's permissions: full edit, status only, or assignee only
// @Tags grievances
// @Accept json
// @Produce json
// @Param id path string true "Grievance ID (UUID)"
// @Param grievance body service.UpdateGrievanceRequest true "Fields to update"
// @Success 200 {object} handlers.Response "Successfully updated grievance"
// @Failure 403 {object} handlers.Response "No permission for the requested change"
// @Failure 404 {object} handlers.Response "Grievance not found"
// @Security BearerAuth
// @Router /grievances/update/{id} [put]
func (h *GrievanceHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateGrievanceRequest
	if !bindJSON(c, &req) {
		return
	}

	grievance, err := h.service.Update(caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Grievance updated successfully", grievance)
}

// Delete handles DELETE /api/v1/grievances/delete/:id
// @Summary Delete a grievance
// @Tags grievances
// @Produce json
// @Param id path string true "Grievance ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully deleted grievance"
// @Failure 404 {object} handlers.Response "Grievance not found"
// @Security BearerAuth
// @Router /grievances/delete/{id} [delete]
func (h *GrievanceHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(caller, id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Grievance deleted successfully", nil)
}

// Get handles GET /api/v1/grievances/get/:id
// @Summary Get a grievance
// @Description Returns the grievance with department, reporter, assignee and attachments
// @Tags grievances
// @Produce json
// @Param id path string true "Grievance ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully retrieved grievance"
// @Failure 404 {object} handlers.Response "Grievance not found"
// @Security BearerAuth
// @Router /grievances/get/{id} [get]
func (h *GrievanceHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	grievance, err := h.service.GetByID(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Grievance retrieved successfully", grievance)
}
