package handlers

import (
	"net/http"

	"grievance-portal-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles HTTP requests for users and identity
type UserHandler struct {
	service service.UserServiceInterface
}

// NewUserHandler creates a new user handler
func NewUserHandler(service service.UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// checkRequest is the body of the availability check endpoints
type checkRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	EmployeeID string `json:"employee_id"`
}

// Login handles POST /api/v1/users/login
// @Summary Sign in
// @Description Authenticate by username or email; rememberMe extends the token lifetime
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Login credentials"
// @Success 200 {object} handlers.Response "Signed in"
// @Failure 401 {object} handlers.Response "Invalid credentials"
// @Router /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Login successful", result)
}

// Create handles POST /api/v1/users/create
// @Summary Create a user
// @Description Create a user; username, email and employee id must be unused in the organization
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateUserRequest true "User data"
// @Success 201 {object} handlers.Response "Successfully created user"
// @Failure 409 {object} handlers.Response "User already exists"
// @Security BearerAuth
// @Router /users/create [post]
func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req service.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Create(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "User created successfully", user)
}

// Profile handles GET /api/v1/users/profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} handlers.Response "Successfully retrieved profile"
// @Security BearerAuth
// @Router /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	user, err := h.service.GetByID(caller, caller.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile retrieved successfully", user)
}

// Details handles GET /api/v1/users/details/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully retrieved user"
// @Failure 404 {object} handlers.Response "User not found"
// @Security BearerAuth
// @Router /users/details/{id} [get]
func (h *UserHandler) Details(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.GetByID(caller, id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateProfile handles PATCH /api/v1/users/profile/update
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body service.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} handlers.Response "Successfully updated profile"
// @Security BearerAuth
// @Router /users/profile/update [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateProfile(caller, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Profile updated successfully", user)
}

// Update handles PATCH /api/v1/users/update/:id
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param user body service.UpdateUserRequest true "Fields to update"
// @Success 200 {object} handlers.Response "Successfully updated user"
// @Failure 404 {object} handlers.Response "User not found"
// @Security BearerAuth
// @Router /users/update/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(caller, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "User updated successfully", user)
}

// Delete handles DELETE /api/v1/users/delete/:id
// @Summary Delete a user
// @Description Soft delete; the account stops working but the row stays
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} handlers.Response "Successfully deleted user"
// @Failure 404 {object} handlers.Response "User not found"
// @Security BearerAuth
// @Router /users/delete/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
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

	respondOK(c, http.StatusOK, "User deleted successfully", nil)
}

// CreateSuperAdmin handles POST /api/v1/users/create-super-admin
// @Summary Bootstrap the first account of an organization
// @Description Verify the mailed OTP, then create the SUPER_ADMIN role, the Admin department and the first user in one step
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateSuperAdminRequest true "Super admin data with OTP"
// @Success 201 {object} handlers.Response "Super admin created"
// @Failure 400 {object} handlers.Response "Invalid or expired OTP"
// @Router /users/create-super-admin [post]
func (h *UserHandler) CreateSuperAdmin(c *gin.Context) {
	var req service.CreateSuperAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.CreateSuperAdmin(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, "Super admin created successfully", result)
}

// GenerateOTP handles POST /api/v1/users/generate-otp
// @Summary Mail a fresh OTP to the organization
// @Tags users
// @Accept json
// @Produce json
// @Param body body service.GenerateOTPRequest true "Organization id"
// @Success 200 {object} handlers.Response "OTP sent"
// @Failure 404 {object} handlers.Response "Organization not found"
// @Router /users/generate-otp [post]
func (h *UserHandler) GenerateOTP(c *gin.Context) {
	var req service.GenerateOTPRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.GenerateOTP(&req); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "OTP sent successfully", nil)
}

// CheckUsername handles POST /api/v1/users/check-username
// @Summary Check whether a username is taken
// @Tags users
// @Accept json
// @Produce json
// @Param body body handlers.checkRequest true "Username to check"
// @Success 200 {object} handlers.Response "Availability result"
// @Security BearerAuth
// @Router /users/check-username [post]
func (h *UserHandler) CheckUsername(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req checkRequest
	if !bindJSON(c, &req) {
		return
	}

	exists, err := h.service.CheckUsername(caller, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Username checked", gin.H{"exists": exists})
}

// CheckEmail handles POST /api/v1/users/check-email
// @Summary Check whether an email is taken
// @Tags users
// @Accept json
// @Produce json
// @Param body body handlers.checkRequest true "Email to check"
// @Success 200 {object} handlers.Response "Availability result"
// @Security BearerAuth
// @Router /users/check-email [post]
func (h *UserHandler) CheckEmail(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req checkRequest
	if !bindJSON(c, &req) {
		return
	}

	exists, err := h.service.CheckEmail(caller, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Email checked", gin.H{"exists": exists})
}

// CheckEmployeeID handles POST /api/v1/users/check-employee-id
// @Summary Check whether an employee id is taken
// @Tags users
// @Accept json
// @Produce json
// @Param body body handlers.checkRequest true "Employee id to check"
// @Success 200 {object} handlers.Response "Availability result"
// @Security BearerAuth
// @Router /users/check-employee-id [post]
func (h *UserHandler) CheckEmployeeID(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req checkRequest
	if !bindJSON(c, &req) {
		return
	}

	exists, err := h.service.CheckEmployeeID(caller, req.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Employee ID checked", gin.H{"exists": exists})
}
