package handlers

import (
	"net/http"
	"testing"

	"grievance-portal-backend/internal/auth"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/mocks"
	"grievance-portal-backend/internal/service"
	"grievance-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// UserHandlerTestSuite defines the test suite for UserHandler
type UserHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockUserServiceInterface
	handler     *UserHandler
	httpSuite   *testutils.HTTPTestSuite
	caller      *auth.Caller
}

// SetupTest sets up the test suite
func (suite *UserHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockUserServiceInterface(suite.ctrl)
	suite.handler = NewUserHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.caller = handlerCaller(auth.PermCreateUser, auth.PermViewUser, auth.PermUpdateUser, auth.PermDeleteUser)

	v1 := suite.httpSuite.Router.Group("/api/v1")
	users := v1.Group("/users")
	{
		users.POST("/login", suite.handler.Login)
		users.POST("/generate-otp", suite.handler.GenerateOTP)
		users.POST("/create-super-admin", suite.handler.CreateSuperAdmin)
	}
	authed := users.Group("", withCaller(suite.caller))
	{
		authed.GET("/profile", suite.handler.Profile)
		authed.PATCH("/profile/update", suite.handler.UpdateProfile)
		authed.POST("/check-username", suite.handler.CheckUsername)
		authed.POST("/create", suite.handler.Create)
		authed.DELETE("/delete/:id", suite.handler.Delete)
	}
}

// TearDownTest cleans up after each test
func (suite *UserHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestLogin tests a successful login
func (suite *UserHandlerTestSuite) TestLogin() {
	requestBody := map[string]interface{}{
		"username": "jsmith",
		"password": "password123",
	}

	suite.mockService.EXPECT().
		Login(gomock.Any()).
		DoAndReturn(func(req *service.LoginRequest) (*service.LoginResponse, error) {
			assert.Equal(suite.T(), "jsmith", req.Username)
			return &service.LoginResponse{
				Token: "signed.jwt.token",
				User:  &service.UserResponse{ID: uuid.New(), Username: "jsmith"},
			}, nil
		}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/login", requestBody)

	envelope := testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(suite.T(), "signed.jwt.token", data["token"])
}

// TestLoginInvalidCredentials tests that bad credentials map to 401
func (suite *UserHandlerTestSuite) TestLoginInvalidCredentials() {
	requestBody := map[string]interface{}{
		"username": "jsmith",
		"password": "wrong-password",
	}

	suite.mockService.EXPECT().
		Login(gomock.Any()).
		Return(nil, apperrors.ErrInvalidCredentials).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/login", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusUnauthorized, false)
}

// TestCheckUsername tests the availability probe response shape
func (suite *UserHandlerTestSuite) TestCheckUsername() {
	requestBody := map[string]interface{}{"username": "jsmith"}

	suite.mockService.EXPECT().
		CheckUsername(suite.caller, "jsmith").
		Return(true, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/check-username", requestBody)

	envelope := testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(suite.T(), true, data["exists"])
}

// TestProfile tests fetching the caller's own account
func (suite *UserHandlerTestSuite) TestProfile() {
	suite.mockService.EXPECT().
		GetByID(suite.caller, suite.caller.UserID).
		Return(&service.UserResponse{ID: suite.caller.UserID, Username: "jsmith"}, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/users/profile", nil)

	envelope := testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(suite.T(), "jsmith", data["username"])
}

// TestUpdateProfile tests the self-service profile update
func (suite *UserHandlerTestSuite) TestUpdateProfile() {
	requestBody := map[string]interface{}{"firstname": "Jordan"}

	suite.mockService.EXPECT().
		UpdateProfile(suite.caller, gomock.Any()).
		Return(&service.UserResponse{ID: suite.caller.UserID, FirstName: "Jordan"}, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("PATCH", "/api/v1/users/profile/update", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
}

// TestCreateUserDuplicate tests the conflict mapping
func (suite *UserHandlerTestSuite) TestCreateUserDuplicate() {
	requestBody := map[string]interface{}{"username": "jsmith"}

	suite.mockService.EXPECT().
		Create(suite.caller, gomock.Any()).
		Return(nil, apperrors.ErrUserExists).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/create", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusConflict, false)
}

// TestDeleteUser tests deleting a user
func (suite *UserHandlerTestSuite) TestDeleteUser() {
	userID := uuid.New()

	suite.mockService.EXPECT().
		Delete(suite.caller, userID).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", "/api/v1/users/delete/"+userID.String(), nil)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
}

// TestCreateSuperAdminExpiredOTP tests that a stale code maps to 400
func (suite *UserHandlerTestSuite) TestCreateSuperAdminExpiredOTP() {
	requestBody := map[string]interface{}{
		"organization_id": uuid.New().String(),
		"otp":             "123456",
	}

	suite.mockService.EXPECT().
		CreateSuperAdmin(gomock.Any()).
		Return(nil, apperrors.ErrOTPExpired).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/create-super-admin", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusBadRequest, false)
}

// TestGenerateOTP tests requesting a fresh code
func (suite *UserHandlerTestSuite) TestGenerateOTP() {
	orgID := uuid.New()
	requestBody := map[string]interface{}{"organization_id": orgID.String()}

	suite.mockService.EXPECT().
		GenerateOTP(gomock.Any()).
		DoAndReturn(func(req *service.GenerateOTPRequest) error {
			assert.Equal(suite.T(), orgID.String(), req.OrganizationID)
			return nil
		}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/users/generate-otp", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
}

// TestUserHandlerTestSuite runs the test suite
func TestUserHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerTestSuite))
}
