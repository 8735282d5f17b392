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

// RoleHandlerTestSuite defines the test suite for RoleHandler
type RoleHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockRoleServiceInterface
	handler     *RoleHandler
	httpSuite   *testutils.HTTPTestSuite
	caller      *auth.Caller
}

// SetupTest sets up the test suite
func (suite *RoleHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockRoleServiceInterface(suite.ctrl)
	suite.handler = NewRoleHandler(suite.mockService)
	suite.httpSuite = testutils.SetupHTTPTest()
	suite.caller = handlerCaller(auth.PermCreateRole, auth.PermViewRole, auth.PermUpdateRole, auth.PermDeleteRole)

	v1 := suite.httpSuite.Router.Group("/api/v1")
	roles := v1.Group("/roles", withCaller(suite.caller))
	{
		roles.POST("/create", suite.handler.Create)
		roles.PATCH("/update/:id", suite.handler.Update)
		roles.DELETE("/delete/:id", suite.handler.Delete)
		roles.GET("/details/:id", suite.handler.Details)
		roles.POST("/all", suite.handler.All)
		roles.GET("/reset-permissions", suite.handler.ResetPermissions)
	}
}

// TearDownTest cleans up after each test
func (suite *RoleHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateRole tests creating a role
func (suite *RoleHandlerTestSuite) TestCreateRole() {
	requestBody := map[string]interface{}{
		"name":        "Grievance Officer",
		"permissions": []string{auth.PermViewGrievance, auth.PermUpdateGrievanceStatus},
	}

	suite.mockService.EXPECT().
		Create(suite.caller, gomock.Any()).
		Return(&service.RoleResponse{
			ID:          uuid.New(),
			Name:        "Grievance Officer",
			Permissions: []string{auth.PermViewGrievance, auth.PermUpdateGrievanceStatus},
		}, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/roles/create", requestBody)

	envelope := testutils.AssertEnvelope(suite.T(), recorder, http.StatusCreated, true)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(suite.T(), "Grievance Officer", data["name"])
}

// TestCreateRoleUnknownPermission tests the validation mapping
func (suite *RoleHandlerTestSuite) TestCreateRoleUnknownPermission() {
	requestBody := map[string]interface{}{
		"name":        "Grievance Officer",
		"permissions": []string{"LAUNCH_MISSILES"},
	}

	suite.mockService.EXPECT().
		Create(suite.caller, gomock.Any()).
		Return(nil, apperrors.NewValidationError("permissions", `unknown permission tag "LAUNCH_MISSILES"`)).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/roles/create", requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusBadRequest, false)
}

// TestDeleteRoleNoUsersToReassign tests the stale replacement mapping
func (suite *RoleHandlerTestSuite) TestDeleteRoleNoUsersToReassign() {
	roleID := uuid.New()
	requestBody := map[string]interface{}{"replace_role_id": uuid.New().String()}

	suite.mockService.EXPECT().
		Delete(suite.caller, roleID, gomock.Any()).
		Return(apperrors.ErrNoUsersToReassign).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", "/api/v1/roles/delete/"+roleID.String(), requestBody)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusBadRequest, false)
}

// TestAllRoles tests listing roles
func (suite *RoleHandlerTestSuite) TestAllRoles() {
	suite.mockService.EXPECT().
		List(suite.caller).
		Return([]service.RoleResponse{
			{ID: uuid.New(), Name: "EMPLOYEE"},
			{ID: uuid.New(), Name: "HR_MANAGER"},
		}, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/roles/all", nil)

	envelope := testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
	data := envelope["data"].([]interface{})
	assert.Len(suite.T(), data, 2)
}

// TestResetPermissions tests refreshing the default bundles
func (suite *RoleHandlerTestSuite) TestResetPermissions() {
	suite.mockService.EXPECT().
		ResetDefaultRoles(suite.caller).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/roles/reset-permissions", nil)

	testutils.AssertEnvelope(suite.T(), recorder, http.StatusOK, true)
}

// TestRoleHandlerTestSuite runs the test suite
func TestRoleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RoleHandlerTestSuite))
}
