package service_test

import (
	"testing"

	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/database/models"
	apperrors "grievance-portal-backend/internal/errors"
	"grievance-portal-backend/internal/mocks"
	"grievance-portal-backend/internal/repository"
	"grievance-portal-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// expectTx makes the mocked transaction manager run the callback against the
// given repository bundle, as the real manager would inside a transaction
func expectTx(mockTx *mocks.MockTxManagerInterface, repos *repository.Repositories) {
	mockTx.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(fn func(*repository.Repositories) error) error {
			return fn(repos)
		}).
		Times(1)
}

func testCaller(permissions ...string) *auth.Caller {
	return &auth.Caller{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		RoleID:         uuid.New(),
		EmployeeID:     "EMP-0001",
		Permissions:    permissions,
	}
}

// DepartmentServiceTestSuite defines the test suite for DepartmentService
type DepartmentServiceTestSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	mockDeptRepo      *mocks.MockDepartmentRepositoryInterface
	mockUserRepo      *mocks.MockUserRepositoryInterface
	mockTxManager     *mocks.MockTxManagerInterface
	departmentService *service.DepartmentService
	validator         *validator.Validate
	caller            *auth.Caller
}

// SetupTest sets up the test suite
func (suite *DepartmentServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockDeptRepo = mocks.NewMockDepartmentRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockTxManager = mocks.NewMockTxManagerInterface(suite.ctrl)
	suite.validator = validator.New()
	suite.caller = testCaller(auth.PermCreateDepartment, auth.PermUpdateDepartment, auth.PermDeleteDepartment)

	suite.departmentService = service.NewDepartmentService(
		suite.mockDeptRepo,
		suite.mockUserRepo,
		suite.mockTxManager,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *DepartmentServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *DepartmentServiceTestSuite) txRepos() *repository.Repositories {
	return &repository.Repositories{
		Departments: suite.mockDeptRepo,
		Users:       suite.mockUserRepo,
	}
}

// TestCreateDepartment tests creating a department
func (suite *DepartmentServiceTestSuite) TestCreateDepartment() {
	req := &service.CreateDepartmentRequest{
		Name:        "Facilities",
		Description: "Buildings and maintenance",
	}

	suite.mockDeptRepo.EXPECT().
		GetByNameInsensitive(suite.caller.OrganizationID, req.Name).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockDeptRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.departmentService.Create(suite.caller, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Name, response.Name)
	assert.Equal(suite.T(), suite.caller.OrganizationID, response.OrganizationID)
	assert.True(suite.T(), response.IsActive)
}

// TestCreateDepartmentDuplicateName tests the per-organization uniqueness check
func (suite *DepartmentServiceTestSuite) TestCreateDepartmentDuplicateName() {
	req := &service.CreateDepartmentRequest{Name: "Facilities"}

	existing := &models.Department{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: suite.caller.OrganizationID,
		Name:           "FACILITIES",
	}
	suite.mockDeptRepo.EXPECT().
		GetByNameInsensitive(suite.caller.OrganizationID, req.Name).
		Return(existing, nil).
		Times(1)

	response, err := suite.departmentService.Create(suite.caller, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDepartmentExists)
}

// TestUpdateDepartmentNothingToUpdate tests an update with no fields supplied
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentNothingToUpdate() {
	response, err := suite.departmentService.Update(suite.caller, uuid.New(), &service.UpdateDepartmentRequest{})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNothingToUpdate)
}

// TestUpdateDepartmentNameTakenByOther tests renaming onto another department's name
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentNameTakenByOther() {
	deptID := uuid.New()
	name := "Facilities"
	req := &service.UpdateDepartmentRequest{Name: &name}

	other := &models.Department{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: suite.caller.OrganizationID,
		Name:           "Facilities",
	}
	suite.mockDeptRepo.EXPECT().
		GetByNameInsensitive(suite.caller.OrganizationID, name).
		Return(other, nil).
		Times(1)

	response, err := suite.departmentService.Update(suite.caller, deptID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDepartmentExists)
}

// TestUpdateDepartmentKeepOwnName tests renaming a department to its current name
func (suite *DepartmentServiceTestSuite) TestUpdateDepartmentKeepOwnName() {
	deptID := uuid.New()
	name := "Facilities"
	req := &service.UpdateDepartmentRequest{Name: &name}

	self := &models.Department{
		BaseModel:      models.BaseModel{ID: deptID},
		OrganizationID: suite.caller.OrganizationID,
		Name:           "Facilities",
	}
	suite.mockDeptRepo.EXPECT().
		GetByNameInsensitive(suite.caller.OrganizationID, name).
		Return(self, nil).
		Times(1)

	suite.mockDeptRepo.EXPECT().
		Update(suite.caller.OrganizationID, deptID, map[string]interface{}{"name": name}).
		Return(nil).
		Times(1)

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(self, nil).
		Times(1)

	response, err := suite.departmentService.Update(suite.caller, deptID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), name, response.Name)
}

// TestDeleteDepartmentWithReplacement tests the reassign-then-delete path
func (suite *DepartmentServiceTestSuite) TestDeleteDepartmentWithReplacement() {
	deptID := uuid.New()
	replaceID := uuid.New()
	req := &service.DeleteDepartmentRequest{ReplaceDepartmentID: replaceID.String()}

	expectTx(suite.mockTxManager, suite.txRepos())

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, replaceID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: replaceID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		ReassignDepartment(suite.caller.OrganizationID, deptID, replaceID).
		Return(int64(3), nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		Delete(suite.caller.OrganizationID, deptID).
		Return(nil).
		Times(1)

	err := suite.departmentService.Delete(suite.caller, deptID, req)

	assert.NoError(suite.T(), err)
}

// TestDeleteDepartmentNoUsersToReassign tests a replacement pointing at an unused department
func (suite *DepartmentServiceTestSuite) TestDeleteDepartmentNoUsersToReassign() {
	deptID := uuid.New()
	replaceID := uuid.New()
	req := &service.DeleteDepartmentRequest{ReplaceDepartmentID: replaceID.String()}

	expectTx(suite.mockTxManager, suite.txRepos())

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, replaceID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: replaceID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		ReassignDepartment(suite.caller.OrganizationID, deptID, replaceID).
		Return(int64(0), nil).
		Times(1)

	err := suite.departmentService.Delete(suite.caller, deptID, req)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNoUsersToReassign)
}

// TestDeleteDepartmentInUse tests deleting a referenced department without a replacement
func (suite *DepartmentServiceTestSuite) TestDeleteDepartmentInUse() {
	deptID := uuid.New()

	expectTx(suite.mockTxManager, suite.txRepos())

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		CountByDepartment(suite.caller.OrganizationID, deptID).
		Return(int64(2), nil).
		Times(1)

	err := suite.departmentService.Delete(suite.caller, deptID, &service.DeleteDepartmentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrDepartmentInUse)
}

// TestDeleteDepartmentUnused tests deleting an unreferenced department
func (suite *DepartmentServiceTestSuite) TestDeleteDepartmentUnused() {
	deptID := uuid.New()

	expectTx(suite.mockTxManager, suite.txRepos())

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		CountByDepartment(suite.caller.OrganizationID, deptID).
		Return(int64(0), nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		Delete(suite.caller.OrganizationID, deptID).
		Return(nil).
		Times(1)

	err := suite.departmentService.Delete(suite.caller, deptID, &service.DeleteDepartmentRequest{})

	assert.NoError(suite.T(), err)
}

// TestDeleteDepartmentNotFound tests deleting a missing department
func (suite *DepartmentServiceTestSuite) TestDeleteDepartmentNotFound() {
	deptID := uuid.New()

	expectTx(suite.mockTxManager, suite.txRepos())

	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	err := suite.departmentService.Delete(suite.caller, deptID, &service.DeleteDepartmentRequest{})

	assert.ErrorIs(suite.T(), err, apperrors.ErrDepartmentNotFound)
}

// TestListDepartments tests pagination math on a second page
func (suite *DepartmentServiceTestSuite) TestListDepartments() {
	departments := []models.Department{
		{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Legal"},
		{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Payroll"},
	}

	suite.mockDeptRepo.EXPECT().
		GetByOrganizationID(suite.caller.OrganizationID, 10, 10).
		Return(departments, int64(12), nil).
		Times(1)

	response, err := suite.departmentService.List(suite.caller, 2, 10)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Len(suite.T(), response.Departments, 2)
	assert.Equal(suite.T(), 2, response.PaginationInfo.CurrentPage)
	assert.Equal(suite.T(), 2, response.PaginationInfo.TotalPages)
	assert.Equal(suite.T(), int64(12), response.PaginationInfo.TotalItems)
	assert.False(suite.T(), response.PaginationInfo.HasNextPage)
	assert.True(suite.T(), response.PaginationInfo.HasPrevPage)
}

// TestListDepartmentsClampsBadParams tests that out-of-range paging falls back to defaults
func (suite *DepartmentServiceTestSuite) TestListDepartmentsClampsBadParams() {
	suite.mockDeptRepo.EXPECT().
		GetByOrganizationID(suite.caller.OrganizationID, 10, 0).
		Return([]models.Department{}, int64(0), nil).
		Times(1)

	response, err := suite.departmentService.List(suite.caller, -3, 500)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.PaginationInfo.CurrentPage)
	assert.Equal(suite.T(), 10, response.PaginationInfo.Limit)
	assert.False(suite.T(), response.PaginationInfo.HasPrevPage)
}

// TestDepartmentServiceTestSuite runs the test suite
func TestDepartmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepartmentServiceTestSuite))
}
