package service_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockUserRepo  *mocks.MockUserRepositoryInterface
	mockOrgRepo   *mocks.MockOrganizationRepositoryInterface
	mockRoleRepo  *mocks.MockRoleRepositoryInterface
	mockDeptRepo  *mocks.MockDepartmentRepositoryInterface
	mockTxManager *mocks.MockTxManagerInterface
	mockMailer    *mocks.MockMailer
	userService   *service.UserService
	validator     *validator.Validate
	caller        *auth.Caller
}

// SetupTest sets up the test suite
func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockRoleRepo = mocks.NewMockRoleRepositoryInterface(suite.ctrl)
	suite.mockDeptRepo = mocks.NewMockDepartmentRepositoryInterface(suite.ctrl)
	suite.mockTxManager = mocks.NewMockTxManagerInterface(suite.ctrl)
	suite.mockMailer = mocks.NewMockMailer(suite.ctrl)
	suite.validator = validator.New()
	suite.caller = testCaller(auth.PermCreateUser, auth.PermViewUser, auth.PermUpdateUser, auth.PermDeleteUser)

	suite.userService = service.NewUserService(
		suite.mockUserRepo,
		suite.mockOrgRepo,
		suite.mockRoleRepo,
		suite.mockDeptRepo,
		suite.mockTxManager,
		auth.NewService("test-secret"),
		suite.mockMailer,
		5*time.Minute,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func hashedPassword(t *testing.T, plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func activeUser(t *testing.T, orgID uuid.UUID, password string) *models.User {
	return &models.User{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		RoleID:         uuid.New(),
		DepartmentID:   uuid.New(),
		Username:       "jsmith",
		Email:          "jsmith@acme.example",
		EmployeeID:     "EMP-0001",
		Password:       hashedPassword(t, password),
		FirstName:      "Jordan",
		LastName:       "Smith",
		IsActive:       true,
	}
}

// TestLogin tests a successful username login
func (suite *UserServiceTestSuite) TestLogin() {
	user := activeUser(suite.T(), uuid.New(), "password123")
	req := &service.LoginRequest{Username: "jsmith", Password: "password123"}

	suite.mockUserRepo.EXPECT().
		GetActiveByUsernameOrEmail("jsmith", "").
		Return(user, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		UpdateLastLogin(user.ID, gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.userService.Login(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Token)
	assert.Equal(suite.T(), user.ID, response.User.ID)
	assert.Equal(suite.T(), "jsmith", response.User.Username)
	assert.Equal(suite.T(), "Jordan Smith", response.User.Name)
}

// TestLoginUnknownUser tests login with an account that does not exist
func (suite *UserServiceTestSuite) TestLoginUnknownUser() {
	req := &service.LoginRequest{Email: "nobody@acme.example", Password: "password123"}

	suite.mockUserRepo.EXPECT().
		GetActiveByUsernameOrEmail("", "nobody@acme.example").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.userService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginWrongPassword tests that a bad password yields the same error as
// an unknown account
func (suite *UserServiceTestSuite) TestLoginWrongPassword() {
	user := activeUser(suite.T(), uuid.New(), "password123")
	req := &service.LoginRequest{Username: "jsmith", Password: "wrong-password"}

	suite.mockUserRepo.EXPECT().
		GetActiveByUsernameOrEmail("jsmith", "").
		Return(user, nil).
		Times(1)

	response, err := suite.userService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginBothIdentifiers tests that sending username and email together fails
func (suite *UserServiceTestSuite) TestLoginBothIdentifiers() {
	req := &service.LoginRequest{
		Username: "jsmith",
		Email:    "jsmith@acme.example",
		Password: "password123",
	}

	response, err := suite.userService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

func (suite *UserServiceTestSuite) validCreateUserRequest(roleID, deptID uuid.UUID) *service.CreateUserRequest {
	return &service.CreateUserRequest{
		Username:     "newhire",
		Email:        "newhire@acme.example",
		EmployeeID:   "EMP-0042",
		Password:     "password123",
		FirstName:    "Nia",
		LastName:     "Patel",
		RoleID:       roleID.String(),
		DepartmentID: deptID.String(),
	}
}

// TestCreateUser tests creating a user
func (suite *UserServiceTestSuite) TestCreateUser() {
	roleID := uuid.New()
	deptID := uuid.New()
	req := suite.validCreateUserRequest(roleID, deptID)

	suite.mockRoleRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, roleID).
		Return(&models.Role{BaseModel: models.BaseModel{ID: roleID}}, nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		FindDuplicate(suite.caller.OrganizationID, req.Username, req.Email, req.EmployeeID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.userService.Create(suite.caller, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.Username, response.Username)
	assert.Equal(suite.T(), roleID, response.RoleID)
	assert.True(suite.T(), response.IsActive)
}

// TestCreateUserDuplicate tests creating a user with a taken identifier
func (suite *UserServiceTestSuite) TestCreateUserDuplicate() {
	roleID := uuid.New()
	deptID := uuid.New()
	req := suite.validCreateUserRequest(roleID, deptID)

	suite.mockRoleRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, roleID).
		Return(&models.Role{BaseModel: models.BaseModel{ID: roleID}}, nil).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		GetByID(suite.caller.OrganizationID, deptID).
		Return(&models.Department{BaseModel: models.BaseModel{ID: deptID}}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		FindDuplicate(suite.caller.OrganizationID, req.Username, req.Email, req.EmployeeID).
		Return(&models.User{BaseModel: models.BaseModel{ID: uuid.New()}}, nil).
		Times(1)

	response, err := suite.userService.Create(suite.caller, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

// TestCreateUserUnknownSpecialPermission tests grants outside the registry
func (suite *UserServiceTestSuite) TestCreateUserUnknownSpecialPermission() {
	req := suite.validCreateUserRequest(uuid.New(), uuid.New())
	req.SpecialPermissions = []string{"NOT_A_PERMISSION"}

	response, err := suite.userService.Create(suite.caller, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestUpdateProfileUsernameTaken tests a self-service rename onto a taken name
func (suite *UserServiceTestSuite) TestUpdateProfileUsernameTaken() {
	username := "taken"
	req := &service.UpdateProfileRequest{Username: &username}

	suite.mockUserRepo.EXPECT().
		ExistsByUsername(suite.caller.OrganizationID, username).
		Return(true, nil).
		Times(1)

	response, err := suite.userService.UpdateProfile(suite.caller, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

// TestDeleteUser tests soft deleting a user
func (suite *UserServiceTestSuite) TestDeleteUser() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		SoftDelete(suite.caller.OrganizationID, userID).
		Return(nil).
		Times(1)

	err := suite.userService.Delete(suite.caller, userID)

	assert.NoError(suite.T(), err)
}

func validSuperAdminRequest(orgID uuid.UUID, otp string) *service.CreateSuperAdminRequest {
	return &service.CreateSuperAdminRequest{
		OrganizationID: orgID.String(),
		OTP:            otp,
		Username:       "founder",
		Email:          "founder@acme.example",
		EmployeeID:     "EMP-0001",
		Password:       "password123",
		FirstName:      "Ada",
		LastName:       "Founder",
	}
}

func orgWithOTP(t *testing.T, orgID uuid.UUID, otp string, expiresAt time.Time) *models.Organization {
	hash := hashedPassword(t, otp)
	return &models.Organization{
		BaseModel:    models.BaseModel{ID: orgID},
		Name:         "Acme Corp",
		Email:        "contact@acme.example",
		OTPHash:      &hash,
		OTPExpiresAt: &expiresAt,
	}
}

// TestCreateSuperAdmin tests the full OTP-verified bootstrap flow
func (suite *UserServiceTestSuite) TestCreateSuperAdmin() {
	orgID := uuid.New()
	req := validSuperAdminRequest(orgID, "123456")
	org := orgWithOTP(suite.T(), orgID, "123456", time.Now().Add(5*time.Minute))

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)
	suite.mockRoleRepo.EXPECT().
		GetByOrganizationID(orgID).
		Return([]models.Role{}, nil).
		Times(1)

	expectTx(suite.mockTxManager, &repository.Repositories{
		Organizations: suite.mockOrgRepo,
		Departments:   suite.mockDeptRepo,
		Roles:         suite.mockRoleRepo,
		Users:         suite.mockUserRepo,
	})

	suite.mockRoleRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(role *models.Role) error {
			assert.Equal(suite.T(), auth.SuperAdminRoleName, role.Name)
			assert.ElementsMatch(suite.T(), auth.DefaultAdminPermissions, role.Permissions)
			role.ID = uuid.New()
			return nil
		}).
		Times(1)
	suite.mockDeptRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(dept *models.Department) error {
			assert.Equal(suite.T(), auth.AdminDepartmentName, dept.Name)
			dept.ID = uuid.New()
			return nil
		}).
		Times(1)
	suite.mockUserRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			assert.Equal(suite.T(), req.Username, user.Username)
			user.ID = uuid.New()
			return nil
		}).
		Times(1)
	suite.mockOrgRepo.EXPECT().
		ClearOTP(orgID).
		Return(nil).
		Times(1)

	response, err := suite.userService.CreateSuperAdmin(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Token)
	assert.Equal(suite.T(), req.Username, response.User.Username)
}

// TestCreateSuperAdminExpiredOTP tests bootstrap with a stale code
func (suite *UserServiceTestSuite) TestCreateSuperAdminExpiredOTP() {
	orgID := uuid.New()
	req := validSuperAdminRequest(orgID, "123456")
	org := orgWithOTP(suite.T(), orgID, "123456", time.Now().Add(-time.Minute))

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)

	response, err := suite.userService.CreateSuperAdmin(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrOTPExpired)
}

// TestCreateSuperAdminWrongOTP tests bootstrap with a wrong code
func (suite *UserServiceTestSuite) TestCreateSuperAdminWrongOTP() {
	orgID := uuid.New()
	req := validSuperAdminRequest(orgID, "654321")
	org := orgWithOTP(suite.T(), orgID, "123456", time.Now().Add(5*time.Minute))

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)

	response, err := suite.userService.CreateSuperAdmin(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidOTP)
}

// TestCreateSuperAdminAlreadyExists tests bootstrap after a super admin was created
func (suite *UserServiceTestSuite) TestCreateSuperAdminAlreadyExists() {
	orgID := uuid.New()
	req := validSuperAdminRequest(orgID, "123456")
	org := orgWithOTP(suite.T(), orgID, "123456", time.Now().Add(5*time.Minute))

	superRole := models.Role{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Name:           auth.SuperAdminRoleName,
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)
	suite.mockRoleRepo.EXPECT().
		GetByOrganizationID(orgID).
		Return([]models.Role{superRole}, nil).
		Times(1)
	suite.mockUserRepo.EXPECT().
		CountByRole(orgID, superRole.ID).
		Return(int64(1), nil).
		Times(1)

	response, err := suite.userService.CreateSuperAdmin(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrSuperAdminExists)
}

// TestGenerateOTP tests that the stored hash matches the mailed code
func (suite *UserServiceTestSuite) TestGenerateOTP() {
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel: models.BaseModel{ID: orgID},
		Name:      "Acme Corp",
		Email:     "contact@acme.example",
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)

	var storedHash string
	suite.mockOrgRepo.EXPECT().
		SetOTP(orgID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(id uuid.UUID, hash string, expiresAt time.Time) error {
			storedHash = hash
			assert.True(suite.T(), expiresAt.After(time.Now()))
			return nil
		}).
		Times(1)

	var mailedCode string
	codePattern := regexp.MustCompile(`\d{6}`)
	suite.mockMailer.EXPECT().
		Send(org.Email, "Email Verification", gomock.Any()).
		DoAndReturn(func(to, subject, body string) error {
			mailedCode = codePattern.FindString(body)
			return nil
		}).
		Times(1)

	err := suite.userService.GenerateOTP(&service.GenerateOTPRequest{OrganizationID: orgID.String()})

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), mailedCode, 6)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(mailedCode)))
}

// TestGenerateOTPMailerFailure tests that a mailer outage surfaces as an
// external error
func (suite *UserServiceTestSuite) TestGenerateOTPMailerFailure() {
	orgID := uuid.New()
	org := &models.Organization{
		BaseModel: models.BaseModel{ID: orgID},
		Email:     "contact@acme.example",
	}

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)
	suite.mockOrgRepo.EXPECT().
		SetOTP(orgID, gomock.Any(), gomock.Any()).
		Return(nil).
		Times(1)
	suite.mockMailer.EXPECT().
		Send(org.Email, "Email Verification", gomock.Any()).
		Return(errors.New("smtp connection refused")).
		Times(1)

	err := suite.userService.GenerateOTP(&service.GenerateOTPRequest{OrganizationID: orgID.String()})

	assert.Error(suite.T(), err)
	assert.True(suite.T(), apperrors.IsExternal(err))
}

// TestCheckUsername tests the availability probe for usernames
func (suite *UserServiceTestSuite) TestCheckUsername() {
	suite.mockUserRepo.EXPECT().
		ExistsByUsername(suite.caller.OrganizationID, "jsmith").
		Return(true, nil).
		Times(1)

	exists, err := suite.userService.CheckUsername(suite.caller, "jsmith")

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), exists)
}

// TestCheckEmailFree tests the availability probe for a free email
func (suite *UserServiceTestSuite) TestCheckEmailFree() {
	suite.mockUserRepo.EXPECT().
		ExistsByEmail(suite.caller.OrganizationID, "free@acme.example").
		Return(false, nil).
		Times(1)

	exists, err := suite.userService.CheckEmail(suite.caller, "free@acme.example")

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

// TestUserServiceTestSuite runs the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
