//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"grievance-portal-backend/internal/database/models"
	"grievance-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	factories     *testutils.FactorySet
	repo          *UserRepository
	org           *models.Organization
	role          *models.Role
	department    *models.Department
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest seeds one tenant with a role and department before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.org = suite.factories.Organization.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(suite.org).Error)
	suite.role = suite.factories.Role.WithOrganization(suite.org.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(suite.role).Error)
	suite.department = suite.factories.Department.WithOrganization(suite.org.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(suite.department).Error)
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *UserRepositoryTestSuite) createUser() *models.User {
	user := suite.factories.User.WithOrganization(suite.org.ID, suite.role.ID, suite.department.ID)
	suite.NoError(suite.repo.Create(user))
	return user
}

// TestGetByIDPreloadsRelations tests that role and department come back loaded
func (suite *UserRepositoryTestSuite) TestGetByIDPreloadsRelations() {
	user := suite.createUser()

	found, err := suite.repo.GetByID(suite.org.ID, user.ID)
	suite.NoError(err)
	suite.NotNil(found.Role)
	suite.Equal(suite.role.ID, found.Role.ID)
	suite.NotNil(found.Department)
	suite.Equal(suite.department.ID, found.Department.ID)
}

// TestPasswordHashedOnCreate tests the create hook and password comparison
func (suite *UserRepositoryTestSuite) TestPasswordHashedOnCreate() {
	user := suite.createUser()

	stored, err := suite.repo.GetByID(suite.org.ID, user.ID)
	suite.NoError(err)
	suite.NotEqual("password123", stored.Password)
	suite.True(stored.ComparePassword("password123"))
	suite.False(stored.ComparePassword("wrong-password"))
}

// TestSoftDeleteHidesUser tests that soft-deleted rows never surface
func (suite *UserRepositoryTestSuite) TestSoftDeleteHidesUser() {
	user := suite.createUser()

	suite.NoError(suite.repo.SoftDelete(suite.org.ID, user.ID))

	_, err := suite.repo.GetByID(suite.org.ID, user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	exists, err := suite.repo.ExistsByUsername(suite.org.ID, user.Username)
	suite.NoError(err)
	suite.False(exists)

	_, err = suite.repo.GetActiveByUsernameOrEmail(user.Username, "")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	// The row itself stays for history
	var raw models.User
	suite.NoError(suite.baseTestSuite.DB.Unscoped().First(&raw, "id = ?", user.ID).Error)
	suite.True(raw.IsDeleted)
	suite.False(raw.IsActive)
}

// TestSoftDeleteTwice tests that a second delete reports not found
func (suite *UserRepositoryTestSuite) TestSoftDeleteTwice() {
	user := suite.createUser()

	suite.NoError(suite.repo.SoftDelete(suite.org.ID, user.ID))
	suite.ErrorIs(suite.repo.SoftDelete(suite.org.ID, user.ID), gorm.ErrRecordNotFound)
}

// TestGetActiveByUsernameOrEmail tests the login lookup
func (suite *UserRepositoryTestSuite) TestGetActiveByUsernameOrEmail() {
	user := suite.createUser()

	byUsername, err := suite.repo.GetActiveByUsernameOrEmail(user.Username, "")
	suite.NoError(err)
	suite.Equal(user.ID, byUsername.ID)

	byEmail, err := suite.repo.GetActiveByUsernameOrEmail("", user.Email)
	suite.NoError(err)
	suite.Equal(user.ID, byEmail.ID)

	// Deactivated accounts cannot sign in
	suite.NoError(suite.repo.Update(suite.org.ID, user.ID, map[string]interface{}{"is_active": false}))
	_, err = suite.repo.GetActiveByUsernameOrEmail(user.Username, "")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestFindDuplicate tests the shared-unique-field lookup
func (suite *UserRepositoryTestSuite) TestFindDuplicate() {
	user := suite.createUser()

	dup, err := suite.repo.FindDuplicate(suite.org.ID, user.Username, "fresh@test.com", "EMP-FRESH")
	suite.NoError(err)
	suite.Equal(user.ID, dup.ID)

	dup, err = suite.repo.FindDuplicate(suite.org.ID, "freshname", user.Email, "EMP-FRESH")
	suite.NoError(err)
	suite.Equal(user.ID, dup.ID)

	_, err = suite.repo.FindDuplicate(suite.org.ID, "freshname", "fresh@test.com", "EMP-FRESH")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestReassignDepartment tests repointing users and the affected count
func (suite *UserRepositoryTestSuite) TestReassignDepartment() {
	first := suite.createUser()
	second := suite.createUser()
	replacement := suite.factories.Department.WithOrganization(suite.org.ID)
	suite.NoError(suite.baseTestSuite.DB.Create(replacement).Error)

	updated, err := suite.repo.ReassignDepartment(suite.org.ID, suite.department.ID, replacement.ID)
	suite.NoError(err)
	suite.Equal(int64(2), updated)

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		stored, err := suite.repo.GetByID(suite.org.ID, id)
		suite.NoError(err)
		suite.Equal(replacement.ID, stored.DepartmentID)
	}

	// Nothing left pointing at the old department
	updated, err = suite.repo.ReassignDepartment(suite.org.ID, suite.department.ID, replacement.ID)
	suite.NoError(err)
	suite.Equal(int64(0), updated)
}

// TestCountByRole tests counting role references
func (suite *UserRepositoryTestSuite) TestCountByRole() {
	suite.createUser()
	user := suite.createUser()

	count, err := suite.repo.CountByRole(suite.org.ID, suite.role.ID)
	suite.NoError(err)
	suite.Equal(int64(2), count)

	// Soft-deleted users do not count as references
	suite.NoError(suite.repo.SoftDelete(suite.org.ID, user.ID))
	count, err = suite.repo.CountByRole(suite.org.ID, suite.role.ID)
	suite.NoError(err)
	suite.Equal(int64(1), count)
}

// TestUpdateLastLogin tests stamping a login
func (suite *UserRepositoryTestSuite) TestUpdateLastLogin() {
	user := suite.createUser()
	at := time.Now().Truncate(time.Second)

	suite.NoError(suite.repo.UpdateLastLogin(user.ID, at))

	stored, err := suite.repo.GetByID(suite.org.ID, user.ID)
	suite.NoError(err)
	suite.NotNil(stored.LastLogin)
	suite.WithinDuration(at, *stored.LastLogin, time.Second)
}

// TestUserRepositoryTestSuite runs the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
