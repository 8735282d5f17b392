//go:build integration
// +build integration

package repository_test

import (
	"testing"

	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/database/models"
	"grievance-portal-backend/internal/repository"
	"grievance-portal-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// RoleRepositoryTestSuite tests the RoleRepository
type RoleRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	factories     *testutils.FactorySet
	repo          *repository.RoleRepository
	org           *models.Organization
}

// SetupSuite runs before all tests in the suite
func (suite *RoleRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()
	suite.repo = repository.NewRoleRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *RoleRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *RoleRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.org = suite.factories.Organization.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(suite.org).Error)
}

// TearDownTest runs after each test
func (suite *RoleRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestUpsertByNameCreates tests that an upsert inserts a missing role
func (suite *RoleRepositoryTestSuite) TestUpsertByNameCreates() {
	err := suite.repo.UpsertByName(suite.org.ID, "EMPLOYEE", []string{auth.PermCreateGrievance})
	suite.NoError(err)

	roles, err := suite.repo.GetByOrganizationID(suite.org.ID)
	suite.NoError(err)
	suite.Len(roles, 1)
	suite.Equal("EMPLOYEE", roles[0].Name)
	suite.Equal([]string{auth.PermCreateGrievance}, roles[0].Permissions)
}

// TestUpsertByNameRefreshes tests that an upsert replaces an existing
// role's permission set without duplicating the row
func (suite *RoleRepositoryTestSuite) TestUpsertByNameRefreshes() {
	role := suite.factories.Role.WithPermissions(suite.org.ID, auth.PermViewUser)
	role.Name = "EMPLOYEE"
	suite.NoError(suite.repo.Create(role))

	err := suite.repo.UpsertByName(suite.org.ID, "EMPLOYEE", []string{
		auth.PermCreateGrievance, auth.PermViewGrievance,
	})
	suite.NoError(err)

	roles, err := suite.repo.GetByOrganizationID(suite.org.ID)
	suite.NoError(err)
	suite.Len(roles, 1)
	suite.ElementsMatch([]string{auth.PermCreateGrievance, auth.PermViewGrievance}, roles[0].Permissions)
}

// TestOrganizationScoping tests that roles never leak across tenants
func (suite *RoleRepositoryTestSuite) TestOrganizationScoping() {
	role := suite.factories.Role.WithOrganization(suite.org.ID)
	suite.NoError(suite.repo.Create(role))

	otherOrg := suite.factories.Organization.Create()
	suite.NoError(suite.baseTestSuite.DB.Create(otherOrg).Error)

	_, err := suite.repo.GetByID(otherOrg.ID, role.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	roles, err := suite.repo.GetByOrganizationID(otherOrg.ID)
	suite.NoError(err)
	suite.Empty(roles)
}

// TestUpdatePermissions tests replacing a role's permission set
func (suite *RoleRepositoryTestSuite) TestUpdatePermissions() {
	role := suite.factories.Role.WithPermissions(suite.org.ID, auth.PermViewUser)
	suite.NoError(suite.repo.Create(role))

	err := suite.repo.Update(suite.org.ID, role.ID, map[string]interface{}{
		"permissions": []string{auth.PermViewGrievance},
	})
	suite.NoError(err)

	stored, err := suite.repo.GetByID(suite.org.ID, role.ID)
	suite.NoError(err)
	suite.Equal([]string{auth.PermViewGrievance}, stored.Permissions)
}

// TestRoleRepositoryTestSuite runs the test suite
func TestRoleRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RoleRepositoryTestSuite))
}
