//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"grievance-portal-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OrganizationRepositoryTestSuite tests the OrganizationRepository
type OrganizationRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	factories     *testutils.FactorySet
	repo          *OrganizationRepository
}

// SetupSuite runs before all tests in the suite
func (suite *OrganizationRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()
	suite.repo = NewOrganizationRepository(suite.baseTestSuite.DB)
}

// TearDownSuite runs after all tests in the suite
func (suite *OrganizationRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *OrganizationRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *OrganizationRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateAndGetByEmail tests creation and the email lookup
func (suite *OrganizationRepositoryTestSuite) TestCreateAndGetByEmail() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	found, err := suite.repo.GetByEmail(org.Email)
	suite.NoError(err)
	suite.Equal(org.ID, found.ID)

	_, err = suite.repo.GetByEmail("missing@test.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByIDNotFound tests looking up a missing organization
func (suite *OrganizationRepositoryTestSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestSetAndClearOTP tests the OTP roundtrip
func (suite *OrganizationRepositoryTestSuite) TestSetAndClearOTP() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	expiresAt := time.Now().Add(5 * time.Minute)
	suite.NoError(suite.repo.SetOTP(org.ID, "hashed-code", expiresAt))

	stored, err := suite.repo.GetByID(org.ID)
	suite.NoError(err)
	suite.NotNil(stored.OTPHash)
	suite.Equal("hashed-code", *stored.OTPHash)
	suite.True(stored.HasValidOTP(time.Now()))

	suite.NoError(suite.repo.ClearOTP(org.ID))

	cleared, err := suite.repo.GetByID(org.ID)
	suite.NoError(err)
	suite.Nil(cleared.OTPHash)
	suite.Nil(cleared.OTPExpiresAt)
	suite.False(cleared.HasValidOTP(time.Now()))
}

// TestUpdate tests replacing mutable fields
func (suite *OrganizationRepositoryTestSuite) TestUpdate() {
	org := suite.factories.Organization.Create()
	suite.NoError(suite.repo.Create(org))

	org.Name = "Renamed Organization"
	org.City = "New City"
	suite.NoError(suite.repo.Update(org))

	stored, err := suite.repo.GetByID(org.ID)
	suite.NoError(err)
	suite.Equal("Renamed Organization", stored.Name)
	suite.Equal("New City", stored.City)
}

// TestOrganizationRepositoryTestSuite runs the test suite
func TestOrganizationRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationRepositoryTestSuite))
}
