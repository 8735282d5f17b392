package testutils

import (
	"time"

	"grievance-portal-backend/internal/database/models"

	"github.com/google/uuid"
)

// OrganizationFactory provides methods to create test Organization data
type OrganizationFactory struct{}

// NewOrganizationFactory creates a new OrganizationFactory
func NewOrganizationFactory() *OrganizationFactory {
	return &OrganizationFactory{}
}

// Create creates a test Organization with default values
func (f *OrganizationFactory) Create() *models.Organization {
	id := uuid.New()
	return &models.Organization{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Test Organization",
		Email:       "org-" + id.String()[:8] + "@test.com",
		Website:     "https://test.com",
		Description: "A test organization",
		Address:     "1 Test Street",
		City:        "Testville",
		State:       "TS",
		Country:     "Testland",
		Pincode:     "123456",
		Phone:       "+1-555-0100",
	}
}

// WithEmail sets a custom contact email
func (f *OrganizationFactory) WithEmail(email string) *models.Organization {
	org := f.Create()
	org.Email = email
	return org
}

// DepartmentFactory provides methods to create test Department data
type DepartmentFactory struct{}

// NewDepartmentFactory creates a new DepartmentFactory
func NewDepartmentFactory() *DepartmentFactory {
	return &DepartmentFactory{}
}

// Create creates a test Department with default values
func (f *DepartmentFactory) Create() *models.Department {
	id := uuid.New()
	return &models.Department{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Name:           "Department " + id.String()[:8],
		Description:    "A test department",
		IsActive:       true,
	}
}

// WithOrganization creates a department belonging to the given organization
func (f *DepartmentFactory) WithOrganization(orgID uuid.UUID) *models.Department {
	department := f.Create()
	department.OrganizationID = orgID
	return department
}

// WithName sets a custom department name
func (f *DepartmentFactory) WithName(orgID uuid.UUID, name string) *models.Department {
	department := f.WithOrganization(orgID)
	department.Name = name
	return department
}

// RoleFactory provides methods to create test Role data
type RoleFactory struct{}

// NewRoleFactory creates a new RoleFactory
func NewRoleFactory() *RoleFactory {
	return &RoleFactory{}
}

// Create creates a test Role with default values
func (f *RoleFactory) Create() *models.Role {
	id := uuid.New()
	return &models.Role{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Name:           "Role " + id.String()[:8],
		Permissions:    []string{"VIEW_USER"},
	}
}

// WithOrganization creates a role belonging to the given organization
func (f *RoleFactory) WithOrganization(orgID uuid.UUID) *models.Role {
	role := f.Create()
	role.OrganizationID = orgID
	return role
}

// WithPermissions sets the role's permission tags
func (f *RoleFactory) WithPermissions(orgID uuid.UUID, permissions ...string) *models.Role {
	role := f.WithOrganization(orgID)
	role.Permissions = permissions
	return role
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Role and department ids are
// random; set them to persisted rows before saving.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	short := id.String()[:8]
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		RoleID:         uuid.New(),
		DepartmentID:   uuid.New(),
		Username:       "user" + short,
		Email:          "user-" + short + "@test.com",
		EmployeeID:     "EMP-" + short,
		Password:       "password123",
		FirstName:      "Jane",
		LastName:       "Doe",
		PhoneNumber:    "+1-555-0123",
		IsActive:       true,
	}
}

// WithOrganization creates a user in the given organization, role and department
func (f *UserFactory) WithOrganization(orgID, roleID, departmentID uuid.UUID) *models.User {
	user := f.Create()
	user.OrganizationID = orgID
	user.RoleID = roleID
	user.DepartmentID = departmentID
	return user
}

// GrievanceFactory provides methods to create test Grievance data
type GrievanceFactory struct{}

// NewGrievanceFactory creates a new GrievanceFactory
func NewGrievanceFactory() *GrievanceFactory {
	return &GrievanceFactory{}
}

// Create creates a test Grievance with default values
func (f *GrievanceFactory) Create() *models.Grievance {
	id := uuid.New()
	return &models.Grievance{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		OrganizationID: uuid.New(),
		Title:          "Broken air conditioning",
		Description:    "The air conditioning on floor three has been broken for a week.",
		DepartmentID:   uuid.New(),
		Severity:       models.SeverityMedium,
		Status:         models.StatusSubmitted,
		IsActive:       true,
		EmployeeID:     "EMP-" + id.String()[:8],
		ReportedBy:     uuid.New(),
	}
}

// WithOrganization creates a grievance filed in the given organization
func (f *GrievanceFactory) WithOrganization(orgID, departmentID, reportedBy uuid.UUID) *models.Grievance {
	grievance := f.Create()
	grievance.OrganizationID = orgID
	grievance.DepartmentID = departmentID
	grievance.ReportedBy = reportedBy
	return grievance
}

// FactorySet provides access to all factories
type FactorySet struct {
	Organization *OrganizationFactory
	Department   *DepartmentFactory
	Role         *RoleFactory
	User         *UserFactory
	Grievance    *GrievanceFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Organization: NewOrganizationFactory(),
		Department:   NewDepartmentFactory(),
		Role:         NewRoleFactory(),
		User:         NewUserFactory(),
		Grievance:    NewGrievanceFactory(),
	}
}
