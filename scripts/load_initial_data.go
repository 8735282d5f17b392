package main

import (
	"fmt"
	"grievance-portal-backend/internal/auth"
	"grievance-portal-backend/internal/config"
	"grievance-portal-backend/internal/database"
	"grievance-portal-backend/internal/database/models"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	Website     string `yaml:"website,omitempty"`
	Description string `yaml:"description,omitempty"`
	Address     string `yaml:"address,omitempty"`
	City        string `yaml:"city,omitempty"`
	State       string `yaml:"state,omitempty"`
	Country     string `yaml:"country,omitempty"`
	Pincode     string `yaml:"pincode,omitempty"`
	Phone       string `yaml:"phone,omitempty"`
}

type DepartmentData struct {
	Name              string `yaml:"name"`
	OrganizationEmail string `yaml:"organization_email"`
	Description       string `yaml:"description,omitempty"`
}

type RoleData struct {
	Name              string   `yaml:"name"`
	OrganizationEmail string   `yaml:"organization_email"`
	Permissions       []string `yaml:"permissions"`
}

type UserData struct {
	Username           string   `yaml:"username"`
	Email              string   `yaml:"email"`
	EmployeeID         string   `yaml:"employee_id"`
	Password           string   `yaml:"password"`
	FirstName          string   `yaml:"first_name"`
	LastName           string   `yaml:"last_name"`
	PhoneNumber        string   `yaml:"phone_number,omitempty"`
	OrganizationEmail  string   `yaml:"organization_email"`
	RoleName           string   `yaml:"role_name"`
	DepartmentName     string   `yaml:"department_name"`
	SpecialPermissions []string `yaml:"special_permissions,omitempty"`
	IsActive           bool     `yaml:"is_active"`
}

type GrievanceData struct {
	Title             string `yaml:"title"`
	Description       string `yaml:"description"`
	OrganizationEmail string `yaml:"organization_email"`
	DepartmentName    string `yaml:"department_name"`
	Severity          string `yaml:"severity"`
	Status            string `yaml:"status,omitempty"`
	ReporterUsername  string `yaml:"reporter_username"`
	AssigneeUsername  string `yaml:"assignee_username,omitempty"`
}

// File structures
type OrganizationsFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
}

type DepartmentsFile struct {
	Departments []DepartmentData `yaml:"departments"`
}

type RolesFile struct {
	Roles []RoleData `yaml:"roles"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type GrievancesFile struct {
	Grievances []GrievanceData `yaml:"grievances"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	organizations, err := loadOrganizations(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}

	departments, err := loadDepartments(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load departments: %w", err)
	}

	roles, err := loadRoles(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}

	users, err := loadUsers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	grievances, err := loadGrievances(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load grievances: %w", err)
	}

	// Create organizations first
	orgMap := make(map[string]*models.Organization)
	orgCreated := 0
	for _, orgData := range organizations {
		org, created, err := createOrganization(db, orgData)
		if err != nil {
			return fmt.Errorf("failed to create organization %s: %w", orgData.Name, err)
		}
		orgMap[orgData.Email] = org
		if created {
			orgCreated++
		}
	}
	log.Printf("📋 Organizations: %d created, %d total", orgCreated, len(organizations))

	// Create departments
	deptMap := make(map[string]*models.Department)
	deptCreated := 0
	for _, deptData := range departments {
		dept, created, err := createDepartment(db, deptData, orgMap)
		if err != nil {
			return fmt.Errorf("failed to create department %s: %w", deptData.Name, err)
		}
		deptMap[deptKey(deptData.OrganizationEmail, deptData.Name)] = dept
		if created {
			deptCreated++
		}
	}
	log.Printf("📋 Departments: %d created, %d total", deptCreated, len(departments))

	// Create roles
	roleMap := make(map[string]*models.Role)
	roleCreated := 0
	for _, roleData := range roles {
		role, created, err := createRole(db, roleData, orgMap)
		if err != nil {
			return fmt.Errorf("failed to create role %s: %w", roleData.Name, err)
		}
		roleMap[deptKey(roleData.OrganizationEmail, roleData.Name)] = role
		if created {
			roleCreated++
		}
	}
	log.Printf("📋 Roles: %d created, %d total", roleCreated, len(roles))

	// Create users
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData, orgMap, roleMap, deptMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Username, err)
		}
		userMap[deptKey(userData.OrganizationEmail, userData.Username)] = user
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	// Create grievances
	grievanceCreated := 0
	for _, grievanceData := range grievances {
		_, created, err := createGrievance(db, grievanceData, orgMap, deptMap, userMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create grievance %s: %v", grievanceData.Title, err)
			continue // Continue with other grievances
		}
		if created {
			grievanceCreated++
		}
	}
	log.Printf("📋 Grievances: %d created, %d total", grievanceCreated, len(grievances))

	return nil
}

// deptKey scopes name lookups to an organization since names are only
// unique within one.
func deptKey(orgEmail, name string) string {
	return orgEmail + "/" + name
}

func loadOrganizations(dataDir string) ([]OrganizationData, error) {
	var allOrgs []OrganizationData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "organizations") {
			var file OrganizationsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allOrgs = append(allOrgs, file.Organizations...)
		}
		return nil
	})

	return allOrgs, err
}

func loadDepartments(dataDir string) ([]DepartmentData, error) {
	var allDepartments []DepartmentData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "departments") {
			var file DepartmentsFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allDepartments = append(allDepartments, file.Departments...)
		}
		return nil
	})

	return allDepartments, err
}

func loadRoles(dataDir string) ([]RoleData, error) {
	var allRoles []RoleData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "roles") {
			var file RolesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allRoles = append(allRoles, file.Roles...)
		}
		return nil
	})

	return allRoles, err
}

func loadUsers(dataDir string) ([]UserData, error) {
	var allUsers []UserData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "users") {
			var file UsersFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allUsers = append(allUsers, file.Users...)
		}
		return nil
	})

	return allUsers, err
}

func loadGrievances(dataDir string) ([]GrievanceData, error) {
	var allGrievances []GrievanceData

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, "grievances") {
			var file GrievancesFile
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			allGrievances = append(allGrievances, file.Grievances...)
		}
		return nil
	})

	return allGrievances, err
}

func createOrganization(db *gorm.DB, orgData OrganizationData) (*models.Organization, bool, error) {
	var org models.Organization
	if err := db.Where("email = ?", orgData.Email).First(&org).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			org = models.Organization{
				Name:        orgData.Name,
				Email:       orgData.Email,
				Website:     orgData.Website,
				Description: orgData.Description,
				Address:     orgData.Address,
				City:        orgData.City,
				State:       orgData.State,
				Country:     orgData.Country,
				Pincode:     orgData.Pincode,
				Phone:       orgData.Phone,
			}

			if err := db.Create(&org).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create organization: %w", err)
			}
			return &org, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query organization: %w", err)
		}
	}

	return &org, false, nil // created = false (existing)
}

func createDepartment(db *gorm.DB, deptData DepartmentData, orgMap map[string]*models.Organization) (*models.Department, bool, error) {
	org := orgMap[deptData.OrganizationEmail]
	if org == nil {
		return nil, false, fmt.Errorf("organization %s not found for department %s", deptData.OrganizationEmail, deptData.Name)
	}

	var dept models.Department
	if err := db.Where("lower(name) = lower(?) AND organization_id = ?", deptData.Name, org.ID).First(&dept).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			dept = models.Department{
				OrganizationID: org.ID,
				Name:           deptData.Name,
				Description:    deptData.Description,
				IsActive:       true,
			}

			if err := db.Create(&dept).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create department: %w", err)
			}
			return &dept, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query department: %w", err)
		}
	}

	return &dept, false, nil // created = false (existing)
}

func createRole(db *gorm.DB, roleData RoleData, orgMap map[string]*models.Organization) (*models.Role, bool, error) {
	org := orgMap[roleData.OrganizationEmail]
	if org == nil {
		return nil, false, fmt.Errorf("organization %s not found for role %s", roleData.OrganizationEmail, roleData.Name)
	}

	for _, tag := range roleData.Permissions {
		if !auth.IsKnownPermission(tag) {
			return nil, false, fmt.Errorf("unknown permission %s on role %s", tag, roleData.Name)
		}
	}

	var role models.Role
	if err := db.Where("name = ? AND organization_id = ?", roleData.Name, org.ID).First(&role).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			role = models.Role{
				OrganizationID: org.ID,
				Name:           roleData.Name,
				Permissions:    roleData.Permissions,
			}

			if err := db.Create(&role).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create role: %w", err)
			}
			return &role, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query role: %w", err)
		}
	}

	return &role, false, nil // created = false (existing)
}

func createUser(db *gorm.DB, userData UserData, orgMap map[string]*models.Organization, roleMap map[string]*models.Role, deptMap map[string]*models.Department) (*models.User, bool, error) {
	org := orgMap[userData.OrganizationEmail]
	if org == nil {
		return nil, false, fmt.Errorf("organization %s not found for user %s", userData.OrganizationEmail, userData.Username)
	}

	role := roleMap[deptKey(userData.OrganizationEmail, userData.RoleName)]
	if role == nil {
		return nil, false, fmt.Errorf("role %s not found for user %s", userData.RoleName, userData.Username)
	}

	dept := deptMap[deptKey(userData.OrganizationEmail, userData.DepartmentName)]
	if dept == nil {
		return nil, false, fmt.Errorf("department %s not found for user %s", userData.DepartmentName, userData.Username)
	}

	var user models.User
	if err := db.Where("username = ? AND organization_id = ? AND is_deleted = false", userData.Username, org.ID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			user = models.User{
				OrganizationID:     org.ID,
				RoleID:             role.ID,
				DepartmentID:       dept.ID,
				Username:           userData.Username,
				Email:              userData.Email,
				EmployeeID:         userData.EmployeeID,
				Password:           userData.Password, // hashed by the model hook
				FirstName:          userData.FirstName,
				LastName:           userData.LastName,
				PhoneNumber:        userData.PhoneNumber,
				SpecialPermissions: userData.SpecialPermissions,
				IsActive:           userData.IsActive,
			}

			if err := db.Create(&user).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create user: %w", err)
			}
			return &user, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query user: %w", err)
		}
	}

	return &user, false, nil // created = false (existing)
}

func createGrievance(db *gorm.DB, grievanceData GrievanceData, orgMap map[string]*models.Organization, deptMap map[string]*models.Department, userMap map[string]*models.User) (*models.Grievance, bool, error) {
	org := orgMap[grievanceData.OrganizationEmail]
	if org == nil {
		return nil, false, fmt.Errorf("organization %s not found for grievance %s", grievanceData.OrganizationEmail, grievanceData.Title)
	}

	dept := deptMap[deptKey(grievanceData.OrganizationEmail, grievanceData.DepartmentName)]
	if dept == nil {
		return nil, false, fmt.Errorf("department %s not found for grievance %s", grievanceData.DepartmentName, grievanceData.Title)
	}

	reporter := userMap[deptKey(grievanceData.OrganizationEmail, grievanceData.ReporterUsername)]
	if reporter == nil {
		return nil, false, fmt.Errorf("reporter %s not found for grievance %s", grievanceData.ReporterUsername, grievanceData.Title)
	}

	var assignedTo *uuid.UUID
	if grievanceData.AssigneeUsername != "" {
		if assignee := userMap[deptKey(grievanceData.OrganizationEmail, grievanceData.AssigneeUsername)]; assignee != nil {
			assignedTo = &assignee.ID
		} else {
			log.Printf("⚠️  Warning: assignee %s not found for grievance %s", grievanceData.AssigneeUsername, grievanceData.Title)
		}
	}

	status := models.StatusSubmitted
	if grievanceData.Status != "" {
		if !models.IsValidStatus(grievanceData.Status) {
			return nil, false, fmt.Errorf("invalid status %s on grievance %s", grievanceData.Status, grievanceData.Title)
		}
		status = models.GrievanceStatus(grievanceData.Status)
	}
	if !models.IsValidSeverity(grievanceData.Severity) {
		return nil, false, fmt.Errorf("invalid severity %s on grievance %s", grievanceData.Severity, grievanceData.Title)
	}

	var grievance models.Grievance
	if err := db.Where("title = ? AND organization_id = ?", grievanceData.Title, org.ID).First(&grievance).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			grievance = models.Grievance{
				OrganizationID: org.ID,
				Title:          grievanceData.Title,
				Description:    grievanceData.Description,
				DepartmentID:   dept.ID,
				Severity:       models.GrievanceSeverity(grievanceData.Severity),
				Status:         status,
				IsActive:       true,
				EmployeeID:     reporter.EmployeeID,
				ReportedBy:     reporter.ID,
				AssignedTo:     assignedTo,
			}

			if err := db.Create(&grievance).Error; err != nil {
				return nil, false, fmt.Errorf("failed to create grievance: %w", err)
			}
			return &grievance, true, nil // created = true
		} else {
			return nil, false, fmt.Errorf("failed to query grievance: %w", err)
		}
	}

	return &grievance, false, nil // created = false (existing)
}
