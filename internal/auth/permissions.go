package auth

// Permission tags granted through roles. The registry is closed: role
// create/update rejects tags not listed here.
const (
	PermCreateUser = "CREATE_USER"
	PermViewUser   = "VIEW_USER"
	PermUpdateUser = "UPDATE_USER"
	PermDeleteUser = "DELETE_USER"

	PermCreateRole = "CREATE_ROLE"
	PermViewRole   = "VIEW_ROLE"
	PermUpdateRole = "UPDATE_ROLE"
	PermDeleteRole = "DELETE_ROLE"

	PermCreateDepartment = "CREATE_DEPARTMENT"
	PermUpdateDepartment = "UPDATE_DEPARTMENT"
	PermDeleteDepartment = "DELETE_DEPARTMENT"

	PermCreateGrievance         = "CREATE_GRIEVANCE"
	PermViewGrievance           = "VIEW_GRIEVANCE"
	PermUpdateGrievance         = "UPDATE_GRIEVANCE"
	PermUpdateGrievanceStatus   = "UPDATE_GRIEVANCE_STATUS"
	PermUpdateGrievanceAssignee = "UPDATE_GRIEVANCE_ASSIGNEE"
	PermDeleteGrievance         = "DELETE_GRIEVANCE"
)

// Registry lists every known permission tag
var Registry = []string{
	PermCreateUser, PermViewUser, PermUpdateUser, PermDeleteUser,
	PermCreateRole, PermViewRole, PermUpdateRole, PermDeleteRole,
	PermCreateDepartment, PermUpdateDepartment, PermDeleteDepartment,
	PermCreateGrievance, PermViewGrievance, PermUpdateGrievance,
	PermUpdateGrievanceStatus, PermUpdateGrievanceAssignee, PermDeleteGrievance,
}

// SuperAdminRoleName is the role seeded at tenant bootstrap
const SuperAdminRoleName = "SUPER_ADMIN"

// AdminDepartmentName is the department seeded at tenant bootstrap
const AdminDepartmentName = "Admin"

// DefaultAdminPermissions is the full bundle granted to the bootstrap
// super-admin role
var DefaultAdminPermissions = append([]string(nil), Registry...)

// DefaultRoleBundles are the role presets installed by reset-permissions
var DefaultRoleBundles = []struct {
	Name        string
	Permissions []string
}{
	{Name: SuperAdminRoleName, Permissions: DefaultAdminPermissions},
	{Name: "HR_MANAGER", Permissions: []string{
		PermViewUser, PermUpdateUser,
		PermViewGrievance, PermUpdateGrievance,
		PermUpdateGrievanceStatus, PermUpdateGrievanceAssignee,
	}},
	{Name: "EMPLOYEE", Permissions: []string{
		PermCreateGrievance, PermViewGrievance,
	}},
}

// IsKnownPermission reports whether the tag is in the registry
func IsKnownPermission(tag string) bool {
	for _, p := range Registry {
		if p == tag {
			return true
		}
	}
	return false
}
