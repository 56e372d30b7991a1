package domain

// Role enumerates the closed set of authority levels a portal user can hold.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleHRAdmin      Role = "hr_admin"
	RolePayrollAdmin Role = "payroll_admin"
	RoleManager      Role = "manager"
	RoleEmployee     Role = "employee"
)

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleHRAdmin, RolePayrollAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// AdminRoles are the roles admitted into the admin console area.
func AdminRoles() []Role {
	return []Role{RoleSuperAdmin, RoleHRAdmin, RolePayrollAdmin}
}
