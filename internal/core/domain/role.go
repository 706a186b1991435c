package domain

// Role is the access level carried by a session. Values are compared with
// strict equality: "admin" is not RoleAdmin.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// Roles lists the recognised roles in canonical order.
var Roles = []Role{RoleAdmin, RoleStaff}

// Known reports whether r is one of the recognised roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
