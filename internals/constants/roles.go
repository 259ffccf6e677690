package constants

// Organization roles, lowest to highest.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleOwner  = "owner"
)

var (
	AllRoles = []string{
		RoleMember,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)

// RoleAtLeast reports whether role grants at least the privileges of min.
func RoleAtLeast(role, min string) bool {
	rank := map[string]int{
		RoleMember: 1,
		RoleAdmin:  2,
		RoleOwner:  3,
	}
	return rank[role] >= rank[min] && rank[role] != 0
}
