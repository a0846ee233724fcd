package rbac

// Role names. Keep these stable; they are carried inside signed tokens.
const (
	RoleUser    = "user"
	RoleCurator = "curator"
	RoleAdmin   = "admin"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

// IsKnown reports whether a role is one this platform recognizes. Unknown
// roles are treated as plain users for policy purposes.
func IsKnown(role string) bool {
	switch role {
	case RoleUser, RoleCurator, RoleAdmin:
		return true
	default:
		return false
	}
}
