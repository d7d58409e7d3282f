package domain

// Principal is the identity resolved from a bearer token. It is passed
// explicitly into every service call that enforces ownership rules; there is
// no ambient security context.
type Principal struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser reports whether the principal may act on resources owned by
// targetID: admins always, everyone else only on themselves.
func (p Principal) CanAccessUser(targetID string) bool {
	return p.IsAdmin() || p.UserID == targetID
}
