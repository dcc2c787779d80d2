package domain

// Role is the closed set of access tiers in the hub.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"

	// RoleNone marks a caller that is unauthenticated or whose role has not
	// been resolved yet.
	RoleNone Role = ""
)

// ParseRole maps a raw string onto the closed role set. Unknown values
// collapse to RoleNone so they never grant access by accident.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return Role(raw)
	default:
		return RoleNone
	}
}

func (r Role) IsAdmin() bool    { return r == RoleAdmin }
func (r Role) IsManager() bool  { return r == RoleManager }
func (r Role) IsEmployee() bool { return r == RoleEmployee }

func (r Role) IsAdminOrManager() bool {
	return r == RoleAdmin || r == RoleManager
}

// EffectiveRole reconciles the two places a role can live. The identity
// provider's claim is authoritative; the profile's stored role is a fallback;
// absent both, the lowest-privilege role applies.
func EffectiveRole(claim, stored Role) Role {
	if claim != RoleNone {
		return claim
	}
	if stored != RoleNone {
		return stored
	}
	return RoleEmployee
}
