package types

// Role is the part a connection plays in a front-desk room.
type Role string

const (
	RoleGuest        Role = "guest"
	RoleReceptionist Role = "receptionist"
	RoleAdmin        Role = "admin"
)

// Valid reports whether the role is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleReceptionist, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role speaks the canonical staff language.
func (r Role) IsStaff() bool {
	return r == RoleReceptionist || r == RoleAdmin
}
