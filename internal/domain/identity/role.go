package identity

// Role is the single role a user holds. Route guards compare against it.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
)

// AllRoles lists every role known to the system
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCashier, RoleWaiter, RoleKitchen}
}

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCashier, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}

// String returns the string representation
func (r Role) String() string {
	return string(r)
}
