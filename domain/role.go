// Package domain defines the core entities of the bazaar marketplace:
// users and roles, businesses, products, orders, expenses and carts.
// Stores in other packages operate on these types; the package itself
// carries no behaviour beyond enum parsing and small derived values.
package domain

// Role identifies what a user is allowed to see and mutate.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleBusinessAdmin Role = "BUSINESS_ADMIN"
	RoleManager       Role = "MANAGER"
	RoleStaff         Role = "STAFF"
	RoleCustomer      Role = "CUSTOMER"
)

// IsValid checks if a role string is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleBusinessAdmin, RoleManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, returning empty for invalid values.
func ParseRole(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}
	return ""
}

// User is a platform account. Users are immutable once created;
// there is no profile editing in this scope.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	BusinessID string `json:"business_id,omitempty"`
	City       string `json:"city,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}
