// Package view selects which dashboard a user sees and which mutating
// operations it exposes. The role-to-capability mapping lives here in
// one place so policy is testable without any rendering layer.
//
// Capabilities are UI affordances, not a security boundary: every role
// runs in the same process over the same data.
package view

import "github.com/mybussiness/bazaar/domain"

// Kind identifies which dashboard is rendered.
type Kind string

const (
	KindSuperAdmin    Kind = "super_admin"
	KindBusinessAdmin Kind = "business_admin"
	KindStaff         Kind = "staff"
	KindCustomer      Kind = "customer"
)

// Capability names a mutating operation or panel a view exposes.
type Capability string

const (
	CapApproveBusinesses Capability = "approve-businesses"
	CapManageProducts    Capability = "manage-products"
	CapRecordExpenses    Capability = "record-expenses"
	CapManageOrders      Capability = "manage-orders"
	CapWorkOrders        Capability = "work-orders"
	CapPlaceOrders       Capability = "place-orders"
	CapRateProducts      Capability = "rate-products"
	CapViewReports       Capability = "view-reports"
)

// roleCapabilities is the single source of truth for what each role
// may do. MANAGER gets the business-admin surface minus expense entry.
var roleCapabilities = map[domain.Role][]Capability{
	domain.RoleSuperAdmin: {
		CapApproveBusinesses,
		CapViewReports,
	},
	domain.RoleBusinessAdmin: {
		CapManageProducts,
		CapRecordExpenses,
		CapManageOrders,
		CapViewReports,
	},
	domain.RoleManager: {
		CapManageProducts,
		CapManageOrders,
		CapViewReports,
	},
	domain.RoleStaff: {
		CapWorkOrders,
	},
	domain.RoleCustomer: {
		CapPlaceOrders,
		CapRateProducts,
	},
}

// View is the composed result for one user.
type View struct {
	Kind         Kind
	BusinessID   string
	capabilities map[Capability]bool

	// ReportsDenied marks the staff "Reports" tab, which always
	// renders an access-denied panel. Cosmetic only.
	ReportsDenied bool
}

// Compose returns the view for the current user. Unknown roles compose
// the customer view, the least privileged surface.
func Compose(user domain.User) View {
	v := View{
		BusinessID:   user.BusinessID,
		capabilities: map[Capability]bool{},
	}

	switch user.Role {
	case domain.RoleSuperAdmin:
		v.Kind = KindSuperAdmin
	case domain.RoleBusinessAdmin, domain.RoleManager:
		v.Kind = KindBusinessAdmin
	case domain.RoleStaff:
		v.Kind = KindStaff
		v.ReportsDenied = true
	default:
		v.Kind = KindCustomer
	}

	role := user.Role
	if !role.IsValid() {
		role = domain.RoleCustomer
	}
	for _, c := range roleCapabilities[role] {
		v.capabilities[c] = true
	}
	return v
}

// Can reports whether the view exposes a capability.
func (v View) Can(c Capability) bool {
	return v.capabilities[c]
}

// Capabilities returns the exposed capabilities in the order they are
// declared for the role.
func (v View) Capabilities() []Capability {
	var out []Capability
	for _, c := range []Capability{
		CapApproveBusinesses,
		CapManageProducts,
		CapRecordExpenses,
		CapManageOrders,
		CapWorkOrders,
		CapPlaceOrders,
		CapRateProducts,
		CapViewReports,
	} {
		if v.capabilities[c] {
			out = append(out, c)
		}
	}
	return out
}
