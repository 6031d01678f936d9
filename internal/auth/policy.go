package auth

import "github.com/yufj-331/ordershare/internal/user"

// Capability names one guarded group of routes.
type Capability string

const (
	SalesRead  Capability = "sales:read"
	SalesWrite Capability = "sales:write"
	Income     Capability = "income"
	Invoice    Capability = "invoice"
	Report     Capability = "report"
	ManageUser Capability = "users"
)

// Policy maps each role to the capabilities it holds. Admin holds all of them.
type Policy map[user.Role]map[Capability]bool

func DefaultPolicy() Policy {
	return Policy{
		user.RoleSaler: {
			SalesRead:  true,
			SalesWrite: true,
		},
		user.RoleIncomer: {
			SalesRead: true,
			Income:    true,
			Invoice:   true,
			Report:    true,
		},
		user.RoleInvoicer: {
			SalesRead: true,
			Income:    true,
			Invoice:   true,
			Report:    true,
		},
	}
}

func (p Policy) Allows(role user.Role, c Capability) bool {
	if role == user.RoleAdmin {
		return true
	}

	return p[role][c]
}
