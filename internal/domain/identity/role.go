package identity

import (
	"fmt"

	"github.com/stocktally/backend/internal/domain/shared"
)

// Role represents the access level of an actor within a tenant.
// Roles are ordered: a higher role implies every capability of the
// roles below it.
type Role string

const (
	RoleViewer   Role = "viewer"   // read-only access
	RoleOperator Role = "operator" // may create sessions and record counts
	RoleManager  Role = "manager"  // may delete sessions and override concurrency blocks
)

var roleRank = map[Role]int{
	RoleViewer:   1,
	RoleOperator: 2,
	RoleManager:  3,
}

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// AtLeast reports whether the role grants at least the capabilities of min
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

// ParseRole converts a string into a Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", shared.NewValidationError(fmt.Sprintf("Unknown role %q", s))
	}
	return r, nil
}
