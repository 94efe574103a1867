package identity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stocktally/backend/internal/domain/shared"
)

// Actor is the authorization context for a single call: the tenant the
// request is scoped to, the user performing it, and their role.
type Actor struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Name     string
	Role     Role
}

// NewActor creates an actor, validating the identity fields
func NewActor(tenantID, userID uuid.UUID, name string, role Role) (Actor, error) {
	if tenantID == uuid.Nil {
		return Actor{}, shared.NewValidationError("Tenant ID cannot be empty")
	}
	if userID == uuid.Nil {
		return Actor{}, shared.NewValidationError("Actor ID cannot be empty")
	}
	if !role.IsValid() {
		return Actor{}, shared.NewValidationError(fmt.Sprintf("Unknown role %q", role))
	}
	return Actor{TenantID: tenantID, UserID: userID, Name: name, Role: role}, nil
}

// RequireRole fails with a forbidden error unless the actor holds at
// least the given role
func (a Actor) RequireRole(min Role) error {
	if !a.Role.AtLeast(min) {
		return shared.NewForbiddenError(fmt.Sprintf("Role %q required, actor has %q", min, a.Role))
	}
	return nil
}
