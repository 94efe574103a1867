package counting

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktally/backend/internal/domain/shared"
)

// SessionFilter narrows session listings
type SessionFilter struct {
	shared.Filter
	LocationID *uuid.UUID
	Status     *SessionStatus
}

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	// FindByIDForTenant finds a session with its lines; returns
	// shared.ErrNotFound when no session exists for the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockCountSession, error)

	// FindAllForTenant lists sessions for a tenant, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter SessionFilter) ([]StockCountSession, error)

	// CountForTenant counts sessions matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter SessionFilter) (int64, error)

	// ExistsInProgress reports whether the location already has an open session
	ExistsInProgress(ctx context.Context, tenantID, locationID uuid.UUID) (bool, error)

	// SaveWithLines persists the session and synchronizes its lines
	SaveWithLines(ctx context.Context, session *StockCountSession) error

	// DeleteForTenant removes a session and its lines
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
