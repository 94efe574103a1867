package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stocktally/backend/internal/domain/shared"
)

// LevelRepository defines the interface for inventory ledger persistence
type LevelRepository interface {
	// FindByLocationAndItem finds the ledger row for a location-item
	// combination; returns shared.ErrNotFound when no row exists
	FindByLocationAndItem(ctx context.Context, tenantID, locationID, itemID uuid.UUID) (*InventoryLevel, error)

	// GetOrCreate returns the existing ledger row or a new zero-quantity one
	GetOrCreate(ctx context.Context, tenantID, locationID, itemID uuid.UUID) (*InventoryLevel, error)

	// FindByLocation lists ledger rows at a location
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]InventoryLevel, error)

	// CountByLocation counts ledger rows at a location
	CountByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (int64, error)

	// Save creates or updates a ledger row
	Save(ctx context.Context, level *InventoryLevel) error
}

// AdjustmentRepository defines the interface for adjustment record
// persistence. Records are append-only.
type AdjustmentRepository interface {
	// Create appends a new adjustment record
	Create(ctx context.Context, adjustment *StockAdjustment) error

	// FindByItem lists adjustments for an item at a location
	FindByItem(ctx context.Context, tenantID, locationID, itemID uuid.UUID, filter shared.Filter) ([]StockAdjustment, error)

	// FindForTenant lists adjustments for a tenant
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockAdjustment, error)

	// CountForTenant counts adjustments for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
