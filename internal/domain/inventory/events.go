package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktally/backend/internal/domain/shared"
)

// Event types for the inventory ledger
const (
	EventTypeLevelBelowReorderPoint = "inventory.level.below_reorder_point"
	EventTypeAdjustmentApplied      = "inventory.adjustment.applied"
)

// LevelBelowReorderPointEvent is emitted when a ledger write leaves the
// quantity at or below the configured reorder point
type LevelBelowReorderPointEvent struct {
	shared.BaseDomainEvent
	LocationID   uuid.UUID       `json:"location_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	ItemName     string          `json:"item_name"`
	NewQuantity  decimal.Decimal `json:"new_quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// NewLevelBelowReorderPointEvent creates a below-reorder-point event
func NewLevelBelowReorderPointEvent(l *InventoryLevel) *LevelBelowReorderPointEvent {
	point := decimal.Zero
	if l.ReorderPoint != nil {
		point = *l.ReorderPoint
	}
	return &LevelBelowReorderPointEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLevelBelowReorderPoint, "InventoryLevel", l.ID, l.TenantID),
		LocationID:      l.LocationID,
		ItemID:          l.ItemID,
		ItemName:        l.ItemName,
		NewQuantity:     l.Quantity,
		ReorderPoint:    point,
	}
}

// AdjustmentAppliedEvent is emitted for every adjustment record written
// during a reconciliation commit
type AdjustmentAppliedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID       `json:"adjustment_id"`
	LocationID   uuid.UUID       `json:"location_id"`
	ItemID       uuid.UUID       `json:"item_id"`
	Delta        decimal.Decimal `json:"delta"`
	Reason       string          `json:"reason"`
}

// NewAdjustmentAppliedEvent creates an adjustment-applied event
func NewAdjustmentAppliedEvent(a *StockAdjustment) *AdjustmentAppliedEvent {
	return &AdjustmentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentApplied, "StockAdjustment", a.ID, a.TenantID),
		AdjustmentID:    a.ID,
		LocationID:      a.LocationID,
		ItemID:          a.ItemID,
		Delta:           a.Delta,
		Reason:          a.Reason,
	}
}
