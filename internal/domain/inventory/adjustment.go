package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktally/backend/internal/domain/shared"
)

// AdjustmentReasonStockCount marks adjustments produced by a reconciled
// stock-count session.
const AdjustmentReasonStockCount = "Stock Count"

// StockAdjustment is an immutable record of one corrective quantity delta
// applied to the ledger. Records are append-only: they are created during a
// commit and never updated or deleted.
type StockAdjustment struct {
	shared.BaseEntity
	TenantID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName   string          `gorm:"size:255"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Delta      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed quantity change
	Reason     string          `gorm:"size:100;not null"`
	Note       string          `gorm:"size:500"`
	ActorID    uuid.UUID       `gorm:"type:uuid;not null"`
	ActorName  string          `gorm:"size:255"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// NewStockAdjustment creates an adjustment record
func NewStockAdjustment(tenantID, itemID, locationID uuid.UUID, itemName string, delta decimal.Decimal, reason, note string, actorID uuid.UUID, actorName string) (*StockAdjustment, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("Location ID cannot be empty")
	}
	if delta.IsZero() {
		return nil, shared.NewValidationError("Adjustment delta cannot be zero")
	}
	if reason == "" {
		return nil, shared.NewValidationError("Adjustment reason cannot be empty")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewValidationError("Actor ID cannot be empty")
	}

	return &StockAdjustment{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ItemID:     itemID,
		ItemName:   itemName,
		LocationID: locationID,
		Delta:      delta,
		Reason:     reason,
		Note:       note,
		ActorID:    actorID,
		ActorName:  actorName,
	}, nil
}
