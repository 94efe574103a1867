package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktally/backend/internal/domain/shared"
)

// InventoryLevel represents the current stock quantity of one item at one
// location. It is the aggregate root for ledger operations.
// The composite identifier is LocationID + ItemID within a tenant.
type InventoryLevel struct {
	shared.TenantAggregateRoot
	LocationID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_level_location_item,priority:2"`
	ItemID          uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_level_location_item,priority:3"`
	ItemName        string           `gorm:"size:255"`
	Quantity        decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderPoint    *decimal.Decimal `gorm:"type:decimal(18,4)"` // alert threshold, nil when no reorder policy
	ReorderQuantity *decimal.Decimal `gorm:"type:decimal(18,4)"` // suggested reorder size, nil when no reorder policy
}

// TableName returns the table name for GORM
func (InventoryLevel) TableName() string {
	return "inventory_levels"
}

// NewInventoryLevel creates an empty ledger row for a location-item combination
func NewInventoryLevel(tenantID, locationID, itemID uuid.UUID) (*InventoryLevel, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("Location ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewValidationError("Item ID cannot be empty")
	}

	return &InventoryLevel{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LocationID:          locationID,
		ItemID:              itemID,
		Quantity:            decimal.Zero,
	}, nil
}

// SetQuantity overwrites the current quantity, leaving the reorder policy
// untouched. Emits a below-reorder-point event when the new quantity falls
// to or under the configured reorder point.
func (l *InventoryLevel) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewBusinessRuleViolation("Inventory quantity cannot be negative")
	}

	l.Quantity = quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	if l.ReorderPoint != nil && quantity.LessThanOrEqual(*l.ReorderPoint) {
		l.AddDomainEvent(NewLevelBelowReorderPointEvent(l))
	}

	return nil
}

// SetReorderPolicy sets or clears the reorder point and quantity
func (l *InventoryLevel) SetReorderPolicy(point, quantity *decimal.Decimal) error {
	if point != nil && point.IsNegative() {
		return shared.NewValidationError("Reorder point cannot be negative")
	}
	if quantity != nil && quantity.IsNegative() {
		return shared.NewValidationError("Reorder quantity cannot be negative")
	}

	l.ReorderPoint = point
	l.ReorderQuantity = quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	return nil
}
