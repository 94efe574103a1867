package inventory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// LowStockHandler reacts to below-reorder-point events raised by
// reconciliation commits and forwards them as alerts
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier is the interface for delivering low-stock alerts.
// Implementations can support different channels.
type LowStockNotifier interface {
	// NotifyLowStock delivers one alert
	NotifyLowStock(ctx context.Context, alert LowStockAlert) error
}

// LowStockAlert describes one item that fell to or under its reorder point
type LowStockAlert struct {
	TenantID     string `json:"tenant_id"`
	LocationID   string `json:"location_id"`
	ItemID       string `json:"item_id"`
	ItemName     string `json:"item_name"`
	Quantity     string `json:"quantity"`
	ReorderPoint string `json:"reorder_point"`
	OutOfStock   bool   `json:"out_of_stock"`
}

// NewLowStockHandler creates a new low-stock event handler
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithNotifier sets the notifier for delivering alerts
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeLevelBelowReorderPoint}
}

// Handle processes a LevelBelowReorderPointEvent
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowEvent, ok := event.(*inventory.LevelBelowReorderPointEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeLevelBelowReorderPoint, event.EventType())
	}

	h.logger.Warn("inventory at or below reorder point",
		zap.String("tenant_id", lowEvent.TenantID().String()),
		zap.String("location_id", lowEvent.LocationID.String()),
		zap.String("item_id", lowEvent.ItemID.String()),
		zap.String("item_name", lowEvent.ItemName),
		zap.String("quantity", lowEvent.NewQuantity.String()),
		zap.String("reorder_point", lowEvent.ReorderPoint.String()),
	)

	if h.notifier == nil {
		return nil
	}

	alert := LowStockAlert{
		TenantID:     lowEvent.TenantID().String(),
		LocationID:   lowEvent.LocationID.String(),
		ItemID:       lowEvent.ItemID.String(),
		ItemName:     lowEvent.ItemName,
		Quantity:     lowEvent.NewQuantity.String(),
		ReorderPoint: lowEvent.ReorderPoint.String(),
		OutOfStock:   lowEvent.NewQuantity.IsZero(),
	}

	if err := h.notifier.NotifyLowStock(ctx, alert); err != nil {
		// notification failure must not fail the event handling
		h.logger.Error("failed to deliver low-stock alert",
			zap.String("item_id", alert.ItemID),
			zap.Error(err),
		)
	}

	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)

// LoggingLowStockNotifier logs alerts instead of delivering them.
// Useful for development and testing.
type LoggingLowStockNotifier struct {
	logger *zap.Logger
}

// NewLoggingLowStockNotifier creates a logging notifier
func NewLoggingLowStockNotifier(logger *zap.Logger) *LoggingLowStockNotifier {
	return &LoggingLowStockNotifier{logger: logger}
}

// NotifyLowStock logs the alert
func (n *LoggingLowStockNotifier) NotifyLowStock(_ context.Context, alert LowStockAlert) error {
	n.logger.Warn("LOW STOCK ALERT",
		zap.String("item_id", alert.ItemID),
		zap.String("item_name", alert.ItemName),
		zap.String("location_id", alert.LocationID),
		zap.String("quantity", alert.Quantity),
		zap.String("reorder_point", alert.ReorderPoint),
		zap.Bool("out_of_stock", alert.OutOfStock),
	)
	return nil
}

var _ LowStockNotifier = (*LoggingLowStockNotifier)(nil)
