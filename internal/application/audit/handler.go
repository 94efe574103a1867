package audit

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// Handler writes a structured audit log entry for every counting and
// ledger event. Entries are best effort and never block the operation
// that raised them.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates an audit event handler
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *Handler) EventTypes() []string {
	return []string{
		counting.EventTypeSessionOpened,
		counting.EventTypeSessionCompleted,
		counting.EventTypeSessionCancelled,
		counting.EventTypeSessionDeleted,
		counting.EventTypeLineAdded,
		counting.EventTypeLineUpdated,
		counting.EventTypeLineRemoved,
		inventory.EventTypeAdjustmentApplied,
	}
}

// Handle records the event as a structured log entry
func (h *Handler) Handle(_ context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	}

	if payload, err := json.Marshal(event); err == nil {
		fields = append(fields, zap.ByteString("payload", payload))
	}

	h.logger.Info("domain event", fields...)
	return nil
}

var _ shared.EventHandler = (*Handler)(nil)
