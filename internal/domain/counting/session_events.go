package counting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktally/backend/internal/domain/shared"
)

// Event types for stock-count sessions
const (
	EventTypeSessionOpened    = "counting.session.opened"
	EventTypeSessionCompleted = "counting.session.completed"
	EventTypeSessionCancelled = "counting.session.cancelled"
	EventTypeSessionDeleted   = "counting.session.deleted"
	EventTypeLineAdded        = "counting.line.added"
	EventTypeLineUpdated      = "counting.line.updated"
	EventTypeLineRemoved      = "counting.line.removed"
)

// SessionOpenedEvent is emitted when a new session is opened
type SessionOpenedEvent struct {
	shared.BaseDomainEvent
	LocationID    uuid.UUID `json:"location_id"`
	LocationName  string    `json:"location_name"`
	CreatedByID   uuid.UUID `json:"created_by_id"`
	CreatedByName string    `json:"created_by_name"`
}

// NewSessionOpenedEvent creates a session-opened event
func NewSessionOpenedEvent(s *StockCountSession) *SessionOpenedEvent {
	return &SessionOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionOpened, "StockCountSession", s.ID, s.TenantID),
		LocationID:      s.LocationID,
		LocationName:    s.LocationName,
		CreatedByID:     s.CreatedByID,
		CreatedByName:   s.CreatedByName,
	}
}

// SessionCompletedEvent is emitted when a session is reconciled and closed
type SessionCompletedEvent struct {
	shared.BaseDomainEvent
	LocationID    uuid.UUID `json:"location_id"`
	LineCount     int       `json:"line_count"`
	AdjustedItems int       `json:"adjusted_items"`
}

// NewSessionCompletedEvent creates a session-completed event
func NewSessionCompletedEvent(s *StockCountSession) *SessionCompletedEvent {
	return &SessionCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionCompleted, "StockCountSession", s.ID, s.TenantID),
		LocationID:      s.LocationID,
		LineCount:       len(s.Lines),
		AdjustedItems:   s.AdjustedItems,
	}
}

// SessionCancelledEvent is emitted when a session is cancelled
type SessionCancelledEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	LineCount  int       `json:"line_count"`
}

// NewSessionCancelledEvent creates a session-cancelled event
func NewSessionCancelledEvent(s *StockCountSession) *SessionCancelledEvent {
	return &SessionCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionCancelled, "StockCountSession", s.ID, s.TenantID),
		LocationID:      s.LocationID,
		LineCount:       len(s.Lines),
	}
}

// SessionDeletedEvent is emitted when a session and its lines are removed
type SessionDeletedEvent struct {
	shared.BaseDomainEvent
	LocationID uuid.UUID `json:"location_id"`
	Status     string    `json:"status"`
}

// NewSessionDeletedEvent creates a session-deleted event
func NewSessionDeletedEvent(s *StockCountSession) *SessionDeletedEvent {
	return &SessionDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionDeleted, "StockCountSession", s.ID, s.TenantID),
		LocationID:      s.LocationID,
		Status:          s.Status.String(),
	}
}

// LineEvent carries the shared payload of line-level events
type LineEvent struct {
	shared.BaseDomainEvent
	LineID           uuid.UUID       `json:"line_id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	SnapshotQuantity decimal.Decimal `json:"snapshot_quantity"`
	Variance         decimal.Decimal `json:"variance"`
}

func newLineEvent(eventType string, s *StockCountSession, l *CountLine) LineEvent {
	return LineEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(eventType, "StockCountSession", s.ID, s.TenantID),
		LineID:           l.ID,
		ItemID:           l.ItemID,
		ItemName:         l.ItemName,
		CountedQuantity:  l.CountedQuantity,
		SnapshotQuantity: l.SnapshotQuantity,
		Variance:         l.Variance,
	}
}

// LineAddedEvent is emitted when a new count line is recorded
type LineAddedEvent struct{ LineEvent }

// NewLineAddedEvent creates a line-added event
func NewLineAddedEvent(s *StockCountSession, l *CountLine) *LineAddedEvent {
	return &LineAddedEvent{LineEvent: newLineEvent(EventTypeLineAdded, s, l)}
}

// LineUpdatedEvent is emitted when an existing count line is re-recorded
type LineUpdatedEvent struct{ LineEvent }

// NewLineUpdatedEvent creates a line-updated event
func NewLineUpdatedEvent(s *StockCountSession, l *CountLine) *LineUpdatedEvent {
	return &LineUpdatedEvent{LineEvent: newLineEvent(EventTypeLineUpdated, s, l)}
}

// LineRemovedEvent is emitted when a count line is removed
type LineRemovedEvent struct{ LineEvent }

// NewLineRemovedEvent creates a line-removed event
func NewLineRemovedEvent(s *StockCountSession, l *CountLine) *LineRemovedEvent {
	return &LineRemovedEvent{LineEvent: newLineEvent(EventTypeLineRemoved, s, l)}
}
