package counting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stocktally/backend/internal/domain/shared"
)

// SessionStatus represents the lifecycle state of a stock-count session
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusCancelled  SessionStatus = "CANCELLED"
)

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusInProgress, SessionStatusCompleted, SessionStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s SessionStatus) IsTerminal() bool {
	return s == SessionStatusCompleted || s == SessionStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	if s != SessionStatusInProgress {
		return false
	}
	return target == SessionStatusCompleted || target == SessionStatusCancelled
}

// CountLine is one item's counted-vs-system comparison within a session.
// The snapshot quantity is the live ledger quantity read the last time the
// line was added or updated, so variance always measures against the most
// recent read, not the session start.
type CountLine struct {
	ID               uuid.UUID
	SessionID        uuid.UUID
	ItemID           uuid.UUID
	ItemName         string
	ItemSKU          string
	CountedQuantity  decimal.Decimal
	SnapshotQuantity decimal.Decimal
	Variance         decimal.Decimal // counted - snapshot
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasVariance returns true if the counted quantity differs from the snapshot
func (l *CountLine) HasVariance() bool {
	return !l.Variance.IsZero()
}

func newCountLine(sessionID, itemID uuid.UUID, itemName, itemSKU string, counted, snapshot decimal.Decimal, notes string) *CountLine {
	now := time.Now()
	return &CountLine{
		ID:               uuid.New(),
		SessionID:        sessionID,
		ItemID:           itemID,
		ItemName:         itemName,
		ItemSKU:          itemSKU,
		CountedQuantity:  counted,
		SnapshotQuantity: snapshot,
		Variance:         counted.Sub(snapshot),
		Notes:            notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (l *CountLine) recapture(counted, snapshot decimal.Decimal, notes string) {
	l.CountedQuantity = counted
	l.SnapshotQuantity = snapshot
	l.Variance = counted.Sub(snapshot)
	l.Notes = notes
	l.UpdatedAt = time.Now()
}

// StockCountSession represents one physical stock-count event at a single
// location. It is the aggregate root for reconciliation operations and owns
// its count lines.
type StockCountSession struct {
	shared.TenantAggregateRoot
	LocationID    uuid.UUID
	LocationName  string
	Status        SessionStatus
	Notes         string
	CreatedByID   uuid.UUID
	CreatedByName string
	CompletedAt   *time.Time
	AdjustedItems int // lines whose variance was applied at completion
	Lines         []CountLine
}

// NewStockCountSession opens a new session in IN_PROGRESS state
func NewStockCountSession(tenantID, locationID uuid.UUID, locationName string, createdByID uuid.UUID, createdByName, notes string) (*StockCountSession, error) {
	if locationID == uuid.Nil {
		return nil, shared.NewValidationError("Location ID cannot be empty")
	}
	if createdByID == uuid.Nil {
		return nil, shared.NewValidationError("Creator ID cannot be empty")
	}

	s := &StockCountSession{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		LocationID:          locationID,
		LocationName:        locationName,
		Status:              SessionStatusInProgress,
		Notes:               notes,
		CreatedByID:         createdByID,
		CreatedByName:       createdByName,
		Lines:               make([]CountLine, 0),
	}

	s.AddDomainEvent(NewSessionOpenedEvent(s))

	return s, nil
}

// validateCountedQuantity enforces the non-negative whole-number input rule
func validateCountedQuantity(q decimal.Decimal) error {
	if q.IsNegative() {
		return shared.NewValidationError("Counted quantity cannot be negative")
	}
	if !q.IsInteger() {
		return shared.NewValidationError("Counted quantity must be a whole number")
	}
	return nil
}

// RecordLine records a counted quantity for an item, capturing the given
// live ledger quantity as the line's snapshot. Re-recording an item updates
// its existing line in place, re-capturing the snapshot from the current
// live quantity. Returns true when a new line was created.
func (s *StockCountSession) RecordLine(itemID uuid.UUID, itemName, itemSKU string, counted, liveQuantity decimal.Decimal, notes string) (bool, error) {
	if s.Status != SessionStatusInProgress {
		return false, shared.NewBusinessRuleViolation("Cannot edit a completed or cancelled session")
	}
	if itemID == uuid.Nil {
		return false, shared.NewValidationError("Item ID cannot be empty")
	}
	if err := validateCountedQuantity(counted); err != nil {
		return false, err
	}

	for i := range s.Lines {
		if s.Lines[i].ItemID == itemID {
			s.Lines[i].recapture(counted, liveQuantity, notes)
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			s.AddDomainEvent(NewLineUpdatedEvent(s, &s.Lines[i]))
			return false, nil
		}
	}

	line := newCountLine(s.ID, itemID, itemName, itemSKU, counted, liveQuantity, notes)
	s.Lines = append(s.Lines, *line)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewLineAddedEvent(s, line))

	return true, nil
}

// RemoveLine removes a count line by its ID
func (s *StockCountSession) RemoveLine(lineID uuid.UUID) error {
	if s.Status != SessionStatusInProgress {
		return shared.NewBusinessRuleViolation("Cannot edit a completed or cancelled session")
	}

	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			removed := s.Lines[i]
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			s.AddDomainEvent(NewLineRemovedEvent(s, &removed))
			return nil
		}
	}

	return shared.ErrNotFound
}

// LineFor returns the line for an item, or nil when the item has no line
func (s *StockCountSession) LineFor(itemID uuid.UUID) *CountLine {
	for i := range s.Lines {
		if s.Lines[i].ItemID == itemID {
			return &s.Lines[i]
		}
	}
	return nil
}

// LinesWithVariance returns the lines whose counted quantity differs from
// their snapshot
func (s *StockCountSession) LinesWithVariance() []CountLine {
	result := make([]CountLine, 0)
	for _, line := range s.Lines {
		if line.HasVariance() {
			result = append(result, line)
		}
	}
	return result
}

// Cancel transitions the session to CANCELLED with no inventory side effects
func (s *StockCountSession) Cancel() error {
	if !s.Status.CanTransitionTo(SessionStatusCancelled) {
		return shared.NewBusinessRuleViolation(fmt.Sprintf("Cannot transition from %s to CANCELLED", s.Status))
	}

	s.Status = SessionStatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSessionCancelledEvent(s))

	return nil
}

// Complete transitions the session to COMPLETED. adjustedItems records how
// many lines had their variance applied to the ledger by the caller.
func (s *StockCountSession) Complete(adjustedItems int) error {
	if !s.Status.CanTransitionTo(SessionStatusCompleted) {
		return shared.NewBusinessRuleViolation(fmt.Sprintf("Cannot transition from %s to COMPLETED", s.Status))
	}
	if len(s.Lines) == 0 {
		return shared.NewValidationError("Session must have at least one count line")
	}

	now := time.Now()
	s.Status = SessionStatusCompleted
	s.CompletedAt = &now
	s.AdjustedItems = adjustedItems
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSessionCompletedEvent(s))

	return nil
}

// CanDelete reports whether the session may be deleted. Completed sessions
// are kept to preserve audit history.
func (s *StockCountSession) CanDelete() bool {
	return s.Status != SessionStatusCompleted
}
