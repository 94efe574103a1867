package counting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktally/backend/internal/domain/counting"
)

// CreateSessionRequest is the request to open a new count session
type CreateSessionRequest struct {
	LocationID   uuid.UUID `json:"location_id" binding:"required"`
	LocationName string    `json:"location_name"`
	Notes        string    `json:"notes"`
}

// RecordLineRequest is the request to record a counted quantity for an item
type RecordLineRequest struct {
	ItemID          uuid.UUID       `json:"item_id" binding:"required"`
	ItemName        string          `json:"item_name"`
	ItemSKU         string          `json:"item_sku"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
	Notes           string          `json:"notes"`
}

// CompleteSessionRequest controls how a session is reconciled
type CompleteSessionRequest struct {
	ApplyAdjustments bool `json:"apply_adjustments"`
	AdminOverride    bool `json:"admin_override"`
}

// SessionListFilter narrows session listings
type SessionListFilter struct {
	Page       int
	PageSize   int
	OrderBy    string
	OrderDir   string
	Search     string
	LocationID *uuid.UUID
	Status     *counting.SessionStatus
}

// CountLineResponse is one count line in a session response
type CountLineResponse struct {
	ID               uuid.UUID       `json:"id"`
	ItemID           uuid.UUID       `json:"item_id"`
	ItemName         string          `json:"item_name"`
	ItemSKU          string          `json:"item_sku"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	SnapshotQuantity decimal.Decimal `json:"snapshot_quantity"`
	Variance         decimal.Decimal `json:"variance"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SessionResponse is the full representation of a count session
type SessionResponse struct {
	ID            uuid.UUID           `json:"id"`
	LocationID    uuid.UUID           `json:"location_id"`
	LocationName  string              `json:"location_name"`
	Status        string              `json:"status"`
	Notes         string              `json:"notes,omitempty"`
	CreatedByID   uuid.UUID           `json:"created_by_id"`
	CreatedByName string              `json:"created_by_name"`
	CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	AdjustedItems int                 `json:"adjusted_items"`
	Lines         []CountLineResponse `json:"lines"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// SessionListResponse is the summary representation used in listings
type SessionListResponse struct {
	ID            uuid.UUID  `json:"id"`
	LocationID    uuid.UUID  `json:"location_id"`
	LocationName  string     `json:"location_name"`
	Status        string     `json:"status"`
	CreatedByName string     `json:"created_by_name"`
	LineCount     int        `json:"line_count"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CompleteSessionResponse is the outcome of a reconciliation commit
type CompleteSessionResponse struct {
	Session       SessionResponse `json:"session"`
	AdjustedItems int             `json:"adjusted_items"`
	Warnings      []string        `json:"warnings,omitempty"`
}

// ToCountLineResponse converts a domain count line to a response DTO
func ToCountLineResponse(l *counting.CountLine) CountLineResponse {
	return CountLineResponse{
		ID:               l.ID,
		ItemID:           l.ItemID,
		ItemName:         l.ItemName,
		ItemSKU:          l.ItemSKU,
		CountedQuantity:  l.CountedQuantity,
		SnapshotQuantity: l.SnapshotQuantity,
		Variance:         l.Variance,
		Notes:            l.Notes,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToSessionResponse converts a domain session to a response DTO
func ToSessionResponse(s *counting.StockCountSession) SessionResponse {
	lines := make([]CountLineResponse, 0, len(s.Lines))
	for i := range s.Lines {
		lines = append(lines, ToCountLineResponse(&s.Lines[i]))
	}

	return SessionResponse{
		ID:            s.ID,
		LocationID:    s.LocationID,
		LocationName:  s.LocationName,
		Status:        s.Status.String(),
		Notes:         s.Notes,
		CreatedByID:   s.CreatedByID,
		CreatedByName: s.CreatedByName,
		CompletedAt:   s.CompletedAt,
		AdjustedItems: s.AdjustedItems,
		Lines:         lines,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSessionListResponses converts domain sessions to list DTOs
func ToSessionListResponses(sessions []counting.StockCountSession) []SessionListResponse {
	responses := make([]SessionListResponse, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		responses = append(responses, SessionListResponse{
			ID:            s.ID,
			LocationID:    s.LocationID,
			LocationName:  s.LocationName,
			Status:        s.Status.String(),
			CreatedByName: s.CreatedByName,
			LineCount:     len(s.Lines),
			CompletedAt:   s.CompletedAt,
			CreatedAt:     s.CreatedAt,
		})
	}
	return responses
}
