package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktally/backend/internal/domain/inventory"
)

// LevelResponse is one ledger row in query responses
type LevelResponse struct {
	ID              uuid.UUID        `json:"id"`
	LocationID      uuid.UUID        `json:"location_id"`
	ItemID          uuid.UUID        `json:"item_id"`
	ItemName        string           `json:"item_name"`
	Quantity        decimal.Decimal  `json:"quantity"`
	ReorderPoint    *decimal.Decimal `json:"reorder_point,omitempty"`
	ReorderQuantity *decimal.Decimal `json:"reorder_quantity,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// AdjustmentResponse is one adjustment record in query responses
type AdjustmentResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	ItemName   string          `json:"item_name"`
	LocationID uuid.UUID       `json:"location_id"`
	Delta      decimal.Decimal `json:"delta"`
	Reason     string          `json:"reason"`
	Note       string          `json:"note,omitempty"`
	ActorName  string          `json:"actor_name"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToLevelResponse converts a ledger row to a response DTO
func ToLevelResponse(l *inventory.InventoryLevel) LevelResponse {
	return LevelResponse{
		ID:              l.ID,
		LocationID:      l.LocationID,
		ItemID:          l.ItemID,
		ItemName:        l.ItemName,
		Quantity:        l.Quantity,
		ReorderPoint:    l.ReorderPoint,
		ReorderQuantity: l.ReorderQuantity,
		UpdatedAt:       l.UpdatedAt,
	}
}

// ToLevelResponses converts ledger rows to response DTOs
func ToLevelResponses(levels []inventory.InventoryLevel) []LevelResponse {
	responses := make([]LevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, ToLevelResponse(&levels[i]))
	}
	return responses
}

// ToAdjustmentResponses converts adjustment records to response DTOs
func ToAdjustmentResponses(adjustments []inventory.StockAdjustment) []AdjustmentResponse {
	responses := make([]AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		responses = append(responses, AdjustmentResponse{
			ID:         a.ID,
			ItemID:     a.ItemID,
			ItemName:   a.ItemName,
			LocationID: a.LocationID,
			Delta:      a.Delta,
			Reason:     a.Reason,
			Note:       a.Note,
			ActorName:  a.ActorName,
			CreatedAt:  a.CreatedAt,
		})
	}
	return responses
}
