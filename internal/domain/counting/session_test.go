package counting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktally/backend/internal/domain/shared"
)

func createTestSession(t *testing.T) *StockCountSession {
	t.Helper()
	s, err := NewStockCountSession(uuid.New(), uuid.New(), "Main Warehouse", uuid.New(), "Jane Doe", "monthly count")
	require.NoError(t, err)
	s.ClearDomainEvents()
	return s
}

func TestSessionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     SessionStatus
		to       SessionStatus
		expected bool
	}{
		{"in progress to completed", SessionStatusInProgress, SessionStatusCompleted, true},
		{"in progress to cancelled", SessionStatusInProgress, SessionStatusCancelled, true},
		{"completed to cancelled", SessionStatusCompleted, SessionStatusCancelled, false},
		{"completed to in progress", SessionStatusCompleted, SessionStatusInProgress, false},
		{"cancelled to completed", SessionStatusCancelled, SessionStatusCompleted, false},
		{"cancelled to in progress", SessionStatusCancelled, SessionStatusInProgress, false},
		{"in progress to in progress", SessionStatusInProgress, SessionStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewStockCountSession(t *testing.T) {
	tenantID := uuid.New()
	locationID := uuid.New()
	creatorID := uuid.New()

	t.Run("opens session with valid inputs", func(t *testing.T) {
		s, err := NewStockCountSession(tenantID, locationID, "Main Warehouse", creatorID, "Jane Doe", "monthly count")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, s.ID)
		assert.Equal(t, tenantID, s.TenantID)
		assert.Equal(t, locationID, s.LocationID)
		assert.Equal(t, "Main Warehouse", s.LocationName)
		assert.Equal(t, SessionStatusInProgress, s.Status)
		assert.Equal(t, creatorID, s.CreatedByID)
		assert.Equal(t, "Jane Doe", s.CreatedByName)
		assert.Nil(t, s.CompletedAt)
		assert.Len(t, s.Lines, 0)
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("fails with empty location ID", func(t *testing.T) {
		_, err := NewStockCountSession(tenantID, uuid.Nil, "Main Warehouse", creatorID, "Jane", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Location ID cannot be empty")
	})

	t.Run("fails with empty creator ID", func(t *testing.T) {
		_, err := NewStockCountSession(tenantID, locationID, "Main Warehouse", uuid.Nil, "", "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Creator ID cannot be empty")
	})
}

func TestStockCountSession_RecordLine(t *testing.T) {
	itemID := uuid.New()

	t.Run("creates a new line and captures the snapshot", func(t *testing.T) {
		s := createTestSession(t)

		created, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromInt(95), decimal.NewFromInt(100), "")

		require.NoError(t, err)
		assert.True(t, created)
		require.Len(t, s.Lines, 1)
		line := s.Lines[0]
		assert.Equal(t, itemID, line.ItemID)
		assert.Equal(t, "Widget", line.ItemName)
		assert.True(t, line.CountedQuantity.Equal(decimal.NewFromInt(95)))
		assert.True(t, line.SnapshotQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, line.Variance.Equal(decimal.NewFromInt(-5)))
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("re-recording the same item updates the line in place", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromInt(95), decimal.NewFromInt(100), "")
		require.NoError(t, err)

		created, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromInt(97), decimal.NewFromInt(90), "recount")

		require.NoError(t, err)
		assert.False(t, created)
		require.Len(t, s.Lines, 1)
		line := s.Lines[0]
		assert.True(t, line.CountedQuantity.Equal(decimal.NewFromInt(97)))
		assert.True(t, line.SnapshotQuantity.Equal(decimal.NewFromInt(90)), "snapshot should be re-captured on update")
		assert.True(t, line.Variance.Equal(decimal.NewFromInt(7)))
		assert.Equal(t, "recount", line.Notes)
	})

	t.Run("accepts a counted quantity of zero", func(t *testing.T) {
		s := createTestSession(t)

		created, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.Zero, decimal.NewFromInt(10), "")

		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, s.Lines[0].Variance.Equal(decimal.NewFromInt(-10)))
	})

	t.Run("rejects negative counted quantity", func(t *testing.T) {
		s := createTestSession(t)

		_, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromInt(-1), decimal.NewFromInt(10), "")

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("rejects fractional counted quantity", func(t *testing.T) {
		s := createTestSession(t)

		_, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromFloat(2.5), decimal.NewFromInt(10), "")

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "whole number")
	})

	t.Run("rejects empty item ID", func(t *testing.T) {
		s := createTestSession(t)

		_, err := s.RecordLine(uuid.Nil, "Widget", "WID-001", decimal.NewFromInt(1), decimal.Zero, "")

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails on a cancelled session", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.Cancel())

		_, err := s.RecordLine(itemID, "Widget", "WID-001", decimal.NewFromInt(1), decimal.Zero, "")

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})
}

func TestStockCountSession_RemoveLine(t *testing.T) {
	t.Run("removes an existing line", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(5), decimal.NewFromInt(5), "")
		require.NoError(t, err)
		lineID := s.Lines[0].ID

		require.NoError(t, s.RemoveLine(lineID))
		assert.Len(t, s.Lines, 0)
	})

	t.Run("fails for an unknown line ID", func(t *testing.T) {
		s := createTestSession(t)

		err := s.RemoveLine(uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("fails on a completed session", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(5), decimal.NewFromInt(5), "")
		require.NoError(t, err)
		lineID := s.Lines[0].ID
		require.NoError(t, s.Complete(0))

		err = s.RemoveLine(lineID)

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})
}

func TestStockCountSession_Complete(t *testing.T) {
	t.Run("completes an in-progress session with lines", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(8), decimal.NewFromInt(10), "")
		require.NoError(t, err)

		require.NoError(t, s.Complete(1))

		assert.Equal(t, SessionStatusCompleted, s.Status)
		assert.NotNil(t, s.CompletedAt)
		assert.Equal(t, 1, s.AdjustedItems)
	})

	t.Run("fails with no lines", func(t *testing.T) {
		s := createTestSession(t)

		err := s.Complete(0)

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "at least one count line")
	})

	t.Run("fails when already completed", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(8), decimal.NewFromInt(10), "")
		require.NoError(t, err)
		require.NoError(t, s.Complete(0))

		err = s.Complete(0)

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
		assert.Contains(t, err.Error(), "COMPLETED")
	})

	t.Run("fails when cancelled", func(t *testing.T) {
		s := createTestSession(t)
		require.NoError(t, s.Cancel())

		err := s.Complete(0)

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})
}

func TestStockCountSession_Cancel(t *testing.T) {
	t.Run("cancels an in-progress session without lines", func(t *testing.T) {
		s := createTestSession(t)

		require.NoError(t, s.Cancel())

		assert.Equal(t, SessionStatusCancelled, s.Status)
	})

	t.Run("fails on a completed session", func(t *testing.T) {
		s := createTestSession(t)
		_, err := s.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(8), decimal.NewFromInt(10), "")
		require.NoError(t, err)
		require.NoError(t, s.Complete(0))

		err = s.Cancel()

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})
}

func TestStockCountSession_CanDelete(t *testing.T) {
	s := createTestSession(t)
	assert.True(t, s.CanDelete())

	require.NoError(t, s.Cancel())
	assert.True(t, s.CanDelete())

	s2 := createTestSession(t)
	_, err := s2.RecordLine(uuid.New(), "Widget", "WID-001", decimal.NewFromInt(8), decimal.NewFromInt(10), "")
	require.NoError(t, err)
	require.NoError(t, s2.Complete(0))
	assert.False(t, s2.CanDelete())
}

func TestStockCountSession_LinesWithVariance(t *testing.T) {
	s := createTestSession(t)
	matching := uuid.New()
	short := uuid.New()
	over := uuid.New()

	_, err := s.RecordLine(matching, "Match", "SKU-1", decimal.NewFromInt(10), decimal.NewFromInt(10), "")
	require.NoError(t, err)
	_, err = s.RecordLine(short, "Short", "SKU-2", decimal.NewFromInt(7), decimal.NewFromInt(10), "")
	require.NoError(t, err)
	_, err = s.RecordLine(over, "Over", "SKU-3", decimal.NewFromInt(12), decimal.NewFromInt(10), "")
	require.NoError(t, err)

	varied := s.LinesWithVariance()
	require.Len(t, varied, 2)
	assert.Equal(t, short, varied[0].ItemID)
	assert.Equal(t, over, varied[1].ItemID)
}
