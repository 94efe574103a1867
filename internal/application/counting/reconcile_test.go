package counting

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

func (f *serviceFixture) recordLine(t *testing.T, sessionID, itemID uuid.UUID, name string, counted int64) {
	t.Helper()
	_, err := f.service.RecordLine(context.Background(), f.actor(t, identity.RoleOperator), sessionID, RecordLineRequest{
		ItemID:          itemID,
		ItemName:        name,
		CountedQuantity: decimal.NewFromInt(counted),
	})
	require.NoError(t, err)
}

func (f *serviceFixture) ledgerQuantity(t *testing.T, itemID uuid.UUID) decimal.Decimal {
	t.Helper()
	level, err := f.levels.FindByLocationAndItem(context.Background(), f.tenantID, f.locationID, itemID)
	require.NoError(t, err)
	return level.Quantity
}

func TestSessionService_Complete(t *testing.T) {
	t.Run("applies variances and records one adjustment per diverged line", func(t *testing.T) {
		f := newServiceFixture(t)
		matching := uuid.New()
		short := uuid.New()
		over := uuid.New()
		f.levels.seed(t, f.tenantID, f.locationID, matching, 10)
		f.levels.seed(t, f.tenantID, f.locationID, short, 100)
		f.levels.seed(t, f.tenantID, f.locationID, over, 20)

		session := f.createSession(t)
		f.recordLine(t, session.ID, matching, "Match", 10)
		f.recordLine(t, session.ID, short, "Short", 93)
		f.recordLine(t, session.ID, over, "Over", 25)

		resp, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.NoError(t, err)
		assert.Equal(t, counting.SessionStatusCompleted.String(), resp.Session.Status)
		assert.Equal(t, 2, resp.AdjustedItems)
		assert.Empty(t, resp.Warnings)

		assert.True(t, f.ledgerQuantity(t, matching).Equal(decimal.NewFromInt(10)))
		assert.True(t, f.ledgerQuantity(t, short).Equal(decimal.NewFromInt(93)))
		assert.True(t, f.ledgerQuantity(t, over).Equal(decimal.NewFromInt(25)))

		require.Len(t, f.adjustments.records, 2)
		assert.True(t, f.adjustments.records[0].Delta.Equal(decimal.NewFromInt(-7)))
		assert.True(t, f.adjustments.records[1].Delta.Equal(decimal.NewFromInt(5)))
		for _, adj := range f.adjustments.records {
			assert.Equal(t, inventory.AdjustmentReasonStockCount, adj.Reason)
		}

		assert.Contains(t, f.bus.published, counting.EventTypeSessionCompleted)
		assert.Contains(t, f.bus.published, inventory.EventTypeAdjustmentApplied)
	})

	t.Run("creates a ledger row for an item counted at a bare location", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "New Item", 4)

		resp, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.AdjustedItems)
		assert.True(t, f.ledgerQuantity(t, itemID).Equal(decimal.NewFromInt(4)))
	})

	t.Run("preserves the reorder policy on adjusted rows", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		level := f.levels.seed(t, f.tenantID, f.locationID, itemID, 50)
		point := decimal.NewFromInt(10)
		reorderQty := decimal.NewFromInt(40)
		require.NoError(t, level.SetReorderPolicy(&point, &reorderQty))

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 45)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.NoError(t, err)
		updated, err := f.levels.FindByLocationAndItem(context.Background(), f.tenantID, f.locationID, itemID)
		require.NoError(t, err)
		require.NotNil(t, updated.ReorderPoint)
		assert.True(t, updated.ReorderPoint.Equal(point))
		require.NotNil(t, updated.ReorderQuantity)
		assert.True(t, updated.ReorderQuantity.Equal(reorderQty))
	})

	t.Run("publishes a low-stock event when the count lands below the reorder point", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		level := f.levels.seed(t, f.tenantID, f.locationID, itemID, 50)
		point := decimal.NewFromInt(10)
		require.NoError(t, level.SetReorderPolicy(&point, nil))

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 8)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.NoError(t, err)
		assert.Contains(t, f.bus.published, inventory.EventTypeLevelBelowReorderPoint)
	})

	t.Run("blocks when the ledger moved under the count", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		level := f.levels.seed(t, f.tenantID, f.locationID, itemID, 100)

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 95)

		// a sale lands after the count but before the commit
		require.NoError(t, level.SetQuantity(decimal.NewFromInt(90)))

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.Error(t, err)
		var concErr *counting.ConcurrencyError
		require.ErrorAs(t, err, &concErr)
		require.Len(t, concErr.Changes, 1)
		assert.Equal(t, itemID, concErr.Changes[0].ItemID)
		assert.True(t, concErr.Changes[0].SnapshotQuantity.Equal(decimal.NewFromInt(100)))
		assert.True(t, concErr.Changes[0].LiveQuantity.Equal(decimal.NewFromInt(90)))

		// nothing was written
		assert.True(t, f.ledgerQuantity(t, itemID).Equal(decimal.NewFromInt(90)))
		assert.Empty(t, f.adjustments.records)

		stored, err := f.sessions.FindByIDForTenant(context.Background(), f.tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, counting.SessionStatusInProgress, stored.Status)
	})

	t.Run("manager override proceeds with warnings", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		level := f.levels.seed(t, f.tenantID, f.locationID, itemID, 100)

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 95)
		require.NoError(t, level.SetQuantity(decimal.NewFromInt(90)))

		resp, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleManager), session.ID, CompleteSessionRequest{
			ApplyAdjustments: true,
			AdminOverride:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, counting.SessionStatusCompleted.String(), resp.Session.Status)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "changed from 100 to 90")
		assert.True(t, f.ledgerQuantity(t, itemID).Equal(decimal.NewFromInt(95)))
	})

	t.Run("operators cannot override", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		f.levels.seed(t, f.tenantID, f.locationID, itemID, 100)

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 95)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{
			ApplyAdjustments: true,
			AdminOverride:    true,
		})

		require.Error(t, err)
		assert.True(t, shared.IsForbidden(err))
	})

	t.Run("completing without adjustments leaves the ledger alone", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		level := f.levels.seed(t, f.tenantID, f.locationID, itemID, 100)

		session := f.createSession(t)
		f.recordLine(t, session.ID, itemID, "Widget", 95)
		require.NoError(t, level.SetQuantity(decimal.NewFromInt(90)))

		resp, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: false})

		require.NoError(t, err)
		assert.Equal(t, counting.SessionStatusCompleted.String(), resp.Session.Status)
		assert.Equal(t, 0, resp.AdjustedItems)
		assert.Empty(t, resp.Warnings)
		assert.True(t, f.ledgerQuantity(t, itemID).Equal(decimal.NewFromInt(90)))
		assert.Empty(t, f.adjustments.records)
	})

	t.Run("fails with no lines", func(t *testing.T) {
		f := newServiceFixture(t)
		session := f.createSession(t)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("fails on an already completed session", func(t *testing.T) {
		f := newServiceFixture(t)
		session := f.createSession(t)
		f.recordLine(t, session.ID, uuid.New(), "Widget", 5)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})
		require.NoError(t, err)

		_, err = f.service.Complete(context.Background(), f.actor(t, identity.RoleOperator), session.ID, CompleteSessionRequest{ApplyAdjustments: true})

		require.Error(t, err)
		assert.True(t, shared.IsBusinessRule(err))
	})

	t.Run("forbids viewers", func(t *testing.T) {
		f := newServiceFixture(t)
		session := f.createSession(t)

		_, err := f.service.Complete(context.Background(), f.actor(t, identity.RoleViewer), session.ID, CompleteSessionRequest{})

		require.Error(t, err)
		assert.True(t, shared.IsForbidden(err))
	})
}
