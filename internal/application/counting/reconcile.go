package counting

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// Complete reconciles a session against the live ledger and closes it.
// The whole operation, divergence detection included, runs in one
// transaction so the ledger cannot move between the check and the writes.
//
// When applyAdjustments is true and any line's snapshot no longer matches
// the ledger, the commit is blocked with a ConcurrencyError unless
// adminOverride is set, in which case it proceeds and reports one warning
// per diverged line. Overriding requires the manager role. When
// applyAdjustments is false the session closes without ledger writes and
// divergence carries no consequences.
func (s *SessionService) Complete(ctx context.Context, actor identity.Actor, sessionID uuid.UUID, req CompleteSessionRequest) (*CompleteSessionResponse, error) {
	if err := actor.RequireRole(identity.RoleOperator); err != nil {
		return nil, err
	}
	if req.AdminOverride {
		if err := actor.RequireRole(identity.RoleManager); err != nil {
			return nil, err
		}
	}

	var (
		session  *counting.StockCountSession
		warnings []string
		events   []shared.DomainEvent
	)

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.Sessions().FindByIDForTenant(ctx, actor.TenantID, sessionID)
		if err != nil {
			return err
		}

		if !session.Status.CanTransitionTo(counting.SessionStatusCompleted) {
			return shared.NewBusinessRuleViolation(fmt.Sprintf("Cannot complete a session in %s status", session.Status))
		}
		if len(session.Lines) == 0 {
			return shared.NewValidationError("Session must have at least one count line")
		}

		live, err := s.readLiveQuantities(ctx, repos, session)
		if err != nil {
			return err
		}

		report := counting.DetectChanges(session.Lines, live)
		if req.ApplyAdjustments && report.HasChanges() {
			if !req.AdminOverride {
				return report.Err()
			}
			warnings = report.Warnings()
		}

		adjusted := 0
		if req.ApplyAdjustments {
			adjusted, events, err = s.applyAdjustments(ctx, repos, actor, session)
			if err != nil {
				return err
			}
		}

		if err = session.Complete(adjusted); err != nil {
			return err
		}

		return repos.Sessions().SaveWithLines(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)
	for _, event := range events {
		_ = s.eventBus.Publish(ctx, event)
	}

	return &CompleteSessionResponse{
		Session:       ToSessionResponse(session),
		AdjustedItems: session.AdjustedItems,
		Warnings:      warnings,
	}, nil
}

// readLiveQuantities reads the current ledger quantity for every counted
// item. Missing rows read as zero, mirroring how snapshots are captured.
func (s *SessionService) readLiveQuantities(ctx context.Context, repos TransactionalRepositories, session *counting.StockCountSession) (map[uuid.UUID]decimal.Decimal, error) {
	live := make(map[uuid.UUID]decimal.Decimal, len(session.Lines))
	for _, line := range session.Lines {
		level, err := repos.Levels().FindByLocationAndItem(ctx, session.TenantID, session.LocationID, line.ItemID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				live[line.ItemID] = decimal.Zero
				continue
			}
			return nil, err
		}
		live[line.ItemID] = level.Quantity
	}
	return live, nil
}

// applyAdjustments writes each line's counted quantity to the ledger and
// records one signed adjustment per line with variance. Zero-variance
// lines leave no trace. Reorder policy on touched rows is preserved.
func (s *SessionService) applyAdjustments(ctx context.Context, repos TransactionalRepositories, actor identity.Actor, session *counting.StockCountSession) (int, []shared.DomainEvent, error) {
	for i := range session.Lines {
		line := &session.Lines[i]
		if line.HasVariance() && line.CountedQuantity.IsNegative() {
			return 0, nil, shared.NewBusinessRuleViolation(
				fmt.Sprintf("Applying the count for %s would result in negative inventory", line.ItemName))
		}
	}

	adjusted := 0
	events := make([]shared.DomainEvent, 0)
	note := fmt.Sprintf("Stock count session %s at %s", session.ID, session.LocationName)

	for i := range session.Lines {
		line := &session.Lines[i]
		if !line.HasVariance() {
			continue
		}

		level, err := repos.Levels().GetOrCreate(ctx, session.TenantID, session.LocationID, line.ItemID)
		if err != nil {
			return 0, nil, err
		}
		if level.ItemName == "" {
			level.ItemName = line.ItemName
		}

		if err = level.SetQuantity(line.CountedQuantity); err != nil {
			return 0, nil, err
		}
		if err = repos.Levels().Save(ctx, level); err != nil {
			return 0, nil, err
		}
		events = append(events, level.GetDomainEvents()...)
		level.ClearDomainEvents()

		adjustment, err := inventory.NewStockAdjustment(
			session.TenantID,
			line.ItemID,
			session.LocationID,
			line.ItemName,
			line.Variance,
			inventory.AdjustmentReasonStockCount,
			note,
			actor.UserID,
			actor.Name,
		)
		if err != nil {
			return 0, nil, err
		}
		if err = repos.Adjustments().Create(ctx, adjustment); err != nil {
			return 0, nil, err
		}
		events = append(events, inventory.NewAdjustmentAppliedEvent(adjustment))

		adjusted++
	}

	return adjusted, events, nil
}
