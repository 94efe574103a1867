package counting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/domain/shared"
)

// SessionService provides application services for stock-count sessions.
// Reads go straight to the repository; every state change runs inside a
// transaction scope.
type SessionService struct {
	sessionRepo counting.SessionRepository
	scope       TransactionScope
	eventBus    shared.EventBus
}

// NewSessionService creates a new SessionService
func NewSessionService(
	sessionRepo counting.SessionRepository,
	scope TransactionScope,
	eventBus shared.EventBus,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		scope:       scope,
		eventBus:    eventBus,
	}
}

// ===================== Query Methods =====================

// Get retrieves a session with its lines
func (s *SessionService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*SessionResponse, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	response := ToSessionResponse(session)
	return &response, nil
}

// List retrieves a paginated list of sessions, newest first
func (s *SessionService) List(ctx context.Context, actor identity.Actor, filter SessionListFilter) ([]SessionListResponse, int64, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, 0, err
	}

	domainFilter := counting.SessionFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		},
		LocationID: filter.LocationID,
		Status:     filter.Status,
	}

	total, err := s.sessionRepo.CountForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	sessions, err := s.sessionRepo.FindAllForTenant(ctx, actor.TenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSessionListResponses(sessions), total, nil
}

// ===================== Command Methods =====================

// Create opens a new count session for a location. A location can have at
// most one session in progress at a time.
func (s *SessionService) Create(ctx context.Context, actor identity.Actor, req CreateSessionRequest) (*SessionResponse, error) {
	if err := actor.RequireRole(identity.RoleOperator); err != nil {
		return nil, err
	}

	var session *counting.StockCountSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		open, err := repos.Sessions().ExistsInProgress(ctx, actor.TenantID, req.LocationID)
		if err != nil {
			return err
		}
		if open {
			return shared.NewBusinessRuleViolation("Location already has a stock count in progress")
		}

		session, err = counting.NewStockCountSession(actor.TenantID, req.LocationID, req.LocationName, actor.UserID, actor.Name, req.Notes)
		if err != nil {
			return err
		}

		return repos.Sessions().SaveWithLines(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// RecordLine records a counted quantity for an item, reading the live
// ledger quantity as the line's snapshot. A missing ledger row reads as
// zero. Re-recording an item updates its existing line.
func (s *SessionService) RecordLine(ctx context.Context, actor identity.Actor, sessionID uuid.UUID, req RecordLineRequest) (*SessionResponse, error) {
	if err := actor.RequireRole(identity.RoleOperator); err != nil {
		return nil, err
	}

	var session *counting.StockCountSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.Sessions().FindByIDForTenant(ctx, actor.TenantID, sessionID)
		if err != nil {
			return err
		}

		live, err := s.liveQuantity(ctx, repos, session, req.ItemID)
		if err != nil {
			return err
		}

		if _, err = session.RecordLine(req.ItemID, req.ItemName, req.ItemSKU, req.CountedQuantity, live, req.Notes); err != nil {
			return err
		}

		return repos.Sessions().SaveWithLines(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// RemoveLine removes a count line from a session
func (s *SessionService) RemoveLine(ctx context.Context, actor identity.Actor, sessionID, lineID uuid.UUID) (*SessionResponse, error) {
	if err := actor.RequireRole(identity.RoleOperator); err != nil {
		return nil, err
	}

	var session *counting.StockCountSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.Sessions().FindByIDForTenant(ctx, actor.TenantID, sessionID)
		if err != nil {
			return err
		}

		if err = session.RemoveLine(lineID); err != nil {
			return err
		}

		return repos.Sessions().SaveWithLines(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// Cancel abandons a session without touching the ledger
func (s *SessionService) Cancel(ctx context.Context, actor identity.Actor, sessionID uuid.UUID) (*SessionResponse, error) {
	if err := actor.RequireRole(identity.RoleOperator); err != nil {
		return nil, err
	}

	var session *counting.StockCountSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.Sessions().FindByIDForTenant(ctx, actor.TenantID, sessionID)
		if err != nil {
			return err
		}

		if err = session.Cancel(); err != nil {
			return err
		}

		return repos.Sessions().SaveWithLines(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// Delete removes a session and its lines. Completed sessions cannot be
// deleted, they are the audit trail of applied adjustments.
func (s *SessionService) Delete(ctx context.Context, actor identity.Actor, sessionID uuid.UUID) error {
	if err := actor.RequireRole(identity.RoleManager); err != nil {
		return err
	}

	var session *counting.StockCountSession
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		session, err = repos.Sessions().FindByIDForTenant(ctx, actor.TenantID, sessionID)
		if err != nil {
			return err
		}

		if !session.CanDelete() {
			return shared.NewBusinessRuleViolation("Completed sessions cannot be deleted")
		}

		return repos.Sessions().DeleteForTenant(ctx, actor.TenantID, sessionID)
	})
	if err != nil {
		return err
	}

	_ = s.eventBus.Publish(ctx, counting.NewSessionDeletedEvent(session))

	return nil
}

// liveQuantity reads the current ledger quantity for an item at the
// session's location, treating a missing row as zero
func (s *SessionService) liveQuantity(ctx context.Context, repos TransactionalRepositories, session *counting.StockCountSession, itemID uuid.UUID) (decimal.Decimal, error) {
	level, err := repos.Levels().FindByLocationAndItem(ctx, session.TenantID, session.LocationID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return level.Quantity, nil
}

func (s *SessionService) publishEvents(ctx context.Context, session *counting.StockCountSession) {
	for _, event := range session.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	session.ClearDomainEvents()
}
