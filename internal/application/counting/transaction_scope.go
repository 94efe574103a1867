package counting

import (
	"context"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// reconciliation commit touches. All repository operations executed within
// a scope commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Sessions returns the session repository scoped to the current transaction
	Sessions() counting.SessionRepository
	// Levels returns the inventory ledger repository scoped to the current transaction
	Levels() inventory.LevelRepository
	// Adjustments returns the adjustment repository scoped to the current transaction
	Adjustments() inventory.AdjustmentRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing or when transaction support is not
// required.
type NoOpTransactionScope struct {
	sessionRepo    counting.SessionRepository
	levelRepo      inventory.LevelRepository
	adjustmentRepo inventory.AdjustmentRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	sessionRepo counting.SessionRepository,
	levelRepo inventory.LevelRepository,
	adjustmentRepo inventory.AdjustmentRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		sessionRepo:    sessionRepo,
		levelRepo:      levelRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Sessions returns the session repository.
func (s *NoOpTransactionScope) Sessions() counting.SessionRepository {
	return s.sessionRepo
}

// Levels returns the inventory ledger repository.
func (s *NoOpTransactionScope) Levels() inventory.LevelRepository {
	return s.levelRepo
}

// Adjustments returns the adjustment repository.
func (s *NoOpTransactionScope) Adjustments() inventory.AdjustmentRepository {
	return s.adjustmentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
