package persistence

import (
	"context"

	"gorm.io/gorm"

	appcounting "github.com/stocktally/backend/internal/application/counting"
	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/inventory"
)

// GormTransactionScope implements the application TransactionScope using
// GORM transactions. Every repository handed to the callback runs on the
// same transaction, so a reconciliation commit is all-or-nothing.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appcounting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides repositories bound to one transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Sessions() counting.SessionRepository {
	return NewGormSessionRepository(r.tx)
}

func (r *gormTransactionalRepositories) Levels() inventory.LevelRepository {
	return NewGormLevelRepository(r.tx)
}

func (r *gormTransactionalRepositories) Adjustments() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

var _ appcounting.TransactionScope = (*GormTransactionScope)(nil)
var _ appcounting.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
