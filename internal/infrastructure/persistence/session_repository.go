package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/shared"
	"github.com/stocktally/backend/internal/infrastructure/persistence/models"
)

// GormSessionRepository implements counting.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByIDForTenant finds a session with its lines within a tenant
func (r *GormSessionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*counting.StockCountSession, error) {
	var model models.SessionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists sessions for a tenant
func (r *GormSessionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter counting.SessionFilter) ([]counting.StockCountSession, error) {
	var sessionModels []models.SessionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.SessionModel{}).
			Preload("Lines").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&sessionModels).Error; err != nil {
		return nil, err
	}
	sessions := make([]counting.StockCountSession, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = *sessionModels[i].ToDomain()
	}
	return sessions, nil
}

// CountForTenant counts sessions matching the filter
func (r *GormSessionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter counting.SessionFilter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("tenant_id = ?", tenantID)
	query = r.applyConditions(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsInProgress reports whether the location has an open session
func (r *GormSessionRepository) ExistsInProgress(ctx context.Context, tenantID, locationID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SessionModel{}).
		Where("tenant_id = ? AND location_id = ? AND status = ?", tenantID, locationID, counting.SessionStatusInProgress).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveWithLines saves a session and synchronizes its lines in a transaction
func (r *GormSessionRepository) SaveWithLines(ctx context.Context, session *counting.StockCountSession) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.SessionModelFromDomain(session)
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}

		keptLineIDs := make([]uuid.UUID, 0, len(session.Lines))
		for _, line := range session.Lines {
			keptLineIDs = append(keptLineIDs, line.ID)
		}

		cleanup := tx.Where("session_id = ?", session.ID)
		if len(keptLineIDs) > 0 {
			cleanup = cleanup.Where("id NOT IN ?", keptLineIDs)
		}
		if err := cleanup.Delete(&models.CountLineModel{}).Error; err != nil {
			return err
		}

		for i := range session.Lines {
			session.Lines[i].SessionID = session.ID
			lineModel := models.CountLineModelFromDomain(&session.Lines[i])
			if err := tx.Save(lineModel).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteForTenant removes a session and its lines
func (r *GormSessionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.SessionModel
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, id).First(&model).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Where("session_id = ?", id).Delete(&models.CountLineModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model).Error
	})
}

// applyConditions adds the filter's where clauses without pagination
func (r *GormSessionRepository) applyConditions(query *gorm.DB, filter counting.SessionFilter) *gorm.DB {
	if filter.LocationID != nil {
		query = query.Where("location_id = ?", *filter.LocationID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(location_name) LIKE ? OR LOWER(created_by_name) LIKE ?", pattern, pattern)
	}
	return query
}

// applyFilter applies where clauses, pagination and ordering
func (r *GormSessionRepository) applyFilter(query *gorm.DB, filter counting.SessionFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := "created_at"
	if filter.OrderBy != "" {
		// whitelist to prevent SQL injection
		validFields := map[string]bool{
			"status":       true,
			"created_at":   true,
			"updated_at":   true,
			"completed_at": true,
		}
		if validFields[filter.OrderBy] {
			orderBy = filter.OrderBy
		}
	}

	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}

	return query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))
}

var _ counting.SessionRepository = (*GormSessionRepository)(nil)
