package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// GormLevelRepository implements inventory.LevelRepository using GORM.
// InventoryLevel is persisted directly, its fields carry the gorm tags.
type GormLevelRepository struct {
	db *gorm.DB
}

// NewGormLevelRepository creates a new GormLevelRepository
func NewGormLevelRepository(db *gorm.DB) *GormLevelRepository {
	return &GormLevelRepository{db: db}
}

// FindByLocationAndItem finds the ledger row for a location-item combination
func (r *GormLevelRepository) FindByLocationAndItem(ctx context.Context, tenantID, locationID, itemID uuid.UUID) (*inventory.InventoryLevel, error) {
	var level inventory.InventoryLevel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ? AND item_id = ?", tenantID, locationID, itemID).
		First(&level).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &level, nil
}

// GetOrCreate returns the existing ledger row or a new zero-quantity one
func (r *GormLevelRepository) GetOrCreate(ctx context.Context, tenantID, locationID, itemID uuid.UUID) (*inventory.InventoryLevel, error) {
	level, err := r.FindByLocationAndItem(ctx, tenantID, locationID, itemID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	level, err = inventory.NewInventoryLevel(tenantID, locationID, itemID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

// FindByLocation lists ledger rows at a location
func (r *GormLevelRepository) FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]inventory.InventoryLevel, error) {
	filter.Normalize()

	var levels []inventory.InventoryLevel
	query := r.db.WithContext(ctx).Model(&inventory.InventoryLevel{}).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID)

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(item_name) LIKE ?", pattern)
	}

	orderBy := "item_name"
	if filter.OrderBy == "quantity" || filter.OrderBy == "updated_at" {
		orderBy = filter.OrderBy
	}
	orderDir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		orderDir = "DESC"
	}

	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// CountByLocation counts ledger rows at a location
func (r *GormLevelRepository) CountByLocation(ctx context.Context, tenantID, locationID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryLevel{}).
		Where("tenant_id = ? AND location_id = ?", tenantID, locationID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a ledger row
func (r *GormLevelRepository) Save(ctx context.Context, level *inventory.InventoryLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

var _ inventory.LevelRepository = (*GormLevelRepository)(nil)
