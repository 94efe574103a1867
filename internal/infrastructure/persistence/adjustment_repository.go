package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// GormAdjustmentRepository implements inventory.AdjustmentRepository using
// GORM. Adjustment records are append-only.
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create appends a new adjustment record
func (r *GormAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// FindByItem lists adjustments for an item at a location, newest first
func (r *GormAdjustmentRepository) FindByItem(ctx context.Context, tenantID, locationID, itemID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	filter.Normalize()

	var adjustments []inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND location_id = ? AND item_id = ?", tenantID, locationID, itemID).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindForTenant lists adjustments for a tenant, newest first
func (r *GormAdjustmentRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, error) {
	filter.Normalize()

	var adjustments []inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// CountForTenant counts adjustments for a tenant
func (r *GormAdjustmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
