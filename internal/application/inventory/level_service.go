package inventory

import (
	"context"

	"github.com/google/uuid"

	"github.com/stocktally/backend/internal/domain/identity"
	"github.com/stocktally/backend/internal/domain/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
)

// LevelService provides read access to the inventory ledger and its
// adjustment history
type LevelService struct {
	levelRepo      inventory.LevelRepository
	adjustmentRepo inventory.AdjustmentRepository
}

// NewLevelService creates a new LevelService
func NewLevelService(levelRepo inventory.LevelRepository, adjustmentRepo inventory.AdjustmentRepository) *LevelService {
	return &LevelService{
		levelRepo:      levelRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// GetLevel retrieves one ledger row
func (s *LevelService) GetLevel(ctx context.Context, actor identity.Actor, locationID, itemID uuid.UUID) (*LevelResponse, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, err
	}

	level, err := s.levelRepo.FindByLocationAndItem(ctx, actor.TenantID, locationID, itemID)
	if err != nil {
		return nil, err
	}

	response := ToLevelResponse(level)
	return &response, nil
}

// ListLevels retrieves a paginated list of ledger rows at a location
func (s *LevelService) ListLevels(ctx context.Context, actor identity.Actor, locationID uuid.UUID, filter shared.Filter) ([]LevelResponse, int64, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, 0, err
	}

	total, err := s.levelRepo.CountByLocation(ctx, actor.TenantID, locationID)
	if err != nil {
		return nil, 0, err
	}

	levels, err := s.levelRepo.FindByLocation(ctx, actor.TenantID, locationID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToLevelResponses(levels), total, nil
}

// ListAdjustments retrieves the adjustment history for a tenant
func (s *LevelService) ListAdjustments(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]AdjustmentResponse, int64, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, 0, err
	}

	total, err := s.adjustmentRepo.CountForTenant(ctx, actor.TenantID)
	if err != nil {
		return nil, 0, err
	}

	adjustments, err := s.adjustmentRepo.FindForTenant(ctx, actor.TenantID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToAdjustmentResponses(adjustments), total, nil
}

// ListItemAdjustments retrieves the adjustment history for one item at a location
func (s *LevelService) ListItemAdjustments(ctx context.Context, actor identity.Actor, locationID, itemID uuid.UUID, filter shared.Filter) ([]AdjustmentResponse, error) {
	if err := actor.RequireRole(identity.RoleViewer); err != nil {
		return nil, err
	}

	adjustments, err := s.adjustmentRepo.FindByItem(ctx, actor.TenantID, locationID, itemID, filter)
	if err != nil {
		return nil, err
	}

	return ToAdjustmentResponses(adjustments), nil
}
