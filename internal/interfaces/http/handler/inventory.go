package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appinventory "github.com/stocktally/backend/internal/application/inventory"
	"github.com/stocktally/backend/internal/domain/shared"
	"github.com/stocktally/backend/internal/interfaces/http/dto"
)

// InventoryHandler exposes read endpoints over the inventory ledger and
// its adjustment history
type InventoryHandler struct {
	BaseHandler
	service *appinventory.LevelService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appinventory.LevelService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// ListLevels retrieves the ledger rows at a location
// GET /api/v1/locations/:locationId/levels
func (h *InventoryHandler) ListLevels(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	levels, total, err := h.service.ListLevels(c.Request.Context(), actor, locationID, toDomainFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, levels, total, listReq.Page, listReq.PageSize)
}

// GetLevel retrieves one ledger row
// GET /api/v1/locations/:locationId/levels/:itemId
func (h *InventoryHandler) GetLevel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	level, err := h.service.GetLevel(c.Request.Context(), actor, locationID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

// ListItemAdjustments retrieves the adjustment history for one item at a location
// GET /api/v1/locations/:locationId/levels/:itemId/adjustments
func (h *InventoryHandler) ListItemAdjustments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	adjustments, err := h.service.ListItemAdjustments(c.Request.Context(), actor, locationID, itemID, toDomainFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, adjustments)
}

// ListAdjustments retrieves the tenant-wide adjustment history
// GET /api/v1/adjustments
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	adjustments, total, err := h.service.ListAdjustments(c.Request.Context(), actor, toDomainFilter(listReq))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, adjustments, total, listReq.Page, listReq.PageSize)
}

func toDomainFilter(req dto.ListRequest) shared.Filter {
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
}
