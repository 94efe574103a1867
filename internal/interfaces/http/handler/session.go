package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcounting "github.com/stocktally/backend/internal/application/counting"
	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/interfaces/http/dto"
)

// SessionHandler exposes stock-count session endpoints
type SessionHandler struct {
	BaseHandler
	service *appcounting.SessionService
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(service *appcounting.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Create opens a new count session
// POST /api/v1/count-sessions
func (h *SessionHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req appcounting.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// Get retrieves a session with its lines
// GET /api/v1/count-sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// List retrieves a paginated list of sessions
// GET /api/v1/count-sessions
func (h *SessionHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	listReq := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	filter := appcounting.SessionListFilter{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Search:   listReq.Search,
	}

	if raw := c.Query("location_id"); raw != "" {
		locationID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid location_id")
			return
		}
		filter.LocationID = &locationID
	}

	if raw := c.Query("status"); raw != "" {
		status := counting.SessionStatus(strings.ToUpper(raw))
		if !status.IsValid() {
			h.BadRequest(c, "Invalid status")
			return
		}
		filter.Status = &status
	}

	sessions, total, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, sessions, total, listReq.Page, listReq.PageSize)
}

// RecordLine records a counted quantity for an item
// PUT /api/v1/count-sessions/:id/lines
func (h *SessionHandler) RecordLine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req appcounting.RecordLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.RecordLine(c.Request.Context(), actor, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// RemoveLine removes a count line from a session
// DELETE /api/v1/count-sessions/:id/lines/:lineId
func (h *SessionHandler) RemoveLine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID")
		return
	}

	session, err := h.service.RemoveLine(c.Request.Context(), actor, sessionID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Complete reconciles a session against the live ledger
// POST /api/v1/count-sessions/:id/complete
func (h *SessionHandler) Complete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	var req appcounting.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Complete(c.Request.Context(), actor, sessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel abandons a session without touching the ledger
// POST /api/v1/count-sessions/:id/cancel
func (h *SessionHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	session, err := h.service.Cancel(c.Request.Context(), actor, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Delete removes a non-completed session and its lines
// DELETE /api/v1/count-sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
