package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktally/backend/internal/domain/counting"
	"github.com/stocktally/backend/internal/domain/shared"
	"github.com/stocktally/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handleErrorStatus(t *testing.T, err error) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var h BaseHandler
	h.HandleError(c, err)

	var body dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleError_DomainErrorStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation maps to 400", shared.NewValidationError("bad input"), http.StatusBadRequest, shared.CodeValidation},
		{"forbidden maps to 403", shared.NewForbiddenError("no access"), http.StatusForbidden, shared.CodeForbidden},
		{"not found maps to 404", shared.ErrNotFound, http.StatusNotFound, shared.CodeNotFound},
		{"business rule maps to 422", shared.NewBusinessRuleViolation("rule broken"), http.StatusUnprocessableEntity, shared.CodeBusinessRule},
		{"unknown errors map to 500", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleErrorStatus(t, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_ConcurrencyConflict(t *testing.T) {
	itemID := uuid.New()
	err := &counting.ConcurrencyError{
		Changes: []counting.InventoryChange{{
			ItemID:           itemID,
			ItemName:         "Widget",
			SnapshotQuantity: decimal.NewFromInt(100),
			LiveQuantity:     decimal.NewFromInt(90),
			Difference:       decimal.NewFromInt(-10),
		}},
	}

	rec, body := handleErrorStatus(t, err)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, shared.CodeConcurrencyConflict, body.Error.Code)
	require.Len(t, body.Error.Changes, 1)
	assert.Equal(t, itemID, body.Error.Changes[0].ItemID)
	assert.True(t, body.Error.Changes[0].Difference.Equal(decimal.NewFromInt(-10)))
}
