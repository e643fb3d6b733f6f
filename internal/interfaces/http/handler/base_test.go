package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/saurabhwebdev/tailtally-sub001/internal/domain/shared"
	"github.com/saurabhwebdev/tailtally-sub001/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_StatusMapping(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
		{"invalid state", shared.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
		{"overpayment", shared.NewDomainError("OVERPAYMENT", "Payment exceeds due balance"), http.StatusUnprocessableEntity, "OVERPAYMENT"},
		{"duplicate sku", shared.NewDomainError("DUPLICATE_SKU", "SKU already exists"), http.StatusConflict, "DUPLICATE_SKU"},
		{"validation", shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1"), http.StatusBadRequest, "INVALID_QUANTITY"},
		{"bad credentials", shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestHandleError_WrappedDomainError(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	wrapped := errors.Join(errors.New("stock deduction failed"), shared.ErrInsufficientStock)
	h.HandleError(c, wrapped)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
}

func TestParseIDParam(t *testing.T) {
	t.Run("rejects malformed id", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

		_, ok := parseIDParam(c)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("accepts valid uuid", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Params = gin.Params{{Key: "id", Value: "2b1f1dc3-7c85-4f1a-9f55-96cbb2a9d9a1"}}

		id, ok := parseIDParam(c)

		assert.True(t, ok)
		assert.Equal(t, "2b1f1dc3-7c85-4f1a-9f55-96cbb2a9d9a1", id.String())
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestSuccessEnvelope(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t)

	h.SuccessWithMeta(c, []string{"a", "b"}, 42, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(42), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
