package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{shared.CodeValidation, http.StatusBadRequest},
		{shared.CodeInvalidInput, http.StatusBadRequest},
		{shared.CodeUnauthorized, http.StatusUnauthorized},
		{shared.CodeInvalidCredential, http.StatusUnauthorized},
		{shared.CodeTokenExpired, http.StatusUnauthorized},
		{shared.CodeForbidden, http.StatusForbidden},
		{shared.CodeNotFound, http.StatusNotFound},
		{shared.CodeConflict, http.StatusConflict},
		{shared.CodeAlreadyExists, http.StatusConflict},
		{shared.CodeInvalidState, http.StatusConflict},
		{shared.CodeInsufficientStock, http.StatusConflict},
		{shared.CodeNoOpenPeriod, http.StatusConflict},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeTooLarge, http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponse_Envelope(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse(shared.CodeNotFound, "Sale not found"))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "Sale not found", decoded["message"])
	assert.Equal(t, map[string]any{"code": "NOT_FOUND", "message": "Sale not found"}, decoded["error"])
	assert.NotContains(t, decoded, "data")
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "quantity", Message: "Must be greater than 0"},
	})

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page, size int
		wantPages  int
	}{
		{"exact pages", 40, 1, 20, 2},
		{"partial last page", 41, 3, 20, 3},
		{"empty", 0, 1, 20, 0},
		{"unpaginated", 7, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]string{}, tt.total, tt.page, tt.size)
			assert.True(t, resp.Success)
			require.NotNil(t, resp.Meta)
			assert.Equal(t, tt.total, resp.Meta.Total)
			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
		})
	}
}

func TestPagination_Normalize(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, PageSize: 20}, Pagination{}.Normalize())
	assert.Equal(t, Pagination{Page: 3, PageSize: 50}, Pagination{Page: 3, PageSize: 50}.Normalize())
}
