package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"blood-donation-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		lastPage int
	}{
		{"empty result still has one page", 1, 10, 0, 1},
		{"exact multiple", 2, 10, 30, 3},
		{"partial last page", 1, 10, 31, 4},
		{"single row", 1, 20, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.lastPage, p.LastPage)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperror.NotFound("Schedule not found"), http.StatusNotFound, "Schedule not found"},
		{"conflict", apperror.Conflict("Donor is not eligible"), http.StatusBadRequest, "Donor is not eligible"},
		{"duplicate", apperror.Duplicate("Email already registered"), http.StatusConflict, "Email already registered"},
		{"forbidden", apperror.Forbidden("Not your schedule"), http.StatusForbidden, "Not your schedule"},
		{"wrapped", fmt.Errorf("finalize: %w", apperror.Unauthorized("Invalid token")), http.StatusUnauthorized, "Invalid token"},
		{"unclassified hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, "Failed to finalize donation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			FromError(rec, tt.err, "Failed to finalize donation")

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	ValidationError(rec, map[string]string{"email": "email is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"message":"Validation failed","error":{"email":"email is required"}}`, rec.Body.String())
}
