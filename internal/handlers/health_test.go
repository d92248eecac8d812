package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BOOKING_BACK-END/internal/dto"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name   string
		ping   error
		code   int
		status string
	}{
		{name: "store up", code: http.StatusOK, status: "ready"},
		{name: "store down", ping: errors.New("connection refused"), code: http.StatusServiceUnavailable, status: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(pingFunc(func(context.Context) error { return tt.ping }))

			rec := httptest.NewRecorder()
			h.ReadinessCheck(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.code, rec.Code)
			var resp dto.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}
