package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/dto"
	"BOOKING_BACK-END/internal/models"
)

func TestWriteAppError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		label   string
		message string
	}{
		{apperr.New(apperr.KindInvalidTransition, "cannot move request from done to pending"), http.StatusConflict, "invalid_transition", "cannot move request from done to pending"},
		{apperr.New(apperr.KindUnsupportedMediaType, "gif"), http.StatusUnsupportedMediaType, "unsupported_media_type", "gif"},
		{errors.New("pq: connection reset"), http.StatusInternalServerError, "internal", "internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteAppError(rec, tc.err)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, tc.label, body.Error)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestAccountContext(t *testing.T) {
	_, ok := AccountFromContext(context.Background())
	assert.False(t, ok)

	a := models.Account{ID: uuid.New(), Email: "ana@example.com"}
	got, ok := AccountFromContext(WithAccount(context.Background(), a))
	require.True(t, ok)
	assert.Equal(t, a, got)
}
