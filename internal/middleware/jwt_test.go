package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/utils"
)

var testJWT = &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}

func TestGenerateAndValidate(t *testing.T) {
	a := models.Account{ID: uuid.New(), Email: "ana@example.com", RoleHint: "provider", NameHint: "Ana"}
	token, err := GenerateToken(a, testJWT)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testJWT)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.UserID)
	assert.Equal(t, "provider", claims.Role)
	assert.Equal(t, "Ana", claims.FullName)

	_, err = ValidateToken(token, &config.JWTConfig{Secret: "other"})
	assert.Error(t, err)

	expired, err := GenerateToken(a, &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: -time.Minute})
	require.NoError(t, err)
	_, err = ValidateToken(expired, testJWT)
	assert.Error(t, err)
}

func TestAuth(t *testing.T) {
	a := models.Account{ID: uuid.New(), Email: "ana@example.com"}
	token, err := GenerateToken(a, testJWT)
	require.NoError(t, err)

	var seen models.Account
	h := Auth(testJWT)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = utils.AccountFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
		{"lowercase scheme", "bearer " + token, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.Equal(t, a.ID, seen.ID)
}
