package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/utils"
)

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role,omitempty"`
	FullName string    `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken generates a JWT token for the given account
func GenerateToken(a models.Account, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID:   a.ID,
		Email:    a.Email,
		Role:     a.RoleHint,
		FullName: a.NameHint,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.UserID != uuid.Nil {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// Auth validates the bearer token and puts the caller's account in the request context
func Auth(cfg *config.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "not_authenticated", "Authorization header required")
				return
			}

			// Extract token from "Bearer <token>"
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "not_authenticated", "Invalid authorization header format")
				return
			}

			claims, err := ValidateToken(strings.TrimSpace(tokenString), cfg)
			if err != nil {
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "not_authenticated", "Invalid token")
				return
			}

			ctx := utils.WithAccount(r.Context(), models.Account{
				ID:       claims.UserID,
				Email:    claims.Email,
				RoleHint: claims.Role,
				NameHint: claims.FullName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
