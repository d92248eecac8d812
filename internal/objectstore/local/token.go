package local

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const readSubject = "avatar_read"

var ErrInvalidToken = errors.New("objectstore/local: invalid read token")

// ReadTokenClaims grants read access to a single object key
type ReadTokenClaims struct {
	Path string `json:"path"`
	jwt.RegisteredClaims
}

// GenerateReadToken signs a token for key that expires after ttl
func GenerateReadToken(key string, ttl time.Duration, secret []byte, now time.Time) (string, error) {
	claims := &ReadTokenClaims{
		Path: key,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "booking",
			Subject:   readSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateReadToken checks signature, expiry and subject
func ValidateReadToken(tokenString string, secret []byte) (*ReadTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ReadTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*ReadTokenClaims)
	if !ok || !token.Valid || claims.Subject != readSubject || claims.Path == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
