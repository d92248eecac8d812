package utils

import (
	"context"

	"BOOKING_BACK-END/internal/models"
)

type accountKey struct{}

// WithAccount stores the authenticated account on ctx.
func WithAccount(ctx context.Context, a models.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, a)
}

// AccountFromContext returns the account set by the auth middleware.
func AccountFromContext(ctx context.Context) (models.Account, bool) {
	a, ok := ctx.Value(accountKey{}).(models.Account)
	return a, ok
}
