package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"BOOKING_BACK-END/internal/store"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(pgx.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", pgx.ErrNoRows)), store.ErrNotFound)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "profiles_pkey"}
	err := translate(fmt.Errorf("insert: %w", dup))
	assert.ErrorIs(t, err, store.ErrUniquenessConflict)
	assert.Contains(t, err.Error(), "profiles_pkey")

	other := &pgconn.PgError{Code: "23503"}
	assert.False(t, errors.Is(translate(other), store.ErrUniquenessConflict))
	assert.ErrorIs(t, translate(other), other)
}
