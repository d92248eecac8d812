package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"BOOKING_BACK-END/internal/models"
)

func (s *Store) InsertAccount(ctx context.Context, c models.Credentials) (models.Account, error) {
	const q = `
		insert into public.accounts (id, email, password_hash, role_hint, name_hint)
		values ($1, lower($2), $3, $4, $5)
		returning id, email, role_hint, name_hint, created_at`

	var a models.Account
	err := s.pool.QueryRow(ctx, q, c.ID, c.Email, c.PasswordHash, c.RoleHint, c.NameHint).
		Scan(&a.ID, &a.Email, &a.RoleHint, &a.NameHint, &a.CreatedAt)
	if err != nil {
		return models.Account{}, fmt.Errorf("insert account: %w", translate(err))
	}
	return a, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (models.Credentials, error) {
	const q = `
		select id, email, password_hash, role_hint, name_hint, created_at
		from public.accounts where email = lower($1)`

	var c models.Credentials
	err := s.pool.QueryRow(ctx, q, email).
		Scan(&c.ID, &c.Email, &c.PasswordHash, &c.RoleHint, &c.NameHint, &c.CreatedAt)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("get account: %w", translate(err))
	}
	return c, nil
}

func (s *Store) GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error) {
	const q = `select id, email, role_hint, name_hint, created_at from public.accounts where id = $1`

	var a models.Account
	err := s.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Email, &a.RoleHint, &a.NameHint, &a.CreatedAt)
	if err != nil {
		return models.Account{}, fmt.Errorf("get account: %w", translate(err))
	}
	return a, nil
}
