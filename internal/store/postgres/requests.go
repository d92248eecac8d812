package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

const requestColumns = `id, client_id, provider_id, requested_for, note, status, created_at`

func scanRequest(row pgx.Row) (models.ServiceRequest, error) {
	var r models.ServiceRequest
	err := row.Scan(&r.ID, &r.ClientID, &r.ProviderID, &r.RequestedFor, &r.Note, &r.Status, &r.CreatedAt)
	return r, err
}

func (s *Store) InsertRequest(ctx context.Context, r models.ServiceRequest) (models.ServiceRequest, error) {
	const q = `
		insert into public.service_requests (id, client_id, provider_id, requested_for, note, status, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
		returning ` + requestColumns

	out, err := scanRequest(s.pool.QueryRow(ctx, q,
		r.ID, r.ClientID, r.ProviderID, r.RequestedFor, r.Note, string(r.Status), r.CreatedAt,
	))
	if err != nil {
		return models.ServiceRequest{}, fmt.Errorf("insert request: %w", translate(err))
	}
	return out, nil
}

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (models.ServiceRequest, error) {
	const q = `select ` + requestColumns + ` from public.service_requests where id = $1`

	r, err := scanRequest(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return models.ServiceRequest{}, fmt.Errorf("get request: %w", translate(err))
	}
	return r, nil
}

// ListRequestsForAccount breaks created_at ties by the bigserial seq column.
func (s *Store) ListRequestsForAccount(ctx context.Context, accountID uuid.UUID) ([]models.ServiceRequest, error) {
	const q = `
		select ` + requestColumns + `
		from public.service_requests
		where client_id = $1 or provider_id = $1
		order by created_at desc, seq asc`

	rows, err := s.pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	out := make([]models.ServiceRequest, 0)
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateRequestStatus(ctx context.Context, id uuid.UUID, from, next models.Status) (models.ServiceRequest, error) {
	const q = `
		update public.service_requests set status = $3
		where id = $1 and status = $2
		returning ` + requestColumns

	r, err := scanRequest(s.pool.QueryRow(ctx, q, id, string(from), string(next)))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return models.ServiceRequest{}, fmt.Errorf("update request status: %w", err)
	}

	// no row matched: either the request is gone or its status moved
	if _, gerr := s.GetRequest(ctx, id); gerr != nil {
		return models.ServiceRequest{}, gerr
	}
	return models.ServiceRequest{}, store.ErrStaleStatus
}
