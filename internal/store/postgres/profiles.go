package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"BOOKING_BACK-END/internal/models"
)

const profileColumns = `id, full_name, role, phone_prefix, phone_number, country, city,
	address_line, postal_code, avatar_path, created_at, updated_at`

func scanProfile(row pgx.Row) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID, &p.FullName, &p.Role, &p.PhonePrefix, &p.PhoneNumber, &p.Country, &p.City,
		&p.AddressLine, &p.PostalCode, &p.AvatarPath, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	const q = `select ` + profileColumns + ` from public.profiles where id = $1`

	p, err := scanProfile(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile: %w", translate(err))
	}
	return p, nil
}

func (s *Store) GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error) {
	const q = `select ` + profileColumns + ` from public.profiles where id = any($1)`

	out := make(map[uuid.UUID]models.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	return out, nil
}

func (s *Store) InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	const q = `
		insert into public.profiles
			(id, full_name, role, phone_prefix, phone_number, country, city, address_line, postal_code, avatar_path)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		returning ` + profileColumns

	out, err := scanProfile(s.pool.QueryRow(ctx, q,
		p.ID, p.FullName, string(p.Role), p.PhonePrefix, p.PhoneNumber, p.Country, p.City,
		p.AddressLine, p.PostalCode, p.AvatarPath,
	))
	if err != nil {
		return models.Profile{}, fmt.Errorf("insert profile: %w", translate(err))
	}
	return out, nil
}

// UpdateProfile never writes id, role or created_at.
func (s *Store) UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error) {
	const q = `
		update public.profiles set
			full_name = $2, phone_prefix = $3, phone_number = $4, country = $5, city = $6,
			address_line = $7, postal_code = $8, avatar_path = $9, updated_at = now()
		where id = $1
		returning ` + profileColumns

	out, err := scanProfile(s.pool.QueryRow(ctx, q,
		p.ID, p.FullName, p.PhonePrefix, p.PhoneNumber, p.Country, p.City,
		p.AddressLine, p.PostalCode, p.AvatarPath,
	))
	if err != nil {
		return models.Profile{}, fmt.Errorf("update profile: %w", translate(err))
	}
	return out, nil
}

func (s *Store) ListProfilesByRole(ctx context.Context, role models.Role) ([]models.Profile, error) {
	const q = `select ` + profileColumns + ` from public.profiles where role = $1 order by full_name, id`

	rows, err := s.pool.Query(ctx, q, string(role))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	out := make([]models.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return out, nil
}
