package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

const notificationColumns = `id, user_id, type, title, message, data, action_url, read, created_at`

func scanNotification(row pgx.Row) (models.Notification, error) {
	var (
		n    models.Notification
		data []byte
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &data, &n.ActionURL, &n.Read, &n.CreatedAt); err != nil {
		return models.Notification{}, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return models.Notification{}, fmt.Errorf("decode data: %w", err)
		}
	}
	return n, nil
}

func (s *Store) InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	const q = `
		insert into public.notifications (id, user_id, type, title, message, data, action_url)
		values ($1, $2, $3, $4, $5, $6::jsonb, $7)
		returning ` + notificationColumns

	data := "{}"
	if len(n.Data) > 0 {
		b, err := json.Marshal(n.Data)
		if err != nil {
			return models.Notification{}, fmt.Errorf("encode data: %w", err)
		}
		data = string(b)
	}

	out, err := scanNotification(s.pool.QueryRow(ctx, q, n.ID, n.UserID, string(n.Type), n.Title, n.Message, data, n.ActionURL))
	if err != nil {
		return models.Notification{}, fmt.Errorf("insert notification: %w", translate(err))
	}
	return out, nil
}

func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, f models.NotificationFilter) ([]models.Notification, error) {
	var sb strings.Builder
	sb.WriteString(`select ` + notificationColumns + ` from public.notifications where user_id = $1`)
	args := []any{userID}

	if f.UnreadOnly {
		sb.WriteString(` and read = false`)
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		fmt.Fprintf(&sb, ` and type = $%d`, len(args))
	}
	sb.WriteString(` order by created_at desc`)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` limit $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, ` offset $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := make([]models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `update public.notifications set read = true where id = $1 and user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := s.pool.Exec(ctx, `update public.notifications set read = true where user_id = $1 and read = false`, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Store) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `select count(*) from public.notifications where user_id = $1 and read = false`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}
