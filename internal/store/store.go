// Package store declares the row-store contract booking services depend on.
// Implementations translate backend failures into the sentinels below.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"BOOKING_BACK-END/internal/models"
)

var (
	ErrNotFound           = errors.New("store: record not found")
	ErrUniquenessConflict = errors.New("store: uniqueness conflict")
	// ErrStaleStatus is returned when a compare-and-set status update finds a different status.
	ErrStaleStatus = errors.New("store: status changed concurrently")
)

type ProfileRows interface {
	GetProfile(ctx context.Context, id uuid.UUID) (models.Profile, error)
	// GetProfiles returns the rows found among ids, keyed by id; missing ids are absent.
	GetProfiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error)
	// InsertProfile fails with ErrUniquenessConflict when a row with the same id exists.
	InsertProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	// UpdateProfile overwrites the editable columns of an existing row.
	UpdateProfile(ctx context.Context, p models.Profile) (models.Profile, error)
	ListProfilesByRole(ctx context.Context, role models.Role) ([]models.Profile, error)
}

type RequestRows interface {
	InsertRequest(ctx context.Context, r models.ServiceRequest) (models.ServiceRequest, error)
	GetRequest(ctx context.Context, id uuid.UUID) (models.ServiceRequest, error)
	// ListRequestsForAccount returns rows where the account is client or provider,
	// newest first with ties in insertion order.
	ListRequestsForAccount(ctx context.Context, accountID uuid.UUID) ([]models.ServiceRequest, error)
	// UpdateRequestStatus sets status to next only if it is currently from.
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, from, next models.Status) (models.ServiceRequest, error)
}

type AccountRows interface {
	InsertAccount(ctx context.Context, c models.Credentials) (models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (models.Credentials, error)
	GetAccount(ctx context.Context, id uuid.UUID) (models.Account, error)
}

type NotificationRows interface {
	InsertNotification(ctx context.Context, n models.Notification) (models.Notification, error)
	ListNotifications(ctx context.Context, userID uuid.UUID, f models.NotificationFilter) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// Store bundles every row family plus a liveness check.
type Store interface {
	ProfileRows
	RequestRows
	AccountRows
	NotificationRows
	Ping(ctx context.Context) error
	Close()
}
