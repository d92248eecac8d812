package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

func TestInsertProfileConflict(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := uuid.New()

	_, err := s.InsertProfile(ctx, models.Profile{ID: id, FullName: "a", Role: models.RoleClient})
	require.NoError(t, err)

	_, err = s.InsertProfile(ctx, models.Profile{ID: id, FullName: "b", Role: models.RoleProvider})
	assert.ErrorIs(t, err, store.ErrUniquenessConflict)

	got, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a", got.FullName)
}

func TestGetProfilesSkipsMissing(t *testing.T) {
	ctx := context.Background()
	s := New()
	a, b := uuid.New(), uuid.New()
	for _, p := range []models.Profile{
		{ID: a, FullName: "a", Role: models.RoleClient},
		{ID: b, FullName: "b", Role: models.RoleProvider},
	} {
		_, err := s.InsertProfile(ctx, p)
		require.NoError(t, err)
	}

	got, err := s.GetProfiles(ctx, []uuid.UUID{a, uuid.New(), b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[a].FullName)
	assert.Equal(t, "b", got[b].FullName)

	got, err = s.GetProfiles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := uuid.New()
	_, err := s.InsertProfile(ctx, models.Profile{ID: id, FullName: "a", Role: models.RoleClient})
	require.NoError(t, err)

	got, err := s.UpdateProfile(ctx, models.Profile{ID: id, FullName: "b", Role: models.RoleProvider})
	require.NoError(t, err)
	assert.Equal(t, "b", got.FullName)
	assert.Equal(t, models.RoleClient, got.Role)

	_, err = s.UpdateProfile(ctx, models.Profile{ID: uuid.New()})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListRequestsOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()
	client, provider, other := uuid.New(), uuid.New(), uuid.New()
	t0 := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	insert := func(c, p uuid.UUID, at time.Time) uuid.UUID {
		r := models.ServiceRequest{ID: uuid.New(), ClientID: c, ProviderID: p, Status: models.StatusPending, CreatedAt: at}
		_, err := s.InsertRequest(ctx, r)
		require.NoError(t, err)
		return r.ID
	}
	older := insert(client, provider, t0)
	tieA := insert(client, provider, t0.Add(time.Minute))
	tieB := insert(client, provider, t0.Add(time.Minute))
	insert(other, uuid.New(), t0.Add(time.Hour))

	got, err := s.ListRequestsForAccount(ctx, provider)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uuid.UUID{tieA, tieB, older}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
}

func TestUpdateRequestStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	r := models.ServiceRequest{ID: uuid.New(), Status: models.StatusPending}
	_, err := s.InsertRequest(ctx, r)
	require.NoError(t, err)

	got, err := s.UpdateRequestStatus(ctx, r.ID, models.StatusPending, models.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got.Status)

	_, err = s.UpdateRequestStatus(ctx, r.ID, models.StatusPending, models.StatusRejected)
	assert.ErrorIs(t, err, store.ErrStaleStatus)

	_, err = s.UpdateRequestStatus(ctx, uuid.New(), models.StatusPending, models.StatusRejected)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccountEmailUnique(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.InsertAccount(ctx, models.Credentials{Account: models.Account{ID: uuid.New(), Email: "Ana@example.com"}})
	require.NoError(t, err)
	_, err = s.InsertAccount(ctx, models.Credentials{Account: models.Account{ID: uuid.New(), Email: "ana@example.com"}})
	assert.ErrorIs(t, err, store.ErrUniquenessConflict)

	c, err := s.GetAccountByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana@example.com", c.Email)
}

func TestNotifications(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := uuid.New()

	for _, typ := range []models.NotificationType{models.NotificationBookingRequested, models.NotificationBookingAccepted} {
		_, err := s.InsertNotification(ctx, models.Notification{ID: uuid.New(), UserID: user, Type: typ, Title: string(typ)})
		require.NoError(t, err)
	}
	_, err := s.InsertNotification(ctx, models.Notification{ID: uuid.New(), UserID: uuid.New(), Type: models.NotificationBookingCompleted})
	require.NoError(t, err)

	list, err := s.ListNotifications(ctx, user, models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationBookingAccepted, list[0].Type)

	require.NoError(t, s.MarkNotificationRead(ctx, user, list[0].ID))
	unread, err := s.CountUnread(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	n, err := s.MarkAllNotificationsRead(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	assert.ErrorIs(t, s.MarkNotificationRead(ctx, uuid.New(), list[0].ID), store.ErrNotFound)
}
