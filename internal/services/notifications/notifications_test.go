package notifications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store/memory"
)

func newService(t *testing.T) *Service {
	return New(zaptest.NewLogger(t), memory.New())
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	user := uuid.New()

	_, err := s.Create(ctx, uuid.Nil, models.NotificationBookingRequested, "t", nil, nil, nil)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = s.Create(ctx, user, "trip_update", "t", nil, nil, nil)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = s.Create(ctx, user, models.NotificationBookingRequested, "   ", nil, nil, nil)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	_, err = s.Create(ctx, user, models.NotificationBookingRequested, strings.Repeat("x", 256), nil, nil, nil)
	assert.ErrorIs(t, err, apperr.InvalidInput)

	n, err := s.Create(ctx, user, models.NotificationBookingRequested, " New ", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", n.Title)
	assert.NotEqual(t, uuid.Nil, n.ID)
}

func TestRequestLifecycleMessages(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	r := models.ServiceRequest{
		ID:           uuid.New(),
		ClientID:     uuid.New(),
		ProviderID:   uuid.New(),
		RequestedFor: time.Date(2030, 5, 1, 14, 0, 0, 0, time.UTC),
		Status:       models.StatusPending,
	}

	require.NoError(t, s.RequestCreated(ctx, r, "Ana"))
	items, unread, err := s.List(ctx, r.ProviderID, models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, unread)
	assert.Equal(t, models.NotificationBookingRequested, items[0].Type)
	assert.Equal(t, "Ana requested a booking for 2030-05-01 14:00 UTC", *items[0].Message)
	assert.Equal(t, r.ID.String(), items[0].Data["request_id"])

	r.Status = models.StatusDone
	require.NoError(t, s.RequestTransitioned(ctx, r, ""))
	items, _, err = s.List(ctx, r.ClientID, models.NotificationFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationBookingCompleted, items[0].Type)
	assert.Equal(t, "Your provider marked your booking as done", *items[0].Message)

	// pending is never a transition target
	r.Status = models.StatusPending
	require.NoError(t, s.RequestTransitioned(ctx, r, "Bo"))
	items, _, err = s.List(ctx, r.ClientID, models.NotificationFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	user := uuid.New()

	n, err := s.Create(ctx, user, models.NotificationBookingAccepted, "Booking accepted", nil, nil, nil)
	require.NoError(t, err)
	_, err = s.Create(ctx, user, models.NotificationBookingRejected, "Booking rejected", nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.MarkRead(ctx, user, n.ID))
	assert.ErrorIs(t, s.MarkRead(ctx, uuid.New(), n.ID), apperr.NotFound)

	items, unread, err := s.List(ctx, user, models.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationBookingRejected, items[0].Type)

	count, err := s.MarkAllRead(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListRejectsUnknownType(t *testing.T) {
	_, _, err := newService(t).List(context.Background(), uuid.New(), models.NotificationFilter{Type: "member_left"})
	assert.ErrorIs(t, err, apperr.InvalidInput)
}
