// Package notifications records messages for the counterpart of a booking.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

const (
	maxTitleLen     = 255
	maxMessageLen   = 10000
	maxActionURLLen = 2048
	insertTimeout   = 3 * time.Second
	defaultPageSize = 20
	maxPageSize     = 100
)

type Service struct {
	log  *zap.Logger
	rows store.NotificationRows
}

func New(log *zap.Logger, rows store.NotificationRows) *Service {
	return &Service{log: log, rows: rows}
}

// Create validates and stores one notification for userID.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	nType models.NotificationType,
	title string,
	message *string,
	data map[string]any,
	actionURL *string,
) (models.Notification, error) {
	const op = "services.notifications.Create"

	if userID == uuid.Nil {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, "user_id cannot be nil")
	}
	if !nType.Valid() {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("unknown notification type %q", nType))
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, "notification title is required")
	}
	if len(title) > maxTitleLen {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, "notification title exceeds maximum length of 255 characters")
	}
	if message != nil && len(*message) > maxMessageLen {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, "notification message exceeds maximum length of 10000 characters")
	}
	if actionURL != nil && len(*actionURL) > maxActionURLLen {
		return models.Notification{}, apperr.New(apperr.KindInvalidInput, "action_url exceeds maximum length of 2048 characters")
	}

	insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	n, err := s.rows.InsertNotification(insertCtx, models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      nType,
		Title:     title,
		Message:   message,
		Data:      data,
		ActionURL: actionURL,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return models.Notification{}, fmt.Errorf("%s: timeout: %w", op, err)
		}
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// RequestCreated tells the provider a client asked for them.
func (s *Service) RequestCreated(ctx context.Context, r models.ServiceRequest, clientName string) error {
	msg := fmt.Sprintf("%s requested a booking for %s", nameOr(clientName, "A client"), r.RequestedFor.UTC().Format("2006-01-02 15:04 MST"))
	_, err := s.Create(ctx, r.ProviderID, models.NotificationBookingRequested,
		"New booking request", &msg, requestData(r), actionURL(r))
	return err
}

// RequestTransitioned tells the client the provider moved their request.
func (s *Service) RequestTransitioned(ctx context.Context, r models.ServiceRequest, providerName string) error {
	var (
		nType models.NotificationType
		title string
	)
	switch r.Status {
	case models.StatusAccepted:
		nType, title = models.NotificationBookingAccepted, "Booking accepted"
	case models.StatusRejected:
		nType, title = models.NotificationBookingRejected, "Booking rejected"
	case models.StatusDone:
		nType, title = models.NotificationBookingCompleted, "Booking completed"
	default:
		return nil
	}
	msg := fmt.Sprintf("%s marked your booking as %s", nameOr(providerName, "Your provider"), r.Status)
	_, err := s.Create(ctx, r.ClientID, nType, title, &msg, requestData(r), actionURL(r))
	return err
}

// List returns one page of notifications plus the unread total.
func (s *Service) List(ctx context.Context, userID uuid.UUID, f models.NotificationFilter) ([]models.Notification, int, error) {
	const op = "services.notifications.List"

	if f.Type != "" && !f.Type.Valid() {
		return nil, 0, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("unknown notification type %q", f.Type))
	}
	f = Page(f)

	items, err := s.rows.ListNotifications(ctx, userID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	unread, err := s.rows.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return items, unread, nil
}

// Page clamps the paging window of f to what List serves.
func Page(f models.NotificationFilter) models.NotificationFilter {
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	const op = "services.notifications.MarkRead"

	if err := s.rows.MarkNotificationRead(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.New(apperr.KindNotFound, "notification not found")
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	const op = "services.notifications.MarkAllRead"

	n, err := s.rows.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("notifications marked read", zap.String("op", op), zap.Stringer("user_id", userID), zap.Int64("count", n))
	return n, nil
}

func requestData(r models.ServiceRequest) map[string]any {
	return map[string]any{
		"request_id":    r.ID.String(),
		"status":        string(r.Status),
		"requested_for": r.RequestedFor.UTC().Format(time.RFC3339),
	}
}

func actionURL(r models.ServiceRequest) *string {
	u := "/api/requests/" + r.ID.String()
	return &u
}

func nameOr(name, fallback string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return fallback
}
