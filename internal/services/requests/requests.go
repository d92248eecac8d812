// Package requests runs the booking request lifecycle: creation by a client,
// visibility to both parties and forward-only transitions by the provider.
package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
	"BOOKING_BACK-END/internal/utils"
)

const maxNoteLen = 2000

// Notifier is told about lifecycle events. Its failures never fail the operation.
type Notifier interface {
	RequestCreated(ctx context.Context, r models.ServiceRequest, clientName string) error
	RequestTransitioned(ctx context.Context, r models.ServiceRequest, providerName string) error
}

type Service struct {
	log      *zap.Logger
	requests store.RequestRows
	profiles store.ProfileRows
	notifier Notifier
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(log *zap.Logger, requests store.RequestRows, profiles store.ProfileRows, notifier Notifier, m *metrics.Metrics) *Service {
	return &Service{
		log:      log,
		requests: requests,
		profiles: profiles,
		notifier: notifier,
		metrics:  m,
		now:      time.Now,
	}
}

// Create books providerID on behalf of clientID.
func (s *Service) Create(ctx context.Context, clientID, providerID uuid.UUID, requestedFor string, note *string) (models.ServiceRequest, error) {
	const op = "services.requests.Create"

	log := s.log.With(
		zap.String("op", op),
		zap.Stringer("client_id", clientID),
		zap.Stringer("provider_id", providerID),
	)

	r, client, err := s.prepare(ctx, clientID, providerID, requestedFor, note)
	if err != nil {
		s.metrics.RequestsCreated.WithLabelValues(outcome(err)).Inc()
		return models.ServiceRequest{}, err
	}

	created, err := s.requests.InsertRequest(ctx, r)
	if err != nil {
		log.Error("failed to insert request", zap.Error(err))
		s.metrics.RequestsCreated.WithLabelValues("error").Inc()
		return models.ServiceRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.RequestsCreated.WithLabelValues("ok").Inc()
	log.Info("request created", zap.Stringer("request_id", created.ID))

	if s.notifier != nil {
		if err := s.notifier.RequestCreated(ctx, created, client.FullName); err != nil {
			log.Warn("failed to notify provider", zap.Stringer("request_id", created.ID), zap.Error(err))
		}
	}
	return created, nil
}

// prepare validates a creation and returns the row to insert plus the client's profile.
func (s *Service) prepare(ctx context.Context, clientID, providerID uuid.UUID, requestedFor string, note *string) (models.ServiceRequest, models.Profile, error) {
	if clientID == providerID {
		return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindInvalidInput, "you cannot book yourself")
	}

	provider, err := s.profiles.GetProfile(ctx, providerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindInvalidInput, "provider not found")
		}
		return models.ServiceRequest{}, models.Profile{}, fmt.Errorf("get provider: %w", err)
	}
	if provider.Role != models.RoleProvider {
		return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindInvalidInput, "selected account is not a provider")
	}

	client, err := s.profiles.GetProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindUnauthorized, "only clients can create requests")
		}
		return models.ServiceRequest{}, models.Profile{}, fmt.Errorf("get client: %w", err)
	}
	if client.Role != models.RoleClient {
		return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindUnauthorized, "only clients can create requests")
	}

	now := s.now().UTC()
	when, granularity, err := utils.ParseInstant(requestedFor)
	if err != nil {
		return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindInvalidInput, "requested_for "+err.Error())
	}
	if !utils.NotBefore(when, now, granularity) {
		return models.ServiceRequest{}, models.Profile{}, apperr.New(apperr.KindInvalidInput, "requested_for must not be in the past")
	}

	cleanNote, err := normalizeNote(note)
	if err != nil {
		return models.ServiceRequest{}, models.Profile{}, err
	}

	return models.ServiceRequest{
		ID:           uuid.New(),
		ClientID:     clientID,
		ProviderID:   providerID,
		RequestedFor: when,
		Note:         cleanNote,
		Status:       models.StatusPending,
		CreatedAt:    now,
	}, client, nil
}

func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	n := strings.TrimSpace(*note)
	if n == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(n) > maxNoteLen {
		return nil, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("note exceeds %d characters", maxNoteLen))
	}
	return &n, nil
}

// ListVisible returns the requests accountID is a party to, newest first.
func (s *Service) ListVisible(ctx context.Context, accountID uuid.UUID) ([]models.ServiceRequest, error) {
	const op = "services.requests.ListVisible"

	out, err := s.requests.ListRequestsForAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get returns a single request to one of its parties. Anyone else gets NotFound.
func (s *Service) Get(ctx context.Context, requestID, viewer uuid.UUID) (models.ServiceRequest, error) {
	const op = "services.requests.Get"

	r, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ServiceRequest{}, apperr.New(apperr.KindNotFound, "request not found")
		}
		return models.ServiceRequest{}, fmt.Errorf("%s: %w", op, err)
	}
	if !r.Involves(viewer) {
		return models.ServiceRequest{}, apperr.New(apperr.KindNotFound, "request not found")
	}
	return r, nil
}

// Transition moves a request to target on behalf of its provider.
// Nothing is written unless every check passes.
func (s *Service) Transition(ctx context.Context, requestID, actingAccountID uuid.UUID, target string) (models.ServiceRequest, error) {
	const op = "services.requests.Transition"

	log := s.log.With(
		zap.String("op", op),
		zap.Stringer("request_id", requestID),
		zap.Stringer("actor_id", actingAccountID),
		zap.String("target", target),
	)

	cur, err := s.requests.GetRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.ServiceRequest{}, apperr.New(apperr.KindNotFound, "request not found")
		}
		return models.ServiceRequest{}, fmt.Errorf("%s: %w", op, err)
	}

	// the provider check precedes label validation
	next, known := models.ParseStatus(target)
	record := func(outcome string) {
		to := string(next)
		if !known {
			to = "unknown"
		}
		s.metrics.RequestTransitions.WithLabelValues(string(cur.Status), to, outcome).Inc()
	}

	if cur.ProviderID != actingAccountID {
		record("unauthorized")
		log.Warn("transition refused: actor is not the provider")
		return models.ServiceRequest{}, apperr.New(apperr.KindUnauthorized, "only the provider can change this request")
	}
	if !known {
		record("invalid")
		return models.ServiceRequest{}, apperr.New(apperr.KindInvalidTransition, fmt.Sprintf("unknown status %q", target))
	}
	if !models.CanTransition(cur.Status, next) {
		record("invalid")
		return models.ServiceRequest{}, invalidTransition(cur.Status, next)
	}

	updated, err := s.requests.UpdateRequestStatus(ctx, requestID, cur.Status, next)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrStaleStatus):
			record("stale")
			fresh, gerr := s.requests.GetRequest(ctx, requestID)
			if gerr != nil {
				return models.ServiceRequest{}, fmt.Errorf("%s: %w", op, gerr)
			}
			log.Info("request status moved concurrently", zap.String("status", string(fresh.Status)))
			return models.ServiceRequest{}, invalidTransition(fresh.Status, next)
		case errors.Is(err, store.ErrNotFound):
			return models.ServiceRequest{}, apperr.New(apperr.KindNotFound, "request not found")
		default:
			record("error")
			log.Error("failed to update request status", zap.Error(err))
			return models.ServiceRequest{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	record("ok")
	log.Info("request transitioned", zap.String("from", string(cur.Status)))

	if s.notifier != nil {
		providerName := ""
		if p, err := s.profiles.GetProfile(ctx, actingAccountID); err == nil {
			providerName = p.FullName
		}
		if err := s.notifier.RequestTransitioned(ctx, updated, providerName); err != nil {
			log.Warn("failed to notify client", zap.Error(err))
		}
	}
	return updated, nil
}

func invalidTransition(from, to models.Status) error {
	return apperr.New(apperr.KindInvalidTransition, fmt.Sprintf("cannot move request from %s to %s", from, to))
}

func outcome(err error) string {
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		return "invalid"
	case apperr.KindUnauthorized:
		return "unauthorized"
	default:
		return "error"
	}
}
