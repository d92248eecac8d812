// Package profiles owns the one-profile-per-account invariant.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/countries"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

const defaultName = "User"

type Service struct {
	log     *zap.Logger
	rows    store.ProfileRows
	metrics *metrics.Metrics
}

func New(log *zap.Logger, rows store.ProfileRows, m *metrics.Metrics) *Service {
	return &Service{log: log, rows: rows, metrics: m}
}

// EnsureProfile returns the account's profile, creating it with defaults
// derived from the account when missing. Safe to call concurrently: a lost
// insert race resolves to the winner's row.
func (s *Service) EnsureProfile(ctx context.Context, account models.Account) (models.Profile, error) {
	const op = "services.profiles.EnsureProfile"

	log := s.log.With(zap.String("op", op), zap.Stringer("account_id", account.ID))

	p, err := s.rows.GetProfile(ctx, account.ID)
	if err == nil {
		s.metrics.ProfileBootstrap.WithLabelValues("existing").Inc()
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.rows.InsertProfile(ctx, Defaults(account))
	switch {
	case err == nil:
		log.Info("profile created", zap.String("role", string(created.Role)))
		s.metrics.ProfileBootstrap.WithLabelValues("created").Inc()
		return created, nil

	case errors.Is(err, store.ErrUniquenessConflict):
		winner, rerr := s.rows.GetProfile(ctx, account.ID)
		if rerr != nil {
			s.metrics.ProfileBootstrap.WithLabelValues("failed").Inc()
			return models.Profile{}, apperr.Wrap(apperr.KindProfileCreateFailed, "re-read profile after conflict", rerr)
		}
		log.Debug("profile insert lost race, using existing row")
		s.metrics.ProfileBootstrap.WithLabelValues("raced").Inc()
		return winner, nil

	default:
		log.Error("failed to create profile", zap.Error(err))
		s.metrics.ProfileBootstrap.WithLabelValues("failed").Inc()
		return models.Profile{}, apperr.Wrap(apperr.KindProfileCreateFailed, "could not create profile", err)
	}
}

// Defaults is the profile a brand-new account starts with.
func Defaults(account models.Account) models.Profile {
	role, ok := models.ParseRole(account.RoleHint)
	if !ok {
		role = models.RoleClient
	}
	return models.Profile{
		ID:       account.ID,
		FullName: defaultFullName(account),
		Role:     role,
	}
}

func defaultFullName(account models.Account) string {
	if n := strings.TrimSpace(account.NameHint); n != "" {
		return n
	}
	if at := strings.IndexByte(account.Email, '@'); at > 0 {
		if local := strings.TrimSpace(account.Email[:at]); local != "" {
			return local
		}
	}
	return defaultName
}

func (s *Service) Get(ctx context.Context, accountID uuid.UUID) (models.Profile, error) {
	const op = "services.profiles.Get"

	p, err := s.rows.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Profile{}, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// Names maps each id to its profile's display name in one read.
// Ids without a profile map to the empty string.
func (s *Service) Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	const op = "services.profiles.Names"

	unique := make([]uuid.UUID, 0, len(ids))
	out := make(map[uuid.UUID]string, len(ids))
	for _, id := range ids {
		if _, seen := out[id]; seen {
			continue
		}
		out[id] = ""
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return out, nil
	}

	found, err := s.rows.GetProfiles(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for id, p := range found {
		out[id] = p.FullName
	}
	return out, nil
}

// UpdateProfile merges u onto the stored row and persists it.
// Choosing a catalog country without an explicit phone prefix fills the prefix in.
func (s *Service) UpdateProfile(ctx context.Context, accountID uuid.UUID, u models.ProfileUpdate) (models.Profile, error) {
	const op = "services.profiles.UpdateProfile"

	cur, err := s.Get(ctx, accountID)
	if err != nil {
		return models.Profile{}, err
	}

	next := u.Apply(cur)

	if u.Country != nil && next.Country != "" {
		code, err := countries.Normalize(next.Country)
		if err != nil {
			return models.Profile{}, apperr.New(apperr.KindValidationFailed, "Please select a valid country.")
		}
		next.Country = code

		prefixGiven := u.PhonePrefix != nil && strings.TrimSpace(*u.PhonePrefix) != ""
		if code != cur.Country && !prefixGiven {
			if c, ok := countries.Lookup(code); ok {
				next.PhonePrefix = c.Prefix
			}
		}
	}

	if err := validate(next); err != nil {
		return models.Profile{}, err
	}

	saved, err := s.rows.UpdateProfile(ctx, next)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Profile{}, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("profile updated", zap.String("op", op), zap.Stringer("account_id", accountID))
	return saved, nil
}

// SetAvatar records a freshly stored avatar key. Unlike UpdateProfile it
// does not require the display fields, so an avatar can be set before the
// rest of the form is filled in.
func (s *Service) SetAvatar(ctx context.Context, accountID uuid.UUID, key string) (models.Profile, error) {
	const op = "services.profiles.SetAvatar"

	cur, err := s.Get(ctx, accountID)
	if err != nil {
		return models.Profile{}, err
	}
	cur.AvatarPath = strings.TrimSpace(key)

	saved, err := s.rows.UpdateProfile(ctx, cur)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Profile{}, apperr.New(apperr.KindNotFound, "profile not found")
		}
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

// validate checks the fields the dashboard cannot render without,
// in the order the profile form asks for them.
func validate(p models.Profile) error {
	switch {
	case p.FullName == "":
		return apperr.New(apperr.KindValidationFailed, "Please enter your full name.")
	case p.Country == "":
		return apperr.New(apperr.KindValidationFailed, "Please select your country.")
	case p.PhoneNumber == "":
		return apperr.New(apperr.KindValidationFailed, "Please enter your phone number.")
	}
	return nil
}

// ListProviders returns every provider profile ordered by name.
func (s *Service) ListProviders(ctx context.Context) ([]models.Profile, error) {
	const op = "services.profiles.ListProviders"

	out, err := s.rows.ListProfilesByRole(ctx, models.RoleProvider)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
