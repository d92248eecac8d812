// Package identity signs accounts up and in. Each new account gets its
// profile right away; the dashboard bootstrap covers accounts where that failed.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

const minPasswordLen = 6

type ProfileBootstrapper interface {
	EnsureProfile(ctx context.Context, account models.Account) (models.Profile, error)
}

type Service struct {
	log      *zap.Logger
	accounts store.AccountRows
	profiles ProfileBootstrapper
	google   GoogleExchanger
	cost     int
}

func New(log *zap.Logger, accounts store.AccountRows, profiles ProfileBootstrapper, google GoogleExchanger) *Service {
	return &Service{log: log, accounts: accounts, profiles: profiles, google: google, cost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Email    string
	Password string
	Role     string
	FullName string
}

// Register creates an account and its profile.
// A profile insert failure is logged and left for the dashboard bootstrap.
func (s *Service) Register(ctx context.Context, in RegisterInput) (models.Account, error) {
	const op = "services.identity.Register"

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return models.Account{}, err
	}
	if len(in.Password) < minPasswordLen {
		return models.Account{}, apperr.New(apperr.KindInvalidInput, fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	role := strings.TrimSpace(in.Role)
	if role != "" {
		if _, ok := models.ParseRole(role); !ok {
			return models.Account{}, apperr.New(apperr.KindInvalidInput, "role must be client or provider")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("%s: hash password: %w", op, err)
	}

	account, err := s.accounts.InsertAccount(ctx, models.Credentials{
		Account: models.Account{
			ID:       uuid.New(),
			Email:    email,
			RoleHint: strings.ToLower(role),
			NameHint: strings.TrimSpace(in.FullName),
		},
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrUniquenessConflict) {
			return models.Account{}, apperr.New(apperr.KindConflict, "email already registered")
		}
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	s.bootstrap(ctx, op, account)
	return account, nil
}

// Login checks credentials. Unknown email and wrong password look the same to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (models.Account, error) {
	const op = "services.identity.Login"

	creds, err := s.accounts.GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, apperr.New(apperr.KindNotAuthenticated, "email or password is incorrect")
		}
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}
	if creds.PasswordHash == "" {
		return models.Account{}, apperr.New(apperr.KindNotAuthenticated, "this account signs in with Google")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, apperr.New(apperr.KindNotAuthenticated, "email or password is incorrect")
	}
	return creds.Account, nil
}

// Account loads an account by id, for token holders whose account may be gone.
func (s *Service) Account(ctx context.Context, id uuid.UUID) (models.Account, error) {
	a, err := s.accounts.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Account{}, apperr.New(apperr.KindNotAuthenticated, "account no longer exists")
		}
		return models.Account{}, fmt.Errorf("services.identity.Account: %w", err)
	}
	return a, nil
}

func (s *Service) bootstrap(ctx context.Context, op string, account models.Account) {
	if _, err := s.profiles.EnsureProfile(ctx, account); err != nil {
		s.log.Warn("profile not created at sign-up",
			zap.String("op", op),
			zap.Stringer("account_id", account.ID),
			zap.Error(err),
		)
	}
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" || !strings.Contains(addr.Address, "@") {
		return "", apperr.New(apperr.KindInvalidInput, "a valid email is required")
	}
	return strings.ToLower(addr.Address), nil
}
