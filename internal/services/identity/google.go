package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/config"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

// GoogleUser is the subset of Google's userinfo we keep.
type GoogleUser struct {
	ID       string
	Email    string
	Name     string
	Picture  string
	Verified bool
}

// GoogleExchanger runs the OAuth2 authorization-code flow against Google.
type GoogleExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (GoogleUser, error)
}

type googleClient struct {
	oauth2Config *oauth2.Config
}

// NewGoogle returns nil when Google sign-in is not configured.
func NewGoogle(cfg config.GoogleOAuthConfig) GoogleExchanger {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil
	}
	return &googleClient{oauth2Config: &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}}
}

func (g *googleClient) AuthCodeURL(state string) string {
	return g.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleClient) Exchange(ctx context.Context, code string) (GoogleUser, error) {
	token, err := g.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return GoogleUser{}, apperr.Wrap(apperr.KindNotAuthenticated, "invalid authorization code", err)
	}

	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(g.oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		return GoogleUser{}, fmt.Errorf("google userinfo client: %w", err)
	}
	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return GoogleUser{}, fmt.Errorf("google userinfo: %w", err)
	}

	verified := false
	if info.VerifiedEmail != nil {
		verified = *info.VerifiedEmail
	}
	return GoogleUser{
		ID:       info.Id,
		Email:    info.Email,
		Name:     info.Name,
		Picture:  info.Picture,
		Verified: verified,
	}, nil
}

var ErrGoogleDisabled = apperr.New(apperr.KindNotAuthenticated, "Google sign-in is not configured")

// GoogleAuthURL starts the Google flow with the given CSRF state.
func (s *Service) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", ErrGoogleDisabled
	}
	return s.google.AuthCodeURL(state), nil
}

// GoogleSignIn exchanges code for a Google identity and returns the matching
// account, creating it (and its profile) on first sign-in.
func (s *Service) GoogleSignIn(ctx context.Context, code, roleHint string) (models.Account, error) {
	const op = "services.identity.GoogleSignIn"

	if s.google == nil {
		return models.Account{}, ErrGoogleDisabled
	}
	if strings.TrimSpace(code) == "" {
		return models.Account{}, apperr.New(apperr.KindInvalidInput, "authorization code is required")
	}

	gu, err := s.google.Exchange(ctx, code)
	if err != nil {
		return models.Account{}, err
	}
	if gu.Email == "" || !gu.Verified {
		return models.Account{}, apperr.New(apperr.KindNotAuthenticated, "Google account has no verified email")
	}

	creds, err := s.accounts.GetAccountByEmail(ctx, gu.Email)
	if err == nil {
		s.bootstrap(ctx, op, creds.Account)
		return creds.Account, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := models.ParseRole(roleHint); !ok {
		roleHint = ""
	}
	account, err := s.accounts.InsertAccount(ctx, models.Credentials{Account: models.Account{
		ID:       uuid.New(),
		Email:    strings.ToLower(gu.Email),
		RoleHint: strings.ToLower(strings.TrimSpace(roleHint)),
		NameHint: gu.Name,
	}})
	if err != nil {
		if errors.Is(err, store.ErrUniquenessConflict) {
			// a parallel callback for the same Google account created it first
			creds, gerr := s.accounts.GetAccountByEmail(ctx, gu.Email)
			if gerr != nil {
				return models.Account{}, fmt.Errorf("%s: %w", op, gerr)
			}
			return creds.Account, nil
		}
		return models.Account{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("account created from Google sign-in", zap.String("op", op), zap.Stringer("account_id", account.ID))
	s.bootstrap(ctx, op, account)
	return account, nil
}
