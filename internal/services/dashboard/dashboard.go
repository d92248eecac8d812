// Package dashboard assembles the signed-in view from profiles, avatars and requests.
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/models"
)

type ProfileSource interface {
	EnsureProfile(ctx context.Context, account models.Account) (models.Profile, error)
	Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
	ListProviders(ctx context.Context) ([]models.Profile, error)
}

type AvatarResolver interface {
	ResolveAvatar(ctx context.Context, p models.Profile) string
}

type RequestLister interface {
	ListVisible(ctx context.Context, accountID uuid.UUID) ([]models.ServiceRequest, error)
}

// Dashboard is everything the signed-in home screen renders.
type Dashboard struct {
	Profile         models.Profile
	AvatarURL       string
	PhoneDisplay    string
	LocationDisplay string
	Requests        []models.ServiceRequest
	// Counterparts maps the other party of each request to their display name.
	Counterparts map[uuid.UUID]string
	// Providers is only filled for clients, who pick one when booking.
	Providers     []models.Profile
	CanBook       bool
	CanTransition bool
}

type Controller struct {
	log      *zap.Logger
	profiles ProfileSource
	avatars  AvatarResolver
	requests RequestLister
}

func New(log *zap.Logger, profiles ProfileSource, avatars AvatarResolver, requests RequestLister) *Controller {
	return &Controller{log: log, profiles: profiles, avatars: avatars, requests: requests}
}

func (c *Controller) Load(ctx context.Context, account models.Account) (Dashboard, error) {
	const op = "services.dashboard.Load"

	profile, err := c.profiles.EnsureProfile(ctx, account)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Profile:         profile,
		AvatarURL:       c.avatars.ResolveAvatar(ctx, profile),
		PhoneDisplay:    profile.PhoneDisplay(),
		LocationDisplay: profile.LocationDisplay(),
		CanBook:         profile.Role == models.RoleClient,
		CanTransition:   profile.Role == models.RoleProvider,
	}

	d.Requests, err = c.requests.ListVisible(ctx, account.ID)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	others := make([]uuid.UUID, 0, len(d.Requests))
	for _, r := range d.Requests {
		other := r.ProviderID
		if other == account.ID {
			other = r.ClientID
		}
		others = append(others, other)
	}
	d.Counterparts, err = c.profiles.Names(ctx, others)
	if err != nil {
		// names are decoration; the requests still render
		c.log.Warn("counterpart names unavailable", zap.String("op", op), zap.Error(err))
		d.Counterparts = make(map[uuid.UUID]string, len(others))
		for _, id := range others {
			d.Counterparts[id] = ""
		}
	}

	if d.CanBook {
		d.Providers, err = c.profiles.ListProviders(ctx)
		if err != nil {
			return Dashboard{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	return d, nil
}
