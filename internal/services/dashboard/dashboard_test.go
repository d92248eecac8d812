package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/objectstore"
	"BOOKING_BACK-END/internal/services/avatars"
	"BOOKING_BACK-END/internal/services/profiles"
	"BOOKING_BACK-END/internal/services/requests"
	"BOOKING_BACK-END/internal/store/memory"
)

type brokenObjects struct{}

func (brokenObjects) Upload(context.Context, string, []byte, string) error { return nil }
func (brokenObjects) SignedURL(context.Context, string, time.Duration) (string, error) {
	return "", objectstore.ErrObjectNotFound
}
func (brokenObjects) Remove(context.Context, string) error { return nil }

type fixture struct {
	ctrl     *Controller
	profiles *profiles.Service
	avatars  *avatars.Service
	requests *requests.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	m := metrics.NewNop()
	rows := memory.New()

	p := profiles.New(log, rows, m)
	a := avatars.New(log, brokenObjects{}, m, avatars.Options{})
	r := requests.New(log, rows, rows, nil, m)
	return &fixture{ctrl: New(log, p, a, r), profiles: p, avatars: a, requests: r}
}

func TestLoadBootstrapsClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	provider, err := f.profiles.EnsureProfile(ctx, models.Account{ID: uuid.New(), NameHint: "Bo", RoleHint: "provider"})
	require.NoError(t, err)

	account := models.Account{ID: uuid.New(), Email: "ana@example.com"}
	d, err := f.ctrl.Load(ctx, account)
	require.NoError(t, err)

	assert.Equal(t, account.ID, d.Profile.ID)
	assert.Equal(t, "ana", d.Profile.FullName)
	assert.True(t, d.CanBook)
	assert.False(t, d.CanTransition)
	assert.Empty(t, d.Requests)
	require.Len(t, d.Providers, 1)
	assert.Equal(t, provider.ID, d.Providers[0].ID)
	assert.Equal(t, f.avatars.Placeholder("ana"), d.AvatarURL)
}

func TestLoadProviderSeesRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client, err := f.profiles.EnsureProfile(ctx, models.Account{ID: uuid.New(), NameHint: "Ana"})
	require.NoError(t, err)
	providerAccount := models.Account{ID: uuid.New(), NameHint: "Bo", RoleHint: "provider"}
	_, err = f.profiles.EnsureProfile(ctx, providerAccount)
	require.NoError(t, err)

	when := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	r, err := f.requests.Create(ctx, client.ID, providerAccount.ID, when, nil)
	require.NoError(t, err)

	d, err := f.ctrl.Load(ctx, providerAccount)
	require.NoError(t, err)
	assert.True(t, d.CanTransition)
	assert.False(t, d.CanBook)
	assert.Nil(t, d.Providers)
	require.Len(t, d.Requests, 1)
	assert.Equal(t, r.ID, d.Requests[0].ID)
	assert.Equal(t, "Ana", d.Counterparts[client.ID])
}

func TestLoadAvatarFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := models.Account{ID: uuid.New(), NameHint: "Ana"}
	p, err := f.profiles.EnsureProfile(ctx, account)
	require.NoError(t, err)

	_, err = f.profiles.UpdateProfile(ctx, p.ID, models.ProfileUpdate{
		AvatarPath:  ptr(avatars.Key(p.ID, "png")),
		Country:     ptr("BR"),
		PhoneNumber: ptr("11999990000"),
		City:        ptr("Recife"),
	})
	require.NoError(t, err)

	d, err := f.ctrl.Load(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, f.avatars.Placeholder("Ana"), d.AvatarURL)
	assert.Equal(t, "+55 11999990000", d.PhoneDisplay)
	assert.Equal(t, "Recife, BR", d.LocationDisplay)
}

type failingProfiles struct{ ProfileSource }

func (failingProfiles) EnsureProfile(context.Context, models.Account) (models.Profile, error) {
	return models.Profile{}, apperr.Wrap(apperr.KindProfileCreateFailed, "could not create profile", errors.New("db down"))
}

func TestLoadPropagatesBootstrapFailure(t *testing.T) {
	f := newFixture(t)
	ctrl := New(zaptest.NewLogger(t), failingProfiles{}, f.avatars, f.requests)

	_, err := ctrl.Load(context.Background(), models.Account{ID: uuid.New()})
	assert.ErrorIs(t, err, apperr.ProfileCreateFailed)
}

// countingNames wraps the real profile service and counts name lookups.
type countingNames struct {
	*profiles.Service
	calls int
	fail  bool
}

func (c *countingNames) Names(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("db down")
	}
	return c.Service.Names(ctx, ids)
}

func TestLoadResolvesCounterpartsInOneLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	providerAccount := models.Account{ID: uuid.New(), NameHint: "Bo", RoleHint: "provider"}
	_, err := f.profiles.EnsureProfile(ctx, providerAccount)
	require.NoError(t, err)

	when := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	clients := map[uuid.UUID]string{}
	for _, name := range []string{"Ana", "Cris", "Dani"} {
		c, err := f.profiles.EnsureProfile(ctx, models.Account{ID: uuid.New(), NameHint: name})
		require.NoError(t, err)
		clients[c.ID] = name
		for i := 0; i < 2; i++ {
			_, err = f.requests.Create(ctx, c.ID, providerAccount.ID, when, nil)
			require.NoError(t, err)
		}
	}

	names := &countingNames{Service: f.profiles}
	ctrl := New(zaptest.NewLogger(t), names, f.avatars, f.requests)
	d, err := ctrl.Load(ctx, providerAccount)
	require.NoError(t, err)
	assert.Len(t, d.Requests, 6)
	assert.Equal(t, 1, names.calls)
	assert.Equal(t, clients, d.Counterparts)
}

func TestLoadNameLookupFailureKeepsRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client, err := f.profiles.EnsureProfile(ctx, models.Account{ID: uuid.New(), NameHint: "Ana"})
	require.NoError(t, err)
	providerAccount := models.Account{ID: uuid.New(), NameHint: "Bo", RoleHint: "provider"}
	_, err = f.profiles.EnsureProfile(ctx, providerAccount)
	require.NoError(t, err)
	when := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	_, err = f.requests.Create(ctx, client.ID, providerAccount.ID, when, nil)
	require.NoError(t, err)

	ctrl := New(zaptest.NewLogger(t), &countingNames{Service: f.profiles, fail: true}, f.avatars, f.requests)
	d, err := ctrl.Load(ctx, providerAccount)
	require.NoError(t, err)
	require.Len(t, d.Requests, 1)
	assert.Equal(t, map[uuid.UUID]string{client.ID: ""}, d.Counterparts)
}

func ptr(s string) *string { return &s }
