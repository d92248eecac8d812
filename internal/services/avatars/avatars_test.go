package avatars

import (
	"bytes"
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/objectstore"
)

type fakeObjects struct {
	mu       sync.Mutex
	objects  map[string][]byte
	signErr  error
	signTTLs []time.Duration
	removed  []string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}}
}

func (f *fakeObjects) Upload(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	return nil
}

func (f *fakeObjects) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signTTLs = append(f.signTTLs, ttl)
	if f.signErr != nil {
		return "", f.signErr
	}
	if _, ok := f.objects[key]; !ok {
		return "", objectstore.ErrObjectNotFound
	}
	return "https://cdn.example/" + key + "?sig=" + uuid.NewString(), nil
}

func (f *fakeObjects) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[key]; !ok {
		return objectstore.ErrObjectNotFound
	}
	delete(f.objects, key)
	f.removed = append(f.removed, key)
	return nil
}

func newService(t *testing.T, objects objectstore.Store) (*Service, *metrics.Metrics) {
	m := metrics.NewNop()
	return New(zaptest.NewLogger(t), objects, m, Options{}), m
}

func TestPlaceholderDeterministic(t *testing.T) {
	s, m := newService(t, newFakeObjects())
	p := models.Profile{ID: uuid.New(), FullName: "Ana Souza"}

	first := s.ResolveAvatar(context.Background(), p)
	assert.Equal(t, first, s.ResolveAvatar(context.Background(), p))
	assert.NotEqual(t, first, s.ResolveAvatar(context.Background(), models.Profile{FullName: "Bo Lee"}))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AvatarResolutions.WithLabelValues("placeholder")))

	u, err := url.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, "ui-avatars.com", u.Host)
	assert.Equal(t, "Ana Souza", u.Query().Get("name"))
	assert.Len(t, u.Query().Get("background"), 6)
}

func TestPlaceholderEmptyName(t *testing.T) {
	s, _ := newService(t, newFakeObjects())
	assert.Equal(t, s.Placeholder("User"), s.Placeholder(""))
	assert.Equal(t, s.Placeholder("User"), s.Placeholder("   "))
}

func TestResolveAvatarSigned(t *testing.T) {
	objects := newFakeObjects()
	s, m := newService(t, objects)
	id := uuid.New()
	objects.objects[Key(id, "png")] = []byte{1}

	p := models.Profile{ID: id, FullName: "Ana", AvatarPath: Key(id, "png")}
	a := s.ResolveAvatar(context.Background(), p)
	b := s.ResolveAvatar(context.Background(), p)

	assert.True(t, strings.HasPrefix(a, "https://cdn.example/"+id.String()+"/profile.png"))
	assert.NotEqual(t, a, b, "each call issues a fresh credential")
	assert.Equal(t, []time.Duration{time.Hour, time.Hour}, objects.signTTLs)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AvatarResolutions.WithLabelValues("signed")))
}

func TestResolveAvatarFallsBack(t *testing.T) {
	objects := newFakeObjects()
	s, m := newService(t, objects)
	p := models.Profile{ID: uuid.New(), FullName: "Ana", AvatarPath: "missing/profile.jpg"}

	assert.Equal(t, s.Placeholder("Ana"), s.ResolveAvatar(context.Background(), p))

	objects.signErr = errors.New("storage unavailable")
	objects.objects["missing/profile.jpg"] = []byte{1}
	assert.Equal(t, s.Placeholder("Ana"), s.ResolveAvatar(context.Background(), p))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AvatarResolutions.WithLabelValues("fallback")))
}

func TestStoreAvatarRejectsGIF(t *testing.T) {
	s, _ := newService(t, newFakeObjects())
	_, err := s.StoreAvatar(context.Background(), uuid.New(), []byte("GIF89a"), "image/gif")
	assert.ErrorIs(t, err, apperr.UnsupportedMediaType)
}

func TestStoreAvatarRejectsLargePayload(t *testing.T) {
	objects := newFakeObjects()
	s, _ := newService(t, objects)
	_, err := s.StoreAvatar(context.Background(), uuid.New(), make([]byte, 6<<20), "image/jpeg")
	assert.ErrorIs(t, err, apperr.PayloadTooLarge)
	assert.Empty(t, objects.objects)
}

func TestStoreAvatarRejectsEmpty(t *testing.T) {
	s, _ := newService(t, newFakeObjects())
	_, err := s.StoreAvatar(context.Background(), uuid.New(), nil, "image/png")
	assert.ErrorIs(t, err, apperr.InvalidInput)
}

func TestStoreAvatarPNG(t *testing.T) {
	objects := newFakeObjects()
	s, _ := newService(t, objects)
	id := uuid.New()
	data := bytes.Repeat([]byte{0x89}, 1<<20)

	key, err := s.StoreAvatar(context.Background(), id, data, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, "/profile.png"))
	assert.Equal(t, id.String()+"/profile.png", key)
	assert.Equal(t, data, objects.objects[key])
}

func TestStoreAvatarOverwritesAndCleansOtherFormat(t *testing.T) {
	objects := newFakeObjects()
	s, _ := newService(t, objects)
	id := uuid.New()

	_, err := s.StoreAvatar(context.Background(), id, []byte("png-1"), "image/png")
	require.NoError(t, err)
	_, err = s.StoreAvatar(context.Background(), id, []byte("png-2"), "IMAGE/PNG")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-2"), objects.objects[Key(id, "png")])

	key, err := s.StoreAvatar(context.Background(), id, []byte("jpeg"), "image/jpeg; charset=binary")
	require.NoError(t, err)
	assert.Equal(t, Key(id, "jpg"), key)
	assert.NotContains(t, objects.objects, Key(id, "png"))
	assert.Equal(t, []string{Key(id, "png")}, objects.removed)
}
