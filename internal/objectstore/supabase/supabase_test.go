package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BOOKING_BACK-END/internal/objectstore"
)

func TestUploadSendsUpsert(t *testing.T) {
	var gotMethod, gotPath, gotUpsert, gotAuth, gotKey string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("apikey")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"Key":"avatars/u1/profile.png"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "service-key", "avatars")
	err := c.Upload(context.Background(), "u1/profile.png", []byte{1, 2, 3}, "image/png")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/storage/v1/object/avatars/u1/profile.png", gotPath)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, []byte{1, 2, 3}, gotBody)
}

func TestSignedURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/sign/avatars/u1/profile.jpg", r.URL.Path)
		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 3600, body["expiresIn"])
		_, _ = w.Write([]byte(`{"signedURL":"/object/sign/avatars/u1/profile.jpg?token=abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "avatars")
	url, err := c.SignedURL(context.Background(), "u1/profile.jpg", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/storage/v1/object/sign/avatars/u1/profile.jpg?token=abc", url)
}

func TestSignedURLMissingObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"statusCode":"404","error":"not_found","message":"Object not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "avatars")
	_, err := c.SignedURL(context.Background(), "u1/profile.jpg", time.Hour)
	assert.ErrorIs(t, err, objectstore.ErrObjectNotFound)
}

func TestRemove(t *testing.T) {
	var prefixes []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/avatars", r.URL.Path)
		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		prefixes = body["prefixes"]
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "avatars")
	require.NoError(t, c.Remove(context.Background(), "u1/profile.png"))
	assert.Equal(t, []string{"u1/profile.png"}, prefixes)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":"500","error":"internal","message":"storage down"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "avatars")
	err := c.Upload(context.Background(), "u1/profile.png", []byte{1}, "image/png")
	require.Error(t, err)
	assert.NotErrorIs(t, err, objectstore.ErrObjectNotFound)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New("http://127.0.0.1:0", "k", "avatars")
	assert.ErrorIs(t, c.Upload(ctx, "u1/profile.png", []byte{1}, "image/png"), context.Canceled)
	_, err := c.SignedURL(ctx, "u1/profile.png", time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Remove(ctx, "u1/profile.png"), context.Canceled)
}
