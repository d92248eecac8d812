// Package local keeps objects on the filesystem and issues JWT-signed read URLs
// served back by this process.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"BOOKING_BACK-END/internal/objectstore"
)

// ReadPath is the route that serves signed reads.
const ReadPath = "/api/avatars/object"

var ErrInvalidKey = errors.New("objectstore/local: invalid key")

type Store struct {
	root    string
	baseURL string
	secret  []byte
	now     func() time.Time
}

var _ objectstore.Store = (*Store)(nil)

func New(root, publicBaseURL, secret string) *Store {
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
		secret:  []byte(secret),
		now:     time.Now,
	}
}

// path resolves key inside root and refuses anything that escapes it.
func (s *Store) path(key string) (string, error) {
	clean := filepath.Clean("/" + strings.TrimSpace(key))
	if clean == "/" || strings.Contains(key, "..") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *Store) Upload(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	// write then rename so readers never see a partial file
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (s *Store) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", objectstore.ErrObjectNotFound
		}
		return "", fmt.Errorf("stat %s: %w", key, err)
	}

	token, err := GenerateReadToken(key, ttl, s.secret, s.now())
	if err != nil {
		return "", err
	}
	return s.baseURL + ReadPath + "?token=" + url.QueryEscape(token), nil
}

func (s *Store) Remove(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return objectstore.ErrObjectNotFound
		}
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Open validates a read token and returns the object it grants access to.
// The caller must close the file.
func (s *Store) Open(token string) (*os.File, string, error) {
	claims, err := ValidateReadToken(token, s.secret)
	if err != nil {
		return nil, "", err
	}
	p, err := s.path(claims.Path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", objectstore.ErrObjectNotFound
		}
		return nil, "", fmt.Errorf("open %s: %w", claims.Path, err)
	}
	return f, claims.Path, nil
}
