// Package objectstore declares the blob storage contract used for avatars.
package objectstore

import (
	"context"
	"errors"
	"time"
)

var ErrObjectNotFound = errors.New("objectstore: object not found")

// Store keeps binary objects under slash-separated keys inside one bucket.
type Store interface {
	// Upload writes data at key, replacing any existing object.
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	// SignedURL returns a time-limited read URL for key.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}
