// Package supabase keeps avatars in a Supabase Storage bucket.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	storage "github.com/supabase-community/storage-go"

	"BOOKING_BACK-END/internal/objectstore"
)

type Client struct {
	storage *storage.Client
	baseURL string
	bucket  string
}

var _ objectstore.Store = (*Client)(nil)

// New connects to the storage API of the project at projectURL
// (https://<ref>.supabase.co) with its service role key.
func New(projectURL, serviceKey, bucket string) *Client {
	baseURL := strings.TrimRight(projectURL, "/") + "/storage/v1"
	return &Client{
		storage: storage.NewClient(baseURL, serviceKey, map[string]string{"apikey": serviceKey}),
		baseURL: baseURL,
		bucket:  bucket,
	}
}

// translate maps Supabase's "Object not found" answers, which arrive as a
// 404 or as a 400 with statusCode "404", onto ErrObjectNotFound.
func translate(op, key string, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "not found") {
		return fmt.Errorf("%s %s: %w", op, key, objectstore.ErrObjectNotFound)
	}
	return fmt.Errorf("supabase storage: %s %s: %w", op, key, err)
}

// storage-go has no context support; a cancelled ctx is honoured before each call.

func (c *Client) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	upsert := true
	cacheControl := "3600"
	_, err := c.storage.UploadFile(c.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return translate("upload", key, err)
	}
	return nil
}

func (c *Client) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := c.storage.CreateSignedUrl(c.bucket, key, int(ttl.Seconds()))
	if err != nil {
		return "", translate("sign", key, err)
	}

	signed := resp.SignedURL
	if !strings.Contains(signed, "token=") {
		return "", fmt.Errorf("sign %s: %w", key, objectstore.ErrObjectNotFound)
	}
	// the API answers with a path relative to /storage/v1
	if strings.HasPrefix(signed, "/") {
		signed = c.baseURL + signed
	}
	return signed, nil
}

func (c *Client) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.storage.RemoveFile(c.bucket, []string{key}); err != nil {
		return translate("remove", key, err)
	}
	return nil
}
