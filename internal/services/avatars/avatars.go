// Package avatars turns stored avatar keys into short-lived URLs and accepts uploads.
package avatars

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BOOKING_BACK-END/internal/apperr"
	"BOOKING_BACK-END/internal/metrics"
	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/objectstore"
)

const (
	DefaultSignedURLTTL    = time.Hour
	DefaultMaxBytes        = 5 << 20
	DefaultPlaceholderBase = "https://ui-avatars.com/api/"
)

// palette backs placeholder backgrounds; a name always maps to the same entry.
var palette = []string{
	"1d4ed8", "0f766e", "b45309", "7c3aed", "be123c", "15803d", "0369a1", "a21caf",
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
}

type Options struct {
	SignedURLTTL    time.Duration
	MaxBytes        int64
	PlaceholderBase string
}

type Service struct {
	log     *zap.Logger
	objects objectstore.Store
	metrics *metrics.Metrics
	opts    Options
}

func New(log *zap.Logger, objects objectstore.Store, m *metrics.Metrics, opts Options) *Service {
	if opts.SignedURLTTL <= 0 {
		opts.SignedURLTTL = DefaultSignedURLTTL
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.PlaceholderBase == "" {
		opts.PlaceholderBase = DefaultPlaceholderBase
	}
	return &Service{log: log, objects: objects, metrics: m, opts: opts}
}

// ResolveAvatar never fails: a missing or unsignable avatar degrades to the placeholder.
// Each call issues a fresh signed URL.
func (s *Service) ResolveAvatar(ctx context.Context, p models.Profile) string {
	const op = "services.avatars.ResolveAvatar"

	key := strings.TrimSpace(p.AvatarPath)
	if key == "" {
		s.metrics.AvatarResolutions.WithLabelValues("placeholder").Inc()
		return s.Placeholder(p.FullName)
	}

	signed, err := s.objects.SignedURL(ctx, key, s.opts.SignedURLTTL)
	if err != nil {
		s.log.Warn("avatar signing failed, using placeholder",
			zap.String("op", op),
			zap.Stringer("account_id", p.ID),
			zap.String("key", key),
			zap.Bool("missing", errors.Is(err, objectstore.ErrObjectNotFound)),
			zap.Error(err),
		)
		s.metrics.AvatarResolutions.WithLabelValues("fallback").Inc()
		return s.Placeholder(p.FullName)
	}

	s.metrics.AvatarResolutions.WithLabelValues("signed").Inc()
	return signed
}

// Placeholder builds a generated avatar URL for name.
func (s *Service) Placeholder(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	bg := palette[h.Sum32()%uint32(len(palette))]

	q := url.Values{}
	q.Set("name", name)
	q.Set("background", bg)
	q.Set("color", "ffffff")
	return s.opts.PlaceholderBase + "?" + q.Encode()
}

// StoreAvatar uploads a JPEG or PNG to the account's avatar slot and returns its key.
// It does not touch the profile.
func (s *Service) StoreAvatar(ctx context.Context, accountID uuid.UUID, data []byte, mimeType string) (string, error) {
	const op = "services.avatars.StoreAvatar"

	log := s.log.With(zap.String("op", op), zap.Stringer("account_id", accountID))

	ext, contentType, err := extensionFor(mimeType)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.opts.MaxBytes {
		return "", apperr.New(apperr.KindPayloadTooLarge,
			fmt.Sprintf("avatar exceeds %d bytes", s.opts.MaxBytes))
	}
	if len(data) == 0 {
		return "", apperr.New(apperr.KindInvalidInput, "avatar is empty")
	}

	key := Key(accountID, ext)
	if err := s.objects.Upload(ctx, key, data, contentType); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// drop the other format's object so a format switch leaves nothing behind
	for _, other := range extensions {
		if other == ext {
			continue
		}
		err := s.objects.Remove(ctx, Key(accountID, other))
		if err != nil && !errors.Is(err, objectstore.ErrObjectNotFound) {
			log.Warn("failed to remove previous avatar", zap.String("ext", other), zap.Error(err))
		}
	}

	log.Info("avatar stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return key, nil
}

// Key is the object key of an account's avatar in the given extension.
func Key(accountID uuid.UUID, ext string) string {
	return accountID.String() + "/profile." + ext
}

func extensionFor(mimeType string) (string, string, error) {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	ext, ok := extensions[mediaType]
	if !ok {
		return "", "", apperr.New(apperr.KindUnsupportedMediaType,
			fmt.Sprintf("unsupported avatar type %q: use image/jpeg or image/png", mimeType))
	}
	return ext, mediaType, nil
}
