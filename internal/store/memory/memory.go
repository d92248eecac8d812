// Package memory is an in-process row store used by tests and STORE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"BOOKING_BACK-END/internal/models"
	"BOOKING_BACK-END/internal/store"
)

type requestRow struct {
	seq int64
	req models.ServiceRequest
}

type Store struct {
	mu            sync.RWMutex
	seq           int64
	profiles      map[uuid.UUID]models.Profile
	requests      map[uuid.UUID]*requestRow
	accounts      map[uuid.UUID]models.Credentials
	emails        map[string]uuid.UUID
	notifications []models.Notification

	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		profiles: make(map[uuid.UUID]models.Profile),
		requests: make(map[uuid.UUID]*requestRow),
		accounts: make(map[uuid.UUID]models.Credentials),
		emails:   make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) GetProfile(_ context.Context, id uuid.UUID) (models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	return p, nil
}

func (s *Store) GetProfiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[uuid.UUID]models.Profile, len(ids))
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *Store) InsertProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.ID]; ok {
		return models.Profile{}, store.ErrUniquenessConflict
	}
	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.profiles[p.ID] = p
	return p, nil
}

func (s *Store) UpdateProfile(_ context.Context, p models.Profile) (models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.profiles[p.ID]
	if !ok {
		return models.Profile{}, store.ErrNotFound
	}
	// id, role and created_at are not editable
	p.Role = cur.Role
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = s.now().UTC()
	s.profiles[p.ID] = p
	return p, nil
}

func (s *Store) ListProfilesByRole(_ context.Context, role models.Role) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, 0)
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) InsertRequest(_ context.Context, r models.ServiceRequest) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[r.ID]; ok {
		return models.ServiceRequest{}, store.ErrUniquenessConflict
	}
	s.seq++
	s.requests[r.ID] = &requestRow{seq: s.seq, req: r}
	return r, nil
}

func (s *Store) GetRequest(_ context.Context, id uuid.UUID) (models.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.requests[id]
	if !ok {
		return models.ServiceRequest{}, store.ErrNotFound
	}
	return row.req, nil
}

func (s *Store) ListRequestsForAccount(_ context.Context, accountID uuid.UUID) ([]models.ServiceRequest, error) {
	s.mu.RLock()
	rows := make([]*requestRow, 0)
	for _, row := range s.requests {
		if row.req.Involves(accountID) {
			rows = append(rows, row)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.req.CreatedAt.Equal(b.req.CreatedAt) {
			return a.req.CreatedAt.After(b.req.CreatedAt)
		}
		return a.seq < b.seq
	})

	out := make([]models.ServiceRequest, len(rows))
	for i, row := range rows {
		out[i] = row.req
	}
	return out, nil
}

func (s *Store) UpdateRequestStatus(_ context.Context, id uuid.UUID, from, next models.Status) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.requests[id]
	if !ok {
		return models.ServiceRequest{}, store.ErrNotFound
	}
	if row.req.Status != from {
		return models.ServiceRequest{}, store.ErrStaleStatus
	}
	row.req.Status = next
	return row.req, nil
}

func (s *Store) InsertAccount(_ context.Context, c models.Credentials) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(c.Email)
	if _, ok := s.emails[email]; ok {
		return models.Account{}, store.ErrUniquenessConflict
	}
	if _, ok := s.accounts[c.ID]; ok {
		return models.Account{}, store.ErrUniquenessConflict
	}
	c.CreatedAt = s.now().UTC()
	s.accounts[c.ID] = c
	s.emails[email] = c.ID
	return c.Account, nil
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return models.Credentials{}, store.ErrNotFound
	}
	return s.accounts[id], nil
}

func (s *Store) GetAccount(_ context.Context, id uuid.UUID) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.accounts[id]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}
	return c.Account, nil
}

func (s *Store) InsertNotification(_ context.Context, n models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}
	s.notifications = append(s.notifications, n)
	return n, nil
}

func (s *Store) ListNotifications(_ context.Context, userID uuid.UUID, f models.NotificationFilter) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Notification, 0)
	// newest first
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := s.notifications[i]
		if n.UserID != userID {
			continue
		}
		if f.UnreadOnly && n.Read {
			continue
		}
		if f.Type != "" && n.Type != f.Type {
			continue
		}
		out = append(out, n)
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Notification{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) MarkNotificationRead(_ context.Context, userID, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id && s.notifications[i].UserID == userID {
			s.notifications[i].Read = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) MarkAllNotificationsRead(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for i := range s.notifications {
		if s.notifications[i].UserID == userID && !s.notifications[i].Read {
			s.notifications[i].Read = true
			n++
		}
	}
	return n, nil
}

func (s *Store) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, m := range s.notifications {
		if m.UserID == userID && !m.Read {
			n++
		}
	}
	return n, nil
}
