package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps sessions in process. Used for development and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	now      func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: make(map[string][]byte), now: time.Now}
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Session, error) {
	r.mu.RLock()
	raw, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return Session{}, ErrNotFound
	}
	s, err := decode(raw)
	if err != nil {
		return Session{}, err
	}
	if !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(r.now()) {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Save stores a copy, so later mutation of s does not leak into the repo.
func (r *MemoryRepo) Save(_ context.Context, s *Session) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.sessions[s.ID] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *MemoryRepo) CleanupExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := r.now()
	for id, raw := range r.sessions {
		s, err := decode(raw)
		if err != nil || (!s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

// IDs lists stored session ids in order.
func (r *MemoryRepo) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func encode(s *Session) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (Session, error) {
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}
