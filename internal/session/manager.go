package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookweb/internal/apiclient"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "bookweb_session"

// Manager owns the session lifecycle: load once per request, then an explicit
// Commit or Clear from the handler.
type Manager struct {
	repo   Repository
	secret string
	ttl    time.Duration
	secure bool
	log    *logrus.Logger
	now    func() time.Time
}

func NewManager(repo Repository, secret string, ttl time.Duration, secure bool, log *logrus.Logger) *Manager {
	return &Manager{
		repo:   repo,
		secret: secret,
		ttl:    ttl,
		secure: secure,
		log:    log,
		now:    time.Now,
	}
}

// New returns a fresh anonymous session. It is not stored until committed.
func (m *Manager) New() *Session {
	now := m.now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
}

// Load returns the session named by the request cookie, or a new one.
func (m *Manager) Load(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return m.New()
	}
	id, err := ParseToken(m.secret, c.Value)
	if err != nil {
		m.log.WithError(err).Debug("session cookie rejected")
		return m.New()
	}
	s, err := m.repo.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.log.WithError(err).WithField("session_id", id).Warn("session load failed")
		}
		return m.New()
	}
	return &s
}

// Commit persists s and refreshes the cookie. Upstream cookies picked up
// during the request are folded into s when s is the request's own session.
func (m *Manager) Commit(w http.ResponseWriter, r *http.Request, s *Session) error {
	if FromContext(r.Context()) == s {
		if creds := apiclient.CredentialsFrom(r.Context()); creds != nil && creds.Changed() {
			s.Cookies = creds.Snapshot()
		}
	}

	now := m.now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	if err := m.repo.Save(r.Context(), s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := IssueToken(m.secret, s.ID, m.ttl)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear deletes s and expires the cookie. It returns a new anonymous session
// the caller may use to carry a flash message.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request, s *Session) *Session {
	if err := m.repo.Delete(r.Context(), s.ID); err != nil && !errors.Is(err, ErrNotFound) {
		m.log.WithError(err).WithField("session_id", s.ID).Warn("session delete failed")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return m.New()
}

// Middleware loads the session and binds its upstream credentials to the
// request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Load(r)
		ctx := NewContext(r.Context(), s)
		ctx = apiclient.WithCredentials(ctx, apiclient.NewCredentials(s.Cookies))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StartJanitor purges expired sessions on the given cron schedule.
func (m *Manager) StartJanitor(schedule string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := m.repo.CleanupExpired(ctx)
		if err != nil {
			m.log.WithError(err).Warn("session cleanup failed")
			return
		}
		m.log.WithField("removed", n).Debug("session cleanup")
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session cleanup: %w", err)
	}
	c.Start()
	return c, nil
}
