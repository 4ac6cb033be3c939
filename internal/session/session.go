package session

import (
	"context"
	"errors"
	"time"

	"bookweb/internal/entity"
)

// ErrNotFound is returned when no live session exists for an id.
var ErrNotFound = errors.New("session not found")

// NavState carries record payloads from one page to the next.
type NavState struct {
	Book  *entity.Book           `json:"book,omitempty"`
	Draft *entity.BookDraft      `json:"draft,omitempty"`
	Image *entity.GeneratedImage `json:"image,omitempty"`
}

// ComposeState is the comment composer of the detail page, scoped to one book.
// EditCommentID == 0 means no edit target.
type ComposeState struct {
	BookID        int64  `json:"bookId,omitempty"`
	EditCommentID int64  `json:"editCommentId,omitempty"`
	Draft         string `json:"draft,omitempty"`
}

// MyPageState holds the two mypage lists between requests.
type MyPageState struct {
	MyBooks    []entity.Book `json:"myBooks,omitempty"`
	LikedBooks []entity.Book `json:"likedBooks,omitempty"`
}

// Session is everything bookweb keeps for one browser.
type Session struct {
	ID        string            `json:"id"`
	User      *entity.User      `json:"user,omitempty"`
	Cookies   map[string]string `json:"cookies,omitempty"`
	Nav       NavState          `json:"nav"`
	Compose   ComposeState      `json:"compose"`
	MyPage    MyPageState       `json:"mypage"`
	Flash     []string          `json:"flash,omitempty"`
	Resume    string            `json:"resume,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// IsLoggedIn reports whether the session has a current user with a login id.
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.User != nil && s.User.LoginID != ""
}

// LoginID returns the current user's login id, or "".
func (s *Session) LoginID() string {
	if !s.IsLoggedIn() {
		return ""
	}
	return s.User.LoginID
}

// SignIn records the user returned by a successful login.
func (s *Session) SignIn(u entity.User) {
	s.User = &u
}

// AddFlash queues a one-shot alert shown on the next rendered page.
func (s *Session) AddFlash(msg string) {
	s.Flash = append(s.Flash, msg)
}

// PopFlash returns and clears the queued alerts.
func (s *Session) PopFlash() []string {
	msgs := s.Flash
	s.Flash = nil
	return msgs
}

// ResumeOn marks the next GET of path as the landing of a redirect, so the
// page renders from stored state instead of starting over.
func (s *Session) ResumeOn(path string) {
	s.Resume = path
}

// TakeResume reports whether path was marked by ResumeOn and clears the mark.
func (s *Session) TakeResume(path string) bool {
	ok := s.Resume == path
	s.Resume = ""
	return ok
}

// Repository stores sessions by id.
type Repository interface {
	Get(ctx context.Context, id string) (Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	CleanupExpired(ctx context.Context) (int64, error)
}

type contextKey struct{}

// NewContext returns ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session loaded by the middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
