package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bookweb/internal/apiclient"
	"bookweb/internal/entity"
	"bookweb/internal/logging"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/stretchr/testify/require"
)

// TestSecret signs session cookies in tests.
const TestSecret = "test-secret-test-secret-test-secret"

// TestUser is the signed-in user for page tests
var TestUser = entity.User{
	LoginID:  "reader01",
	MemberID: 7,
	Name:     "Reader",
}

// TestBook is a book fixture
var TestBook = entity.Book{
	ID:        42,
	Title:     "The Test Book",
	Author:    "A. Writer",
	Content:   "A test book description",
	ImgURL:    "https://example.com/cover.png",
	LikeCount: 3,
}

// NewManager returns a session manager over a fresh memory repo.
func NewManager() (*session.Manager, *session.MemoryRepo) {
	repo := session.NewMemoryRepo()
	return session.NewManager(repo, TestSecret, time.Hour, false, logging.Discard()), repo
}

// NewRenderer parses the embedded templates or fails the test.
func NewRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	rd, err := view.NewRenderer(logging.Discard())
	require.NoError(t, err)
	return rd
}

// AnonymousSession returns a session with no user.
func AnonymousSession() *session.Session {
	now := time.Now()
	return &session.Session{ID: "anon-session", CreatedAt: now, UpdatedAt: now, ExpiresAt: now.Add(time.Hour)}
}

// LoggedInSession returns a session signed in as TestUser.
func LoggedInSession() *session.Session {
	s := AnonymousSession()
	s.ID = "user-session"
	s.SignIn(TestUser)
	return s
}

// NewRequest creates a request bound to s the way the session middleware
// binds it.
func NewRequest(method, path string, s *session.Session) *http.Request {
	return bind(httptest.NewRequest(method, path, nil), s)
}

// NewFormRequest creates a urlencoded form post bound to s.
func NewFormRequest(path string, form url.Values, s *session.Session) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return bind(r, s)
}

func bind(r *http.Request, s *session.Session) *http.Request {
	if s == nil {
		return r
	}
	ctx := session.NewContext(r.Context(), s)
	ctx = apiclient.WithCredentials(ctx, apiclient.NewCredentials(s.Cookies))
	return r.WithContext(ctx)
}

// Location returns the redirect target of a recorded response.
func Location(w *httptest.ResponseRecorder) string {
	return w.Result().Header.Get("Location")
}
