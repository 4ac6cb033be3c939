package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bookweb/internal/entity"
	"bookweb/internal/logging"
	"bookweb/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	rd, err := NewRenderer(logging.Discard())
	require.NoError(t, err)
	for _, name := range []string{"home", "login", "join", "detail", "mypage", "mypage_confirm", "register", "update", "aiimage"} {
		assert.Contains(t, rd.pages, name)
	}
}

func TestNewPage_PopsFlashAndFillsHeader(t *testing.T) {
	s := &session.Session{ID: "s1"}
	s.SignIn(entity.User{LoginID: "reader01", Name: "Reader"})
	s.AddFlash("Deleted.")

	p := NewPage(s, "My Page", nil)

	assert.Equal(t, []string{"Deleted."}, p.Flash)
	assert.Empty(t, s.Flash)
	assert.True(t, p.Header.LoggedIn)
	assert.Equal(t, "Reader", p.Header.Name)
}

func TestNewPage_NilSession(t *testing.T) {
	p := NewPage(nil, "x", nil)
	assert.False(t, p.Header.LoggedIn)
	assert.Nil(t, p.Flash)
}

func TestRenderer_Render(t *testing.T) {
	rd, err := NewRenderer(logging.Discard())
	require.NoError(t, err)

	t.Run("header reflects session", func(t *testing.T) {
		w := httptest.NewRecorder()
		p := Page{Title: "Home", Header: Header{LoggedIn: true, LoginID: "reader01"}, Flash: []string{"<b>hi</b>"}}
		rd.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "home", p)

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `id="logout"`)
		assert.NotContains(t, body, `id="login-link"`)
		assert.Contains(t, body, "&lt;b&gt;hi&lt;/b&gt;")
		assert.Contains(t, body, "<title>Home · Book Museum</title>")
	})

	t.Run("unknown page", func(t *testing.T) {
		w := httptest.NewRecorder()
		rd.Render(w, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "missing", Page{})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestStatic(t *testing.T) {
	w := httptest.NewRecorder()
	Static().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".site-header")
}
