package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"bookweb/internal/httpx"
	"bookweb/internal/session"

	"github.com/sirupsen/logrus"
)

//go:embed templates static
var files embed.FS

// Header is what the site header needs to know about the session.
type Header struct {
	LoggedIn bool
	LoginID  string
	Name     string
}

// Page is the data every template receives.
type Page struct {
	Title  string
	Header Header
	Flash  []string
	Data   any
}

// NewPage builds page data and drains the session's flash queue, so the
// caller must commit the session afterwards.
func NewPage(s *session.Session, title string, data any) Page {
	p := Page{Title: title, Data: data}
	if s == nil {
		return p
	}
	p.Flash = s.PopFlash()
	if s.IsLoggedIn() {
		p.Header = Header{LoggedIn: true, LoginID: s.User.LoginID, Name: s.User.Name}
	}
	return p
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
	log   *logrus.Logger
}

func NewRenderer(log *logrus.Logger) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	entries, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, entry); err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry, err)
		}
		pages[strings.TrimSuffix(path.Base(entry), ".html")] = t
	}
	return &Renderer{pages: pages, log: log}, nil
}

// Render writes the named page with status. Rendering happens into a buffer
// so a template error can still produce a clean 500.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, p Page) {
	t, ok := rd.pages[name]
	if !ok {
		rd.log.WithField("page", name).Error("unknown page template")
		httpx.ErrorPage(w, r, http.StatusInternalServerError, "Page not available.")
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		rd.log.WithError(err).WithField("page", name).Error("render failed")
		httpx.ErrorPage(w, r, http.StatusInternalServerError, "Page not available.")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded stylesheet and icons under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var funcs = template.FuncMap{
	"initial": func(s string) string {
		for _, r := range s {
			return strings.ToUpper(string(r))
		}
		return "?"
	},
}
