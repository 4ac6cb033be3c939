package home

import (
	"net/http"

	"bookweb/internal/entity"
	"bookweb/internal/httpx"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/sirupsen/logrus"
)

type HTTPHandler struct {
	service  *Service
	sessions *session.Manager
	views    *view.Renderer
	log      *logrus.Logger
}

func NewHTTPHandler(service *Service, sessions *session.Manager, views *view.Renderer, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, sessions: sessions, views: views, log: log}
}

type pageData struct {
	Popular []entity.Book
	Books   []entity.Book
}

// Show handles GET /
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	popular, all := h.service.Books(r.Context())
	p := view.NewPage(s, "", pageData{Popular: popular, Books: all})
	if s != nil && len(p.Flash) > 0 {
		httpx.Commit(h.sessions, h.log, w, r, s)
	}
	h.views.Render(w, r, http.StatusOK, "home", p)
}
