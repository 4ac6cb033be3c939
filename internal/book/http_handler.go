package book

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

type formData struct {
	Draft   entity.BookDraft
	Action  string
	Errors  map[string]string
	Message string
}

// ShowRegister handles GET /register. A draft left by the AI image page
// pre-fills the form.
func (h *HTTPHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	var d entity.BookDraft
	if s.Nav.Draft != nil && s.Nav.Draft.BookID == 0 {
		d = *s.Nav.Draft
	}
	h.render(w, r, s, http.StatusOK, "register", "Register a book", formData{Draft: d, Action: "/register"})
}

// Register handles POST /register
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	d := DraftFromForm(r)
	data := formData{Draft: d, Action: "/register"}

	if verrs := httpx.ValidateStruct(d); len(verrs) > 0 {
		data.Errors = httpx.FieldErrors(verrs)
		h.render(w, r, s, http.StatusBadRequest, "register", "Register a book", data)
		return
	}
	if _, err := h.service.Register(r.Context(), d); err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("book register failed")
		data.Message = "Registration failed. Please try again."
		h.render(w, r, s, http.StatusBadGateway, "register", "Register a book", data)
		return
	}

	s.Nav.Draft = nil
	s.Nav.Image = nil
	s.AddFlash("Book registered.")
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/mypage")
}

// ShowUpdate handles GET /update. It needs a draft naming a book.
func (h *HTTPHandler) ShowUpdate(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.Nav.Draft == nil || s.Nav.Draft.BookID == 0 {
		h.precondition(w, r, s)
		return
	}
	h.render(w, r, s, http.StatusOK, "update", "Edit book", formData{Draft: *s.Nav.Draft, Action: "/update"})
}

// Update handles POST /update
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.Nav.Draft == nil || s.Nav.Draft.BookID == 0 {
		h.precondition(w, r, s)
		return
	}
	d := DraftFromForm(r)
	d.BookID = s.Nav.Draft.BookID
	data := formData{Draft: d, Action: "/update"}

	if verrs := httpx.ValidateStruct(d); len(verrs) > 0 {
		data.Errors = httpx.FieldErrors(verrs)
		h.render(w, r, s, http.StatusBadRequest, "update", "Edit book", data)
		return
	}
	if _, err := h.service.Update(r.Context(), d); err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("book update failed")
		data.Message = "Update failed. Please try again."
		h.render(w, r, s, http.StatusBadGateway, "update", "Edit book", data)
		return
	}

	s.Nav.Draft = nil
	s.Nav.Image = nil
	s.AddFlash("Book updated.")
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/mypage")
}

// NavigateAI handles POST /navigate/ai: the form as typed so far travels to
// the AI image page.
func (h *HTTPHandler) NavigateAI(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	d := DraftFromForm(r)
	if s.Nav.Draft != nil && r.PostFormValue("from") == "update" {
		d.BookID = s.Nav.Draft.BookID
	}
	s.Nav.Draft = &d
	s.Nav.Image = nil
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/ai-image")
}

func (h *HTTPHandler) precondition(w http.ResponseWriter, r *http.Request, s *session.Session) {
	s.AddFlash("Choose a book to edit from My Page.")
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/mypage")
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, s *session.Session, status int, page, title string, data formData) {
	p := view.NewPage(s, title, data)
	httpx.Commit(h.sessions, h.log, w, r, s)
	h.views.Render(w, r, status, page, p)
}
