package aiimage

import (
	"errors"
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
	Draft  entity.BookDraft
	Image  *entity.GeneratedImage
	Prompt string
	Error  string
}

// Show handles GET /ai-image. It is only reachable with a draft from the
// register or update form.
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.Nav.Draft == nil {
		h.invalidAccess(w, r, s)
		return
	}
	h.render(w, r, s, pageData{Draft: *s.Nav.Draft, Image: s.Nav.Image})
}

// Generate handles POST /ai-image/generate
func (h *HTTPHandler) Generate(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.Nav.Draft == nil {
		h.invalidAccess(w, r, s)
		return
	}
	d := *s.Nav.Draft
	prompt := r.PostFormValue("prompt")
	data := pageData{Draft: d, Image: s.Nav.Image, Prompt: prompt}

	img, err := h.service.Generate(r.Context(), s.ID, Request{BookID: d.BookID, Title: d.Title, Prompt: prompt})
	switch {
	case errors.Is(err, ErrEmptyPrompt):
		s.AddFlash("Describe the image you want first.")
	case err != nil:
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("image generation failed")
		data.Error = "Image generation failed. Please try again."
	default:
		s.Nav.Image = &img
		data.Image = &img
	}
	h.render(w, r, s, data)
}

// Select handles POST /ai-image/select: the generated image becomes the
// draft's cover and the user goes back to the form.
func (h *HTTPHandler) Select(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.Nav.Draft == nil {
		h.invalidAccess(w, r, s)
		return
	}
	if s.Nav.Image == nil {
		s.AddFlash("Generate an image first.")
		h.render(w, r, s, pageData{Draft: *s.Nav.Draft})
		return
	}

	d := *s.Nav.Draft
	d.CoverImage = s.Nav.Image.ImgURL
	d.ImageID = s.Nav.Image.ImgID
	s.Nav.Draft = &d
	s.Nav.Image = nil
	httpx.Commit(h.sessions, h.log, w, r, s)
	if d.BookID != 0 {
		httpx.SeeOther(w, r, "/update")
		return
	}
	httpx.SeeOther(w, r, "/register")
}

func (h *HTTPHandler) invalidAccess(w http.ResponseWriter, r *http.Request, s *session.Session) {
	s.AddFlash("Invalid access. Start from the book registration page.")
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/register")
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, s *session.Session, data pageData) {
	p := view.NewPage(s, "AI cover image", data)
	httpx.Commit(h.sessions, h.log, w, r, s)
	h.views.Render(w, r, http.StatusOK, "aiimage", p)
}
