package auth

import (
	"errors"
	"net/http"
	"strings"

	"bookweb/internal/apiclient"
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

type loginForm struct {
	LoginID  string `validate:"required,max=50"`
	Password string `validate:"required"`
}

type joinForm struct {
	LoginID         string `validate:"required,alphanum,min=3,max=30"`
	Name            string `validate:"required,max=50"`
	Password        string `validate:"required,min=4,max=100"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
}

type formData struct {
	LoginID string
	Name    string
	Errors  map[string]string
	Message string
}

// ShowLogin handles GET /login
func (h *HTTPHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s.IsLoggedIn() {
		httpx.SeeOther(w, r, "/")
		return
	}
	h.render(w, r, s, http.StatusOK, "login", "Log in", formData{})
}

// Login handles POST /login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	form := loginForm{
		LoginID:  strings.TrimSpace(r.PostFormValue("loginId")),
		Password: r.PostFormValue("password"),
	}
	data := formData{LoginID: form.LoginID}

	if verrs := httpx.ValidateStruct(form); len(verrs) > 0 {
		data.Errors = httpx.FieldErrors(verrs)
		h.render(w, r, s, http.StatusBadRequest, "login", "Log in", data)
		return
	}

	user, err := h.service.Login(r.Context(), form.LoginID, form.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			data.Message = "Invalid login id or password."
			h.render(w, r, s, http.StatusUnauthorized, "login", "Log in", data)
			return
		}
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("login failed")
		data.Message = "Login failed. Please try again."
		h.render(w, r, s, http.StatusBadGateway, "login", "Log in", data)
		return
	}

	s.SignIn(user)
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/")
}

// ShowJoin handles GET /join
func (h *HTTPHandler) ShowJoin(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	h.render(w, r, s, http.StatusOK, "join", "Sign up", formData{})
}

// Join handles POST /join
func (h *HTTPHandler) Join(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	form := joinForm{
		LoginID:         strings.TrimSpace(r.PostFormValue("loginId")),
		Name:            strings.TrimSpace(r.PostFormValue("name")),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("passwordConfirm"),
	}
	data := formData{LoginID: form.LoginID, Name: form.Name}

	if verrs := httpx.ValidateStruct(form); len(verrs) > 0 {
		data.Errors = httpx.FieldErrors(verrs)
		h.render(w, r, s, http.StatusBadRequest, "join", "Sign up", data)
		return
	}

	err := h.service.Join(r.Context(), apiclient.JoinRequest{LoginID: form.LoginID, Password: form.Password, Name: form.Name})
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			data.Message = "That login id is already taken."
			h.render(w, r, s, http.StatusConflict, "join", "Sign up", data)
			return
		}
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("join failed")
		data.Message = "Sign up failed. Please try again."
		h.render(w, r, s, http.StatusBadGateway, "join", "Sign up", data)
		return
	}

	s.AddFlash("Welcome! Please log in.")
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/login")
}

// Logout handles POST /logout. The local session is cleared even when the
// remote logout fails.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	err := h.service.Logout(r.Context())

	fresh := h.sessions.Clear(w, r, s)
	if err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("remote logout failed")
		fresh.AddFlash("Logout failed on the server. You have been signed out here.")
		httpx.Commit(h.sessions, h.log, w, r, fresh)
	}
	httpx.SeeOther(w, r, "/login")
}

func (h *HTTPHandler) render(w http.ResponseWriter, r *http.Request, s *session.Session, status int, page, title string, data formData) {
	p := view.NewPage(s, title, data)
	if len(p.Flash) > 0 {
		httpx.Commit(h.sessions, h.log, w, r, s)
	}
	h.views.Render(w, r, status, page, p)
}
