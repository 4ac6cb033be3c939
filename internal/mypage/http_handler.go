package mypage

import (
	"net/http"
	"strconv"

	"bookweb/internal/entity"
	"bookweb/internal/httpx"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/sirupsen/logrus"
)

const myPagePath = "/mypage"

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
	MyBooks    []entity.Book
	LikedBooks []entity.Book
}

type confirmData struct {
	Book entity.Book
}

// Show handles GET /mypage. The redirect after a delete or like renders the
// lists those actions left in the session; any other visit loads both.
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if !s.TakeResume(myPagePath) {
		s.MyPage = h.service.Load(r.Context())
	}
	p := view.NewPage(s, "My Page", pageData{MyBooks: s.MyPage.MyBooks, LikedBooks: s.MyPage.LikedBooks})
	httpx.Commit(h.sessions, h.log, w, r, s)
	h.views.Render(w, r, http.StatusOK, "mypage", p)
}

// Delete handles POST /mypage/books/{id}/delete. Without a confirm value it
// asks. "yes" deletes; anything else goes back without calling the API.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := bookID(r)
	if !ok {
		httpx.ErrorPage(w, r, http.StatusBadRequest, "Invalid book id.")
		return
	}

	switch r.PostFormValue("confirm") {
	case "":
		book, found := Find(s.MyPage.MyBooks, id)
		if !found {
			book = entity.Book{ID: id}
		}
		p := view.NewPage(s, "Delete book", confirmData{Book: book})
		httpx.Commit(h.sessions, h.log, w, r, s)
		h.views.Render(w, r, http.StatusOK, "mypage_confirm", p)
		return
	case "yes":
		if err := h.service.Delete(r.Context(), &s.MyPage, id); err != nil {
			h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("book delete failed")
			s.AddFlash("Delete failed.")
		} else {
			s.AddFlash("Deleted.")
		}
	}
	h.backToMyPage(w, r, s)
}

// ToggleLike handles POST /mypage/likes/{id}
func (h *HTTPHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := bookID(r)
	if !ok {
		httpx.ErrorPage(w, r, http.StatusBadRequest, "Invalid book id.")
		return
	}
	if _, err := h.service.ToggleLike(r.Context(), &s.MyPage, id); err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("like toggle failed")
		s.AddFlash("Could not update like.")
	}
	h.backToMyPage(w, r, s)
}

// Edit handles POST /mypage/books/{id}/edit: the book becomes the update
// form's navigation payload.
func (h *HTTPHandler) Edit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := bookID(r)
	if !ok {
		httpx.ErrorPage(w, r, http.StatusBadRequest, "Invalid book id.")
		return
	}
	book, found := Find(s.MyPage.MyBooks, id)
	if !found {
		s.AddFlash("That book is no longer on your page.")
		httpx.Commit(h.sessions, h.log, w, r, s)
		httpx.SeeOther(w, r, myPagePath)
		return
	}
	draft := book.Draft()
	s.Nav.Draft = &draft
	s.Nav.Image = nil
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, "/update")
}

func (h *HTTPHandler) backToMyPage(w http.ResponseWriter, r *http.Request, s *session.Session) {
	s.ResumeOn(myPagePath)
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, myPagePath)
}

func bookID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
