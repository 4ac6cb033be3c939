package detail

import (
	"net/http"
	"strconv"
	"strings"

	"bookweb/internal/entity"
	"bookweb/internal/httpx"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/sirupsen/logrus"
)

const detailPath = "/detail"

type HTTPHandler struct {
	service  *Service
	sessions *session.Manager
	views    *view.Renderer
	log      *logrus.Logger
}

func NewHTTPHandler(service *Service, sessions *session.Manager, views *view.Renderer, log *logrus.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, sessions: sessions, views: views, log: log}
}

type commentRow struct {
	entity.Comment
	Owned   bool
	Editing bool
}

type pageData struct {
	Book     entity.Book
	Comments []commentRow
	LoggedIn bool
	Mode     string
	Editing  bool
	Draft    string
}

// Show handles GET /detail. Only the redirect that follows a composer action
// keeps the composer; any other visit starts with an empty form.
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if s == nil {
		httpx.SeeOther(w, r, "/")
		return
	}
	if s.Nav.Book == nil {
		s.AddFlash("Choose a book first.")
		httpx.Commit(h.sessions, h.log, w, r, s)
		httpx.SeeOther(w, r, "/")
		return
	}

	c := NewComposer(&s.Compose)
	if !s.TakeResume(detailPath) || !c.Scoped(s.Nav.Book.ID) {
		c.Reset(s.Nav.Book.ID)
	}

	book := h.service.LoadBook(r.Context(), *s.Nav.Book)
	loginID := s.LoginID()
	comments := h.service.LoadComments(r.Context(), book.ID, s.IsLoggedIn())

	target, editing := c.Target()
	rows := make([]commentRow, 0, len(comments))
	for _, cm := range comments {
		rows = append(rows, commentRow{
			Comment: cm,
			Owned:   CanModify(loginID, cm),
			Editing: editing && cm.ID == target,
		})
	}

	p := view.NewPage(s, book.Title, pageData{
		Book:     book,
		Comments: rows,
		LoggedIn: s.IsLoggedIn(),
		Mode:     c.Mode().String(),
		Editing:  editing,
		Draft:    c.Draft(),
	})
	httpx.Commit(h.sessions, h.log, w, r, s)
	h.views.Render(w, r, http.StatusOK, "detail", p)
}

// Navigate handles POST /navigate/detail. The posted card becomes the
// navigation payload and the composer starts over.
func (h *HTTPHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, err := strconv.ParseInt(r.PostFormValue("bookId"), 10, 64)
	if s == nil || err != nil || id <= 0 {
		httpx.SeeOther(w, r, "/")
		return
	}
	s.Nav.Book = &entity.Book{
		ID:     id,
		Title:  r.PostFormValue("title"),
		Author: r.PostFormValue("author"),
		ImgURL: r.PostFormValue("imgUrl"),
	}
	NewComposer(&s.Compose).Reset(id)
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, detailPath)
}

// Submit handles POST /detail/comments
func (h *HTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	c := NewComposer(&s.Compose)
	if err := h.service.Submit(r.Context(), c, r.PostFormValue("content")); err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("comment submit failed")
	}
	h.backToDetail(w, r, s)
}

// StartEdit handles POST /detail/comments/{id}/edit
func (h *HTTPHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := commentID(r)
	if !ok {
		httpx.ErrorPage(w, r, http.StatusBadRequest, "Invalid comment id.")
		return
	}
	c := NewComposer(&s.Compose)
	if comment, owned := h.service.OwnedComment(r.Context(), c.BookID(), id, s.LoginID()); owned {
		c.StartEdit(comment)
	}
	h.backToDetail(w, r, s)
}

// CancelEdit handles POST /detail/comments/cancel
func (h *HTTPHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	NewComposer(&s.Compose).CancelEdit()
	h.backToDetail(w, r, s)
}

// Delete handles POST /detail/comments/{id}/delete
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id, ok := commentID(r)
	if !ok {
		httpx.ErrorPage(w, r, http.StatusBadRequest, "Invalid comment id.")
		return
	}
	if err := h.service.Delete(r.Context(), NewComposer(&s.Compose), id); err != nil {
		h.log.WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Warn("comment delete failed")
	}
	h.backToDetail(w, r, s)
}

func (h *HTTPHandler) backToDetail(w http.ResponseWriter, r *http.Request, s *session.Session) {
	s.ResumeOn(detailPath)
	httpx.Commit(h.sessions, h.log, w, r, s)
	httpx.SeeOther(w, r, detailPath)
}

func commentID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	return id, err == nil && id > 0
}
