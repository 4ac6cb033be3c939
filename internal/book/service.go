package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bookweb/internal/entity"
)

// ErrNoBookID is returned when an update draft does not name a book.
var ErrNoBookID = errors.New("draft has no book id")

// Service provides book registration and editing.
type Service struct {
	api API
}

// NewService creates a new book service.
func NewService(api API) *Service {
	return &Service{api: api}
}

// Register creates a book from d.
func (s *Service) Register(ctx context.Context, d entity.BookDraft) (entity.Book, error) {
	d.BookID = 0
	b, err := s.api.CreateBook(ctx, d)
	if err != nil {
		return entity.Book{}, fmt.Errorf("register book: %w", err)
	}
	return b, nil
}

// Update saves d over the book it names.
func (s *Service) Update(ctx context.Context, d entity.BookDraft) (entity.Book, error) {
	if d.BookID == 0 {
		return entity.Book{}, ErrNoBookID
	}
	b, err := s.api.UpdateBook(ctx, d)
	if err != nil {
		return entity.Book{}, fmt.Errorf("update book %d: %w", d.BookID, err)
	}
	return b, nil
}

type formValues interface {
	PostFormValue(key string) string
}

// DraftFromForm reads the register/update form. The book id is not taken
// from the form; callers set it from navigation state.
func DraftFromForm(r formValues) entity.BookDraft {
	imageID, _ := strconv.ParseInt(r.PostFormValue("imageId"), 10, 64)
	return entity.BookDraft{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Author:      strings.TrimSpace(r.PostFormValue("author")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		CoverImage:  strings.TrimSpace(r.PostFormValue("coverImage")),
		ImageID:     imageID,
	}
}
