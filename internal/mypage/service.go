package mypage

import (
	"context"
	"fmt"

	"bookweb/internal/entity"
	"bookweb/internal/session"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service provides the personal page operations.
type Service struct {
	api API
	log *logrus.Logger
}

// NewService creates a new mypage service.
func NewService(api API, log *logrus.Logger) *Service {
	return &Service{api: api, log: log}
}

// Load fetches both lists concurrently. A failed list is logged and left
// empty; the other one is still returned.
func (s *Service) Load(ctx context.Context) session.MyPageState {
	var st session.MyPageState
	var g errgroup.Group
	g.Go(func() error {
		st.MyBooks = s.myBooks(ctx)
		return nil
	})
	g.Go(func() error {
		books, err := s.api.LikedBooks(ctx)
		if err != nil {
			s.log.WithError(err).Warn("liked books fetch failed")
			return nil
		}
		st.LikedBooks = books
		return nil
	})
	_ = g.Wait()
	return st
}

func (s *Service) myBooks(ctx context.Context) []entity.Book {
	books, err := s.api.MyBooks(ctx)
	if err != nil {
		s.log.WithError(err).Warn("my books fetch failed")
		return nil
	}
	return books
}

// Delete removes one of the user's books and refetches only that list.
func (s *Service) Delete(ctx context.Context, st *session.MyPageState, bookID int64) error {
	if err := s.api.DeleteMyBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book %d: %w", bookID, err)
	}
	st.MyBooks = s.myBooks(ctx)
	return nil
}

// ToggleLike flips the like on bookID and patches the liked list with the
// server's answer. Nothing changes before the answer arrives.
func (s *Service) ToggleLike(ctx context.Context, st *session.MyPageState, bookID int64) (entity.LikeStatus, error) {
	status, err := s.api.ToggleLike(ctx, bookID)
	if err != nil {
		return entity.LikeStatus{}, fmt.Errorf("toggle like on book %d: %w", bookID, err)
	}
	st.LikedBooks = ApplyLike(st.LikedBooks, bookID, status)
	return status, nil
}

// ApplyLike returns the liked list after a toggle: an unlike removes exactly
// bookID, a like marks it. Other entries are untouched.
func ApplyLike(liked []entity.Book, bookID int64, status entity.LikeStatus) []entity.Book {
	out := make([]entity.Book, 0, len(liked))
	for _, b := range liked {
		if b.ID == bookID {
			if !status.Liked {
				continue
			}
			b.Liked = true
		}
		out = append(out, b)
	}
	return out
}

// Find returns the book with id from list.
func Find(list []entity.Book, id int64) (entity.Book, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return entity.Book{}, false
}
