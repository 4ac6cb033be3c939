package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookweb/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNoBook means the composer is not scoped to any book.
var ErrNoBook = errors.New("no book selected")

// ownerLookups bounds the concurrent member lookups of one comment list.
const ownerLookups = 8

// Service provides detail page operations.
type Service struct {
	api API
	log *logrus.Logger
}

// NewService creates a new detail service.
func NewService(api API, log *logrus.Logger) *Service {
	return &Service{api: api, log: log}
}

// LoadBook fetches the book named by the navigation payload. When the fetch
// fails the payload itself is shown.
func (s *Service) LoadBook(ctx context.Context, nav entity.Book) entity.Book {
	b, err := s.api.GetBook(ctx, nav.ID)
	if err != nil {
		s.log.WithError(err).WithField("book_id", nav.ID).Warn("book fetch failed, showing navigation data")
		return nav
	}
	return b
}

// LoadComments returns the book's comments. With resolveOwners set, each
// comment's author login id is looked up with one member request per
// comment. A failed list returns nil; a failed lookup leaves that comment
// without an owner.
func (s *Service) LoadComments(ctx context.Context, bookID int64, resolveOwners bool) []entity.Comment {
	comments, err := s.api.ListComments(ctx, bookID)
	if err != nil {
		s.log.WithError(err).WithField("book_id", bookID).Warn("comment list failed")
		return nil
	}
	if !resolveOwners {
		return comments
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookups)
	for i := range comments {
		memberID := comments[i].MemberID()
		if memberID == 0 {
			continue
		}
		g.Go(func() error {
			m, err := s.api.GetMember(gctx, memberID)
			if err != nil {
				s.log.WithError(err).WithField("member_id", memberID).Warn("comment owner lookup failed")
				return nil
			}
			comments[i].CommentLoginID = m.LoginID
			return nil
		})
	}
	_ = g.Wait()
	return comments
}

// OwnedComment finds commentID on the book and reports whether loginID wrote it.
func (s *Service) OwnedComment(ctx context.Context, bookID, commentID int64, loginID string) (entity.Comment, bool) {
	comments, err := s.api.ListComments(ctx, bookID)
	if err != nil {
		s.log.WithError(err).WithField("book_id", bookID).Warn("comment list failed")
		return entity.Comment{}, false
	}
	for _, c := range comments {
		if c.ID != commentID || c.MemberID() == 0 {
			continue
		}
		m, err := s.api.GetMember(ctx, c.MemberID())
		if err != nil {
			s.log.WithError(err).WithField("member_id", c.MemberID()).Warn("comment owner lookup failed")
			return entity.Comment{}, false
		}
		c.CommentLoginID = m.LoginID
		return c, CanModify(loginID, c)
	}
	return entity.Comment{}, false
}

// Submit sends the draft. With an edit target it updates that comment and
// never creates one. Blank content does nothing. On success the composer is
// cleared; on failure it keeps its target and the typed content.
func (s *Service) Submit(ctx context.Context, c *Composer, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if c.BookID() == 0 {
		return ErrNoBook
	}

	var err error
	if id, ok := c.Target(); ok {
		err = s.api.UpdateComment(ctx, id, content)
		if err != nil {
			err = fmt.Errorf("update comment %d: %w", id, err)
		}
	} else {
		err = s.api.CreateComment(ctx, c.BookID(), content)
		if err != nil {
			err = fmt.Errorf("create comment on book %d: %w", c.BookID(), err)
		}
	}
	if err != nil {
		c.keepDraft(content)
		return err
	}
	c.CancelEdit()
	return nil
}

// Delete removes a comment and returns the composer to viewing.
func (s *Service) Delete(ctx context.Context, c *Composer, commentID int64) error {
	if err := s.api.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment %d: %w", commentID, err)
	}
	c.CancelEdit()
	return nil
}

// CanModify reports whether loginID may see the edit and delete controls of
// comment. The remote API still authorizes the actual request.
func CanModify(loginID string, comment entity.Comment) bool {
	return loginID != "" && comment.CommentLoginID == loginID
}
