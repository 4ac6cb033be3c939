package detail

import (
	"context"

	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=detail

// API is the slice of the remote API the detail page talks to.
type API interface {
	GetBook(ctx context.Context, bookID int64) (entity.Book, error)
	ListComments(ctx context.Context, bookID int64) ([]entity.Comment, error)
	CreateComment(ctx context.Context, bookID int64, content string) error
	UpdateComment(ctx context.Context, commentID int64, content string) error
	DeleteComment(ctx context.Context, commentID int64) error
	GetMember(ctx context.Context, memberID int64) (entity.Member, error)
}
