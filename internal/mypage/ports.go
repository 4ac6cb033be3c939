package mypage

import (
	"context"

	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=mypage

// API is the slice of the remote API the personal page talks to.
type API interface {
	MyBooks(ctx context.Context) ([]entity.Book, error)
	LikedBooks(ctx context.Context) ([]entity.Book, error)
	DeleteMyBook(ctx context.Context, bookID int64) error
	ToggleLike(ctx context.Context, bookID int64) (entity.LikeStatus, error)
}
