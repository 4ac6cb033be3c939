package book

import (
	"context"

	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=book

// API is the book-writing part of the remote API.
type API interface {
	CreateBook(ctx context.Context, d entity.BookDraft) (entity.Book, error)
	UpdateBook(ctx context.Context, d entity.BookDraft) (entity.Book, error)
}
