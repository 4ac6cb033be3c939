package home

import (
	"context"

	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=home

type API interface {
	ListBooks(ctx context.Context) ([]entity.Book, error)
}
