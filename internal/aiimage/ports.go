package aiimage

import (
	"context"

	"bookweb/internal/entity"
)

//go:generate mockgen -source=ports.go -destination=mock_ports_test.go -package=aiimage

// Request is what a generator gets to work from.
type Request struct {
	BookID int64  `json:"bookId,omitempty"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// Generator produces a cover image candidate.
type Generator interface {
	Generate(ctx context.Context, req Request) (entity.GeneratedImage, error)
}
