package home

import (
	"context"
	"sort"

	"bookweb/internal/entity"

	"github.com/sirupsen/logrus"
)

// PopularCount is how many books the popular row shows.
const PopularCount = 4

type Service struct {
	api API
	log *logrus.Logger
}

func NewService(api API, log *logrus.Logger) *Service {
	return &Service{api: api, log: log}
}

// Books returns the most liked books and the full list. A failed fetch
// yields two empty lists.
func (s *Service) Books(ctx context.Context) (popular, all []entity.Book) {
	all, err := s.api.ListBooks(ctx)
	if err != nil {
		s.log.WithError(err).Warn("book list failed")
		return nil, nil
	}
	return Popular(all, PopularCount), all
}

// Popular returns up to n books ordered by like count, ties keeping list order.
func Popular(books []entity.Book, n int) []entity.Book {
	sorted := make([]entity.Book, len(books))
	copy(sorted, books)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LikeCount > sorted[j].LikeCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
