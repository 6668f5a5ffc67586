package comment

import (
	"context"
	"time"

	"bookshelf/internal/store"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create stores c with a server-assigned creation time.
func (s *Service) Create(ctx context.Context, c Comment) (store.InsertResult, error) {
	c.ID = ""
	c.CreatedAt = s.now().UTC()
	c.Extra = stripReserved(c.Extra)

	id, err := s.repo.Create(ctx, &c)
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (s *Service) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	return s.repo.ListByBook(ctx, bookID)
}
