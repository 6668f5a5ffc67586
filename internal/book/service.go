package book

import (
	"context"
	"errors"
	"time"

	"bookshelf/internal/store"
)

// Service provides book-related business logic.
type Service struct {
	repo             Repository
	enforceOwnership bool
	now              func() time.Time
}

// NewService creates a new book service. When enforceOwnership is false,
// update and delete accept any authenticated caller.
func NewService(repo Repository, enforceOwnership bool) *Service {
	return &Service{repo: repo, enforceOwnership: enforceOwnership, now: time.Now}
}

// List returns every book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx, Query{})
}

// Get returns the book with id, or nil when there is none.
func (s *Service) Get(ctx context.Context, id string) (*Book, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts b on behalf of identity. The owner field must name the
// caller.
func (s *Service) Create(ctx context.Context, identity string, b Book) (store.InsertResult, error) {
	if b.UserEmail != identity {
		return store.InsertResult{}, ErrForbidden
	}
	b.ID = ""
	b.CreatedAt = s.now().UTC()

	id, err := s.repo.Create(ctx, &b)
	if err != nil {
		return store.InsertResult{}, err
	}
	return store.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// ListByOwner returns the books owned by email, which must be the caller.
func (s *Service) ListByOwner(ctx context.Context, identity, email string) ([]Book, error) {
	if email != identity {
		return nil, ErrForbidden
	}
	return s.repo.List(ctx, Query{Owner: email})
}

// Delete removes the book with id. A missing book is reported as zero
// deletions.
func (s *Service) Delete(ctx context.Context, identity, id string) (store.DeleteResult, error) {
	n, err := s.repo.Delete(ctx, id, s.owner(identity))
	if err != nil {
		return store.DeleteResult{}, err
	}
	if n == 0 {
		if err := s.explainNoWrite(ctx, identity, id); err != nil {
			return store.DeleteResult{}, err
		}
	}
	return store.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}

// Update replaces the editable fields of the book with id and reports whether
// any record changed.
func (s *Service) Update(ctx context.Context, identity, id string, u Update) (bool, error) {
	n, err := s.repo.Update(ctx, id, s.owner(identity), u)
	if err != nil {
		return false, err
	}
	if n == 0 {
		if err := s.explainNoWrite(ctx, identity, id); err != nil {
			return false, err
		}
	}
	return n > 0, nil
}

// Latest returns the most recently created books, newest first.
func (s *Service) Latest(ctx context.Context) ([]Book, error) {
	return s.repo.List(ctx, Query{Sort: SortCreatedAt, Desc: true, Limit: LatestLimit})
}

// SortedByRating orders every book by rating: "desc" is descending, any other
// order is ascending.
func (s *Service) SortedByRating(ctx context.Context, order string) ([]Book, error) {
	return s.repo.List(ctx, Query{Sort: SortRating, Desc: order == "desc"})
}

// owner scopes a write to the caller's books when ownership is enforced.
func (s *Service) owner(identity string) string {
	if !s.enforceOwnership {
		return ""
	}
	return identity
}

// explainNoWrite runs after a scoped write touched nothing and tells a
// foreign book apart from a missing or unchanged one.
func (s *Service) explainNoWrite(ctx context.Context, identity, id string) error {
	if !s.enforceOwnership {
		return nil
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if b.UserEmail != identity {
		return ErrForbidden
	}
	return nil
}
