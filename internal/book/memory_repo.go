package book

import (
	"context"
	"sort"
	"sync"

	"bookshelf/internal/store"

	"github.com/google/uuid"
)

// MemoryRepo keeps books in process memory. Used for local development and
// end-to-end tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	books map[string]Book
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{books: make(map[string]Book)}
}

func (r *MemoryRepo) List(_ context.Context, q Query) ([]Book, error) {
	r.mu.RLock()
	out := make([]Book, 0, len(r.order))
	for _, id := range r.order {
		b := r.books[id]
		if q.Owner != "" && b.UserEmail != q.Owner {
			continue
		}
		out = append(out, b)
	}
	r.mu.RUnlock()

	switch q.Sort {
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			if q.Desc {
				return out[i].Rating > out[j].Rating
			}
			return out[i].Rating < out[j].Rating
		})
	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			if q.Desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *MemoryRepo) Get(_ context.Context, id string) (Book, error) {
	if err := validateMemoryID(id); err != nil {
		return Book{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) Create(_ context.Context, b *Book) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = uuid.NewString()
	r.books[b.ID] = *b
	r.order = append(r.order, b.ID)
	return b.ID, nil
}

func (r *MemoryRepo) Update(_ context.Context, id, owner string, u Update) (int64, error) {
	if err := validateMemoryID(id); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.books[id]
	if !ok || !ownedBy(current, owner) {
		return 0, nil
	}
	updated := current.apply(u)
	if updated == current {
		return 0, nil
	}
	r.books[id] = updated
	return 1, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id, owner string) (int64, error) {
	if err := validateMemoryID(id); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.books[id]; !ok || !ownedBy(current, owner) {
		return 0, nil
	}
	delete(r.books, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func ownedBy(b Book, owner string) bool {
	return owner == "" || b.UserEmail == owner
}

func validateMemoryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}
