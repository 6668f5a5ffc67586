package comment

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	comments []Comment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(_ context.Context, c *Comment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	stored := *c
	stored.Extra = copyExtra(c.Extra)
	r.comments = append(r.comments, stored)
	return c.ID, nil
}

func (r *MemoryRepo) ListByBook(_ context.Context, bookID string) ([]Comment, error) {
	r.mu.RLock()
	out := []Comment{}
	// Walk backwards so equal timestamps still come out newest first.
	for i := len(r.comments) - 1; i >= 0; i-- {
		if r.comments[i].BookID == bookID {
			c := r.comments[i]
			c.Extra = copyExtra(c.Extra)
			out = append(out, c)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copyExtra(extra map[string]any) map[string]any {
	if len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
