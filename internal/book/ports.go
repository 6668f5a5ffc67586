package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	// Create stores b and returns the store-assigned identifier.
	Create(ctx context.Context, b *Book) (string, error)
	// Update replaces the editable fields and reports how many records changed.
	// A non-empty owner restricts the write to a book with that owner.
	Update(ctx context.Context, id, owner string, u Update) (int64, error)
	// Delete removes the book and reports how many records went. A non-empty
	// owner restricts it like Update.
	Delete(ctx context.Context, id, owner string) (int64, error)
}
