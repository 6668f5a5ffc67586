package comment

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=comment

// Repository defines the contract for comment storage.
type Repository interface {
	Create(ctx context.Context, c *Comment) (string, error)
	// ListByBook returns the comments for bookID, newest first.
	ListByBook(ctx context.Context, bookID string) ([]Comment, error)
}
