// Package store holds the connection plumbing shared by the book and comment
// repositories together with the acknowledgment shapes returned to callers.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidID is returned when an identifier does not match the key format
// of the active store (ObjectID hex for Mongo, UUID for Postgres and memory).
var ErrInvalidID = errors.New("invalid identifier")

// InsertResult acknowledges a single-document insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// DeleteResult acknowledges a delete by identifier.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// WithTimeout bounds a store call. A zero timeout keeps the parent deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
