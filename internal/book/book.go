package book

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no book matches an identifier.
	ErrNotFound = errors.New("book not found")
	// ErrForbidden is returned when the verified identity does not own the book.
	ErrForbidden = errors.New("forbidden")
)

// Book represents a book record. UserEmail is the owner field.
type Book struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Genre      string    `json:"genre"`
	Rating     float64   `json:"rating"`
	Summary    string    `json:"summary"`
	CoverImage string    `json:"coverImage"`
	UserEmail  string    `json:"userEmail"`
	CreatedAt  time.Time `json:"created_at"`
}

// Update carries the fields a PUT replaces. Owner and creation time are
// never touched.
type Update struct {
	Title      string
	Author     string
	Genre      string
	Rating     float64
	Summary    string
	CoverImage string
}

const (
	SortCreatedAt = "created_at"
	SortRating    = "rating"
)

// LatestLimit is the number of books served by the latest-books route.
const LatestLimit = 6

// Query defines the optional owner filter, ordering and limit for listing
// books. A zero Query lists every book in store order.
type Query struct {
	Owner string
	Sort  string
	Desc  bool
	Limit int
}

func (b Book) apply(u Update) Book {
	b.Title = u.Title
	b.Author = u.Author
	b.Genre = u.Genre
	b.Rating = u.Rating
	b.Summary = u.Summary
	b.CoverImage = u.CoverImage
	return b
}
