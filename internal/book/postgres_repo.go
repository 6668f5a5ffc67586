package book

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookshelf/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const bookColumns = `id::text, title, author, genre, rating, summary, cover_image, user_email, created_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return store.WithTimeout(ctx, r.timeout)
}

// buildListSQL renders q into a SELECT. Sort keys are mapped through a fixed
// column set, never interpolated from input.
func buildListSQL(q Query) (string, []any) {
	var sb strings.Builder
	args := []any{}

	sb.WriteString("SELECT " + bookColumns + " FROM books")
	if q.Owner != "" {
		args = append(args, q.Owner)
		sb.WriteString(fmt.Sprintf(" WHERE user_email = $%d", len(args)))
	}

	sortCol := "created_at"
	switch q.Sort {
	case SortRating:
		sortCol = "rating"
	case SortCreatedAt:
		sortCol = "created_at"
	}
	order := "ASC"
	if q.Desc {
		order = "DESC"
	}
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s, id ASC", sortCol, order))

	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}
	return sb.String(), args
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, error) {
	query, args := buildListSQL(q)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query books")
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := scanBook(rows, &b); err != nil {
			return nil, errors.Wrap(err, "scan book")
		}
		out = append(out, b)
	}
	return out, errors.Wrap(rows.Err(), "iterate books")
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Book{}, store.ErrInvalidID
	}

	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1::uuid`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := scanBook(r.db.QueryRow(timeoutCtx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrap(err, "get book")
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) (string, error) {
	const query = `
		INSERT INTO books (title, author, genre, rating, summary, cover_image, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Author, b.Genre, b.Rating, b.Summary, b.CoverImage, b.UserEmail, b.CreatedAt,
	).Scan(&b.ID); err != nil {
		return "", errors.Wrap(err, "insert book")
	}
	return b.ID, nil
}

// Update only counts rows whose values actually change.
func (r *PostgresRepo) Update(ctx context.Context, id, owner string, u Update) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, store.ErrInvalidID
	}

	const query = `
		UPDATE books
		SET title = $2, author = $3, genre = $4, rating = $5, summary = $6, cover_image = $7
		WHERE id = $1::uuid
		  AND ($8::text = '' OR user_email = $8)
		  AND (title, author, genre, rating, summary, cover_image)
		      IS DISTINCT FROM ($2, $3, $4, $5::double precision, $6, $7)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id, u.Title, u.Author, u.Genre, u.Rating, u.Summary, u.CoverImage, owner)
	if err != nil {
		return 0, errors.Wrap(err, "update book")
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, owner string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, store.ErrInvalidID
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx,
		`DELETE FROM books WHERE id = $1::uuid AND ($2::text = '' OR user_email = $2)`, id, owner)
	if err != nil {
		return 0, errors.Wrap(err, "delete book")
	}
	return tag.RowsAffected(), nil
}

func scanBook(row pgx.Row, b *Book) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Genre, &b.Rating, &b.Summary, &b.CoverImage,
		&b.UserEmail, &b.CreatedAt,
	)
}
