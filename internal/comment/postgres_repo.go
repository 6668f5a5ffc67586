package comment

import (
	"context"
	"time"

	"bookshelf/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

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

func (r *PostgresRepo) Create(ctx context.Context, c *Comment) (string, error) {
	const query = `
		INSERT INTO comments (book_id, text, user_name, user_email, created_at, extra)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text`

	extra := stripReserved(c.Extra)
	if extra == nil {
		extra = map[string]any{}
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	if err := r.db.QueryRow(timeoutCtx, query,
		c.BookID, c.Text, c.UserName, c.UserEmail, c.CreatedAt, extra,
	).Scan(&c.ID); err != nil {
		return "", errors.Wrap(err, "insert comment")
	}
	return c.ID, nil
}

func (r *PostgresRepo) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	const query = `
		SELECT id::text, book_id, text, user_name, user_email, created_at, extra
		FROM comments
		WHERE book_id = $1
		ORDER BY created_at DESC, id DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "query comments")
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BookID, &c.Text, &c.UserName, &c.UserEmail, &c.CreatedAt, &c.Extra); err != nil {
			return nil, errors.Wrap(err, "scan comment")
		}
		c.Extra = stripReserved(c.Extra)
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "iterate comments")
}
