package store

import (
	"context"
	"time"

	"bookshelf/db/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Postgres wraps the shared pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates the pool and pings the database once.
func OpenPostgres(ctx context.Context, dsn string, pingTimeout time.Duration) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "create db pool")
	}

	pingCtx, cancel := WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *Postgres) Ping(ctx context.Context) error {
	return errors.Wrap(p.pool.Ping(ctx), "postgres ping")
}

func (p *Postgres) Close(context.Context) error {
	p.pool.Close()
	return nil
}

// MigratePostgres applies the embedded goose migrations to the pool's
// database.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}
	return errors.Wrap(goose.UpContext(ctx, db, "."), "apply migrations")
}
