package app

import (
	"context"
	"fmt"

	"bookshelf/internal/book"
	"bookshelf/internal/comment"
	"bookshelf/internal/config"
	"bookshelf/internal/store"

	"github.com/rs/zerolog/log"
)

// Repositories bundles the book and comment stores backed by one connection.
type Repositories struct {
	Books    book.Repository
	Comments comment.Repository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// OpenRepositories connects to the store selected by cfg.StoreDriver.
func OpenRepositories(ctx context.Context, cfg config.Config) (*Repositories, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		uri := cfg.MongoURI()
		m, err := store.ConnectMongo(ctx, uri, cfg.MongoDatabase, cfg.QueryTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect mongo %s: %w", config.RedactURI(uri), err)
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
		return &Repositories{
			Books:    book.NewMongoRepo(m.Books(), cfg.QueryTimeout),
			Comments: comment.NewMongoRepo(m.Comments(), cfg.QueryTimeout),
			ping:     m.Ping,
			close:    m.Close,
		}, nil

	case config.DriverPostgres:
		pg, err := store.OpenPostgres(ctx, cfg.PostgresDSN, cfg.QueryTimeout)
		if err != nil {
			return nil, fmt.Errorf("open postgres %s: %w", config.RedactURI(cfg.PostgresDSN), err)
		}
		if cfg.AutoMigrate {
			if err := store.MigratePostgres(ctx, pg.Pool()); err != nil {
				_ = pg.Close(ctx)
				return nil, err
			}
			log.Info().Msg("database migrations applied")
		}
		log.Info().Msg("database connection OK")
		return &Repositories{
			Books:    book.NewPostgresRepo(pg.Pool(), cfg.QueryTimeout),
			Comments: comment.NewPostgresRepo(pg.Pool(), cfg.QueryTimeout),
			ping:     pg.Ping,
			close:    pg.Close,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return NewMemoryRepositories(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// NewMemoryRepositories returns empty process-local repositories.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Books:    book.NewMemoryRepo(),
		Comments: comment.NewMemoryRepo(),
	}
}

// Ping reports whether the backing store is reachable.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

func (r *Repositories) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}
