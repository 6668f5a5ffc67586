package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	BooksCollection    = "books"
	CommentsCollection = "comments"
)

// Mongo owns the process-wide client. It is created once at start and closed
// on shutdown.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// ConnectMongo dials the cluster using the stable v1 server API and pings the
// primary before returning.
func ConnectMongo(ctx context.Context, uri, database string, pingTimeout time.Duration) (*Mongo, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "mongo connect")
	}

	m := &Mongo{client: client, db: client.Database(database)}

	pingCtx, cancel := WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := m.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return m, nil
}

func (m *Mongo) Database() *mongo.Database {
	return m.db
}

func (m *Mongo) Books() *mongo.Collection {
	return m.db.Collection(BooksCollection)
}

func (m *Mongo) Comments() *mongo.Collection {
	return m.db.Collection(CommentsCollection)
}

func (m *Mongo) Ping(ctx context.Context) error {
	return errors.Wrap(m.client.Ping(ctx, readpref.Primary()), "mongo ping")
}

func (m *Mongo) Close(ctx context.Context) error {
	return errors.Wrap(m.client.Disconnect(ctx), "mongo disconnect")
}
