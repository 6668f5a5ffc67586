package comment

import (
	"context"
	"time"

	"bookshelf/internal/store"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type commentDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	BookID    string             `bson:"bookId"`
	Text      string             `bson:"text"`
	UserName  string             `bson:"userName,omitempty"`
	UserEmail string             `bson:"userEmail,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	Extra     bson.M             `bson:",inline"`
}

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return store.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Create(ctx context.Context, c *Comment) (string, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(timeoutCtx, commentDocument{
		BookID:    c.BookID,
		Text:      c.Text,
		UserName:  c.UserName,
		UserEmail: c.UserEmail,
		CreatedAt: c.CreatedAt,
		Extra:     stripReserved(c.Extra),
	})
	if err != nil {
		return "", errors.Wrap(err, "insert comment")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	c.ID = oid.Hex()
	return c.ID, nil
}

func (r *MongoRepo) ListByBook(ctx context.Context, bookID string) ([]Comment, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(timeoutCtx, bson.D{{Key: "bookId", Value: bookID}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	var docs []commentDocument
	if err := cur.All(timeoutCtx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode comments")
	}

	out := make([]Comment, 0, len(docs))
	for _, d := range docs {
		out = append(out, Comment{
			ID:        d.ID.Hex(),
			BookID:    d.BookID,
			Text:      d.Text,
			UserName:  d.UserName,
			UserEmail: d.UserEmail,
			CreatedAt: d.CreatedAt,
			Extra:     stripReserved(d.Extra),
		})
	}
	return out, nil
}
