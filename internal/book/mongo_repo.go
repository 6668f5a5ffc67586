package book

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

type bookDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Title      looseString        `bson:"title"`
	Author     looseString        `bson:"author"`
	Genre      looseString        `bson:"genre"`
	Rating     looseFloat         `bson:"rating"`
	Summary    looseString        `bson:"summary"`
	CoverImage looseString        `bson:"coverImage"`
	UserEmail  string             `bson:"userEmail"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d bookDocument) book() Book {
	return Book{
		ID:         d.ID.Hex(),
		Title:      string(d.Title),
		Author:     string(d.Author),
		Genre:      string(d.Genre),
		Rating:     float64(d.Rating),
		Summary:    string(d.Summary),
		CoverImage: string(d.CoverImage),
		UserEmail:  d.UserEmail,
		CreatedAt:  d.CreatedAt,
	}
}

// MongoRepo stores books in the "books" collection.
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

func listFilter(q Query) bson.D {
	if q.Owner == "" {
		return bson.D{}
	}
	return bson.D{{Key: "userEmail", Value: q.Owner}}
}

func listOptions(q Query) *options.FindOptions {
	opts := options.Find()
	dir := 1
	if q.Desc {
		dir = -1
	}
	switch q.Sort {
	case SortRating:
		opts.SetSort(bson.D{{Key: "rating", Value: dir}})
	case SortCreatedAt:
		opts.SetSort(bson.D{{Key: "created_at", Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return opts
}

func writeFilter(oid primitive.ObjectID, owner string) bson.D {
	filter := bson.D{{Key: "_id", Value: oid}}
	if owner != "" {
		filter = append(filter, bson.E{Key: "userEmail", Value: owner})
	}
	return filter
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Book, error) {
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(timeoutCtx, listFilter(q), listOptions(q))
	if err != nil {
		return nil, errors.Wrap(err, "find books")
	}
	var docs []bookDocument
	if err := cur.All(timeoutCtx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode books")
	}

	out := make([]Book, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.book())
	}
	return out, nil
}

func (r *MongoRepo) Get(ctx context.Context, id string) (Book, error) {
	oid, err := objectID(id)
	if err != nil {
		return Book{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var doc bookDocument
	if err := r.coll.FindOne(timeoutCtx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Book{}, ErrNotFound
		}
		return Book{}, errors.Wrap(err, "find book")
	}
	return doc.book(), nil
}

func (r *MongoRepo) Create(ctx context.Context, b *Book) (string, error) {
	doc := bookDocument{
		Title:      looseString(b.Title),
		Author:     looseString(b.Author),
		Genre:      looseString(b.Genre),
		Rating:     looseFloat(b.Rating),
		Summary:    looseString(b.Summary),
		CoverImage: looseString(b.CoverImage),
		UserEmail:  b.UserEmail,
		CreatedAt:  b.CreatedAt,
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(timeoutCtx, doc)
	if err != nil {
		return "", errors.Wrap(err, "insert book")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	b.ID = oid.Hex()
	return b.ID, nil
}

func (r *MongoRepo) Update(ctx context.Context, id, owner string, u Update) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: u.Title},
		{Key: "author", Value: u.Author},
		{Key: "genre", Value: u.Genre},
		{Key: "rating", Value: u.Rating},
		{Key: "summary", Value: u.Summary},
		{Key: "coverImage", Value: u.CoverImage},
	}}}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(timeoutCtx, writeFilter(oid, owner), update)
	if err != nil {
		return 0, errors.Wrap(err, "update book")
	}
	return res.ModifiedCount, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id, owner string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(timeoutCtx, writeFilter(oid, owner))
	if err != nil {
		return 0, errors.Wrap(err, "delete book")
	}
	return res.DeletedCount, nil
}
