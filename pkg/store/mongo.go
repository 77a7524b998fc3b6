package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pinboard/pkg/errors"
)

// Defaults for [NewMongoStore].
const (
	DefaultDatabase   = "pinboard"
	DefaultCollection = "designs"
)

// MongoStore keeps records in a MongoDB collection with a unique index on
// (pin_count, variant).
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoOptions configures [NewMongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects, pings the server and ensures the index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "ping mongodb")
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "pin_count", Value: 1}, {Key: "variant", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "create design index")
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func designFilter(pinCount, id int) bson.D {
	return bson.D{{Key: "pin_count", Value: pinCount}, {Key: "variant", Value: id}}
}

func (s *MongoStore) Put(ctx context.Context, r *Record) error {
	_, err := s.coll.ReplaceOne(ctx, designFilter(r.PinCount, r.Variant), r, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeBackend, err, "store p%d-v%d", r.PinCount, r.Variant)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, pinCount, id int) (*Record, error) {
	var r Record
	err := s.coll.FindOne(ctx, designFilter(pinCount, id)).Decode(&r)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeNotFound, "no stored design p%d-v%d", pinCount, id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "load p%d-v%d", pinCount, id)
	}
	return &r, nil
}

func (s *MongoStore) List(ctx context.Context, pinCount int) ([]*Record, error) {
	cur, err := s.coll.Find(ctx, bson.D{{Key: "pin_count", Value: pinCount}},
		options.Find().SetSort(bson.D{{Key: "variant", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackend, err, "list designs")
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode designs: %w", err)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
