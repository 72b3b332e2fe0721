package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists snapshots in a MongoDB collection so multiple
// instances and operators share one snapshot history.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the connection string. Empty defaults to
	// mongodb://localhost:27017.
	URI string

	// Database is the database name. Empty defaults to "archscope".
	Database string

	// Collection is the collection name. Empty defaults to "snapshots".
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "archscope"
	}
	if cfg.Collection == "" {
		cfg.Collection = "snapshots"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Save stores a snapshot, replacing any document with the same id.
func (s *MongoStore) Save(ctx context.Context, snap *Snapshot) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, opts); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by id.
func (s *MongoStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap Snapshot
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return &snap, nil
}

// List returns all snapshots, newest first.
func (s *MongoStore) List(ctx context.Context) ([]*Snapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var snaps []*Snapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	if snaps == nil {
		snaps = make([]*Snapshot, 0)
	}
	return snaps, nil
}

// Delete removes a snapshot.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
