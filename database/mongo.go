package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store over a MongoDB database; each collection name
// maps straight to a Mongo collection.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore connects and pings within a bounded context so a dead
// backend fails fast at startup instead of on first query.
func NewMongoStore(uri, dbName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return &MongoStore{db: client.Database(dbName)}, nil
}

// newContext creates a context with the given timeout when the caller did
// not bring a deadline of its own.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}

func (s *MongoStore) Select(ctx context.Context, collection string, filter Filter, order *Order) ([]Record, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	for field, value := range filter {
		query[field] = value
	}
	opts := options.Find().SetProjection(bson.M{"_id": 0})
	if order != nil && order.Field != "" {
		direction := 1
		if !order.Ascending {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: order.Field, Value: direction}})
	}

	cursor, err := s.db.Collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	records := []Record{}
	for cursor.Next(ctx) {
		var rec Record
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode %s record: %w", collection, err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s cursor: %w", collection, err)
	}
	return records, nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, fields Record) (Record, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().Format(time.RFC3339)
	rec := CloneRecord(fields)
	rec["id"] = uuid.New().String()
	rec["created_at"] = now
	rec["updated_at"] = now

	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(rec)); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return rec, nil
}

func (s *MongoStore) Update(ctx context.Context, collection string, matchField string, matchValue any, patch Record) (Record, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	for k, v := range patch {
		if k == "id" || k == "created_at" {
			continue
		}
		set[k] = v
	}
	set["updated_at"] = time.Now().Format(time.RFC3339)

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 0})
	var updated Record
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{matchField: matchValue}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("update %s where %s=%v: %w", collection, matchField, matchValue, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return updated, nil
}

func (s *MongoStore) Remove(ctx context.Context, collection string, matchField string, matchValue any) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.Collection(collection).DeleteMany(ctx, bson.M{matchField: matchValue}); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", collection, err)
	}
	return nil
}
