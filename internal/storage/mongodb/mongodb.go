// Package mongodb provides MongoDB-backed session-history storage.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/pkg/config"
)

// Store implements MongoDB session-history storage
type Store struct {
	client  *mongo.Client
	records *mongo.Collection
	cfg     *config.MongoDBConfig
}

// NewStore creates a new MongoDB store
func NewStore(ctx context.Context, cfg *config.MongoDBConfig) (*Store, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(time.Duration(cfg.Timeout) * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &Store{
		client:  client,
		records: client.Database(cfg.Database).Collection("records"),
		cfg:     cfg,
	}

	if err := s.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return s, nil
}

func (s *Store) createIndexes(ctx context.Context) error {
	_, err := s.records.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ended_at", Value: -1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create record indexes: %w", err)
	}
	return nil
}

// SaveRecord stores a closure record
func (s *Store) SaveRecord(ctx context.Context, rec session.Record) error {
	_, err := s.records.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// ListRecords returns up to limit records, newest first
func (s *Store) ListRecords(ctx context.Context, limit int) ([]session.Record, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "ended_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := s.records.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var records []session.Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	return records, nil
}

// Ping checks if the storage is alive
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close closes the storage connection
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
