// Package storage persists closure records of finished terminal sessions.
// Live session state never touches storage; only the registry's closure
// records do, so a backend outage degrades history, not sharing.
package storage

import (
	"context"
	"fmt"

	"github.com/termcastio/termcast-server/internal/session"
	"github.com/termcastio/termcast-server/internal/storage/memory"
	"github.com/termcastio/termcast-server/internal/storage/mongodb"
	"github.com/termcastio/termcast-server/pkg/config"
)

// History defines the interface for session-history storage operations
type History interface {
	// SaveRecord stores a closure record
	SaveRecord(ctx context.Context, rec session.Record) error

	// ListRecords returns up to limit records, newest first
	ListRecords(ctx context.Context, limit int) ([]session.Record, error)

	// Ping checks if the storage is alive
	Ping(ctx context.Context) error

	// Close closes the storage connection
	Close() error
}

// Type defines the type of storage backend
type Type string

const (
	// TypeMemory uses in-memory storage (for testing/development)
	TypeMemory Type = "memory"
	// TypeMongoDB uses MongoDB storage (for production)
	TypeMongoDB Type = "mongodb"
)

// New creates a history backend based on the configuration
func New(ctx context.Context, cfg *config.Config) (History, error) {
	switch Type(cfg.Storage.Type) {
	case TypeMemory, "":
		// Default to memory if not specified
		return memory.NewStore(), nil

	case TypeMongoDB:
		store, err := mongodb.NewStore(ctx, &cfg.Storage.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create MongoDB backend: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
