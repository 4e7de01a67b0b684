// Package store persists workflow documents and their latest lint results.
//
// This package defines an interface for document storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for the API server
//
// Records are append-or-replace: saving under an existing ID overwrites the
// document text and lint result while keeping the creation timestamp.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/floweave/floweave/pkg/validate"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
)

// Record is one stored workflow document with its latest lint outcome.
type Record struct {
	ID        string          `bson:"_id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Text      string          `bson:"text" json:"text"`
	Result    validate.Result `bson:"result" json:"result"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at" json:"updated_at"`
}

// NewRecord creates a record with a fresh UUID and timestamps.
func NewRecord(name, text string, result validate.Result) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Text:      text,
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// Put inserts or replaces a record, bumping UpdatedAt.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting a missing record returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns all records ordered by UpdatedAt descending.
	List(ctx context.Context) ([]*Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
