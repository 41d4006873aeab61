// Package store holds the in-memory keyed collection of authored policy
// documents.
package store

import (
	"context"
	"errors"

	"github.com/wj-stack/NetFlow/internal/strategy"
)

// ErrNotFound is returned when no document carries the requested
// strategy id.
var ErrNotFound = errors.New("strategy not found")

// Store defines the interface for strategy collections.
// Implementations must be safe for concurrent use.
type Store interface {
	// List retrieves every policy document in insertion order.
	// Returns an empty slice if the collection is empty.
	List(ctx context.Context) ([]strategy.PolicyDocument, error)

	// Get retrieves a single document by strategy id.
	// Returns ErrNotFound if no document carries that id.
	Get(ctx context.Context, strategyID string) (*strategy.PolicyDocument, error)

	// Upsert creates or replaces a document, keyed by its strategy id.
	// Replacing an existing document preserves its list position; a new
	// id appends.
	Upsert(ctx context.Context, doc strategy.PolicyDocument) error

	// Delete removes a document by strategy id.
	// Returns no error if the document doesn't exist (idempotent).
	Delete(ctx context.Context, strategyID string) error

	// Replace swaps the whole collection for docs, in order.
	// Used by bulk import and example seeding.
	Replace(ctx context.Context, docs []strategy.PolicyDocument) error

	// Close releases any resources held by the store.
	// After Close is called, the store should not be used.
	Close() error
}
