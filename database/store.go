package database

import (
	"context"
	"errors"
)

// Record is one persisted entity instance. The store is schemaless: every
// collection holds plain field maps, and the store itself owns the "id",
// "created_at" and "updated_at" fields.
type Record = map[string]any

// Filter is a conjunction of field equality tests. A nil or empty filter
// matches every record.
type Filter map[string]any

// Order sorts a result set by one field. A nil Order leaves the filtered
// result in storage-native (insertion) order.
type Order struct {
	Field     string
	Ascending bool
}

// ErrNotFound is returned by Update when no record matches.
var ErrNotFound = errors.New("record not found")

// Store is the uniform data-access interface. Callers never know whether the
// local demo store or a remote backend is behind it.
type Store interface {
	// Select returns the records of a collection, filtered then ordered.
	// Sorting is stable for equal keys.
	Select(ctx context.Context, collection string, filter Filter, order *Order) ([]Record, error)
	// Insert stores fields as a new record, assigning id and timestamps,
	// and returns the stored copy.
	Insert(ctx context.Context, collection string, fields Record) (Record, error)
	// Update merges patch over the first record whose matchField equals
	// matchValue, refreshes updated_at and returns the stored copy.
	// Returns ErrNotFound when nothing matches.
	Update(ctx context.Context, collection string, matchField string, matchValue any, patch Record) (Record, error)
	// Remove deletes every record whose matchField equals matchValue.
	// Removing zero records is not an error.
	Remove(ctx context.Context, collection string, matchField string, matchValue any) error
}

// Resetter is implemented by stores that can restore their seed content.
// Only the local demo store does; the diagnostics handler type-asserts for it.
type Resetter interface {
	Reset() error
}
