package types

import "errors"

// Store defines the interface for backend-agnostic record storage.
// Callers attach to a backend, define tables, access collections by
// name, and detach when done.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// Define registers a table declaration and creates its physical
	// schema. Each markup field in the spec expands to three columns.
	// Declaration errors (invalid spec, unregistered markup types)
	// surface here, before any record exists.
	Define(spec TableSpec) error

	// Collection returns the Collection for a previously defined table.
	// Returns ErrCollectionNotFound if the table was never defined.
	Collection(name string) (Collection, error)
}

// Collection provides uniform CRUD operations for one defined table.
type Collection interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (*Record, error)

	// Set persists a record. This is the save boundary: every markup
	// field's rendered slot is recomputed from its current raw and
	// markup type before anything is written. A render failure aborts
	// the save with no partial write. When id is empty a new UUID v7
	// is generated. Returns the actual ID used.
	Set(id string, rec *Record) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns all records matching the filter. Filter keys are
	// plain column names or markup raw/type column names; an empty
	// filter returns every record.
	Fetch(filter map[string]any) ([]*Record, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached      = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrTableRedefined     = errors.New("table already defined with a different spec")
)

// Collection operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid record ID")
	ErrInvalidData   = errors.New("invalid record data")
	ErrInvalidFilter = errors.New("invalid filter column")
)
