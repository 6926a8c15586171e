package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/inkwell/pkg/render"
	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "inkwell.db"

// Backend implements types.Store over a SQLite database. Table
// declarations are persisted in a meta table, so a fresh Attach against
// an existing DataDir rebuilds every previously defined collection.
type Backend struct {
	mu          sync.RWMutex
	attached    bool
	config      types.Config
	db          *sql.DB
	registry    *render.Registry
	specs       map[string]types.TableSpec
	collections map[string]*collection
}

// NewBackend creates a SQLite backend using the given renderer
// registry on its save path. A nil registry gets render.Default().
// The backend is not attached; call Attach with a Config.
func NewBackend(registry *render.Registry) *Backend {
	if registry == nil {
		registry = render.Default()
	}
	return &Backend{
		registry:    registry,
		specs:       make(map[string]types.TableSpec),
		collections: make(map[string]*collection),
	}
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if needed, opens the database, ensures the meta table, and
// rebuilds collections for previously defined tables.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}
	if _, err := db.Exec(createMetaTable); err != nil {
		db.Close()
		return fmt.Errorf("creating meta table: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	if err := b.loadSpecs(); err != nil {
		b.attached = false
		b.db = nil
		db.Close()
		return fmt.Errorf("loading table specs: %w", err)
	}
	return nil
}

// Detach releases the database connection. Idempotent: detaching a
// detached backend succeeds. After Detach, operations return
// ErrStoreDetached.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.specs = make(map[string]types.TableSpec)
	b.collections = make(map[string]*collection)
	return nil
}

// Define validates a table declaration, checks every declared markup
// type against the renderer registry, creates the physical table, and
// records the spec. Defining the same table with an identical spec is
// a no-op; a conflicting respec returns ErrTableRedefined.
func (b *Backend) Define(spec types.TableSpec) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreDetached
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := b.checkRegistry(spec); err != nil {
		return err
	}

	encoded, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("encoding spec: %w", err)
	}

	if existing, ok := b.specs[spec.Name]; ok {
		prev, err := json.Marshal(existing)
		if err != nil {
			return fmt.Errorf("encoding existing spec: %w", err)
		}
		if string(prev) == string(encoded) {
			return nil
		}
		return fmt.Errorf("%w: %q", types.ErrTableRedefined, spec.Name)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createTableSQL(spec)); err != nil {
		return fmt.Errorf("creating table %q: %w", spec.Name, err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO inkwell_tables (table_name, spec) VALUES (?, ?)",
		spec.Name, string(encoded),
	); err != nil {
		return fmt.Errorf("recording spec for %q: %w", spec.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing definition: %w", err)
	}

	b.specs[spec.Name] = spec
	b.collections[spec.Name] = &collection{backend: b, spec: spec}
	return nil
}

// Collection returns the collection accessor for a defined table.
// Returns ErrCollectionNotFound if the table was never defined and
// ErrStoreDetached if the backend is not attached.
func (b *Backend) Collection(name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	c, ok := b.collections[name]
	if !ok {
		return nil, types.ErrCollectionNotFound
	}
	return c, nil
}

// Spec returns the declaration of a defined table.
func (b *Backend) Spec(name string) (types.TableSpec, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	spec, ok := b.specs[name]
	return spec, ok
}

// Tables returns the names of all defined tables.
func (b *Backend) Tables() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.specs))
	for name := range b.specs {
		names = append(names, name)
	}
	return names
}

// Registry returns the renderer registry this backend renders with.
func (b *Backend) Registry() *render.Registry {
	return b.registry
}

// checkRegistry verifies that every markup type a declaration can put
// in a type slot names a registered renderer, so misconfiguration
// surfaces at declaration time rather than at the first save.
func (b *Backend) checkRegistry(spec types.TableSpec) error {
	for _, f := range spec.Fields {
		if dt := f.DefaultType(); dt != "" && !b.registry.Has(dt) {
			return fmt.Errorf("field %q: %w: %q", f.Name, render.ErrUnknownMarkupType, dt)
		}
		for _, choice := range f.Choices {
			if !b.registry.Has(choice) {
				return fmt.Errorf("field %q: %w: %q", f.Name, render.ErrUnknownMarkupType, choice)
			}
		}
	}
	return nil
}

// loadSpecs reads all persisted table specs from the meta table and
// rebuilds collection accessors. The caller must hold b.mu.
func (b *Backend) loadSpecs() error {
	rows, err := b.db.Query("SELECT table_name, spec FROM inkwell_tables")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name, encoded string
		if err := rows.Scan(&name, &encoded); err != nil {
			return err
		}
		var spec types.TableSpec
		if err := json.Unmarshal([]byte(encoded), &spec); err != nil {
			return fmt.Errorf("decoding spec for %q: %w", name, err)
		}
		b.specs[name] = spec
		b.collections[name] = &collection{backend: b, spec: spec}
	}
	return rows.Err()
}
