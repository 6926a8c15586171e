// Package sqlite provides the public API for the SQLite Inkwell
// backend. It exposes the factory function for creating backends while
// keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/inkwell/internal/sqlite"
	"github.com/mesh-intelligence/inkwell/pkg/render"
	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// New creates a SQLite backend rendering through the given registry;
// a nil registry gets render.Default(). The backend is not attached;
// call Attach with a Config.
//
// Example:
//
//	store := sqlite.New(nil)
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".inkwell-db",
//	})
//	defer store.Detach()
func New(registry *render.Registry) types.Store {
	return sqlite.NewBackend(registry)
}
