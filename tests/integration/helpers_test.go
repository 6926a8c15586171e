// Package integration provides shared test helpers for integration
// tests. Store tests exercise the public API (pkg/sqlite, pkg/types);
// CLI tests exercise the inkwell binary built by TestMain.
package integration

import (
	"testing"

	"github.com/mesh-intelligence/inkwell/pkg/render"
	"github.com/mesh-intelligence/inkwell/pkg/sqlite"
	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// newTestStore creates a store attached to an isolated temp directory.
// Each test gets its own store for isolation.
func newTestStore(t *testing.T) (types.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.New(nil)
	if err := store.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { store.Detach() })
	return store, dir
}

// postsSpec declares a table with one plain column and two markup
// fields: an editable markdown body and a fixed-type summary.
func postsSpec() types.TableSpec {
	return types.TableSpec{
		Name: "posts",
		Columns: []types.ColumnSpec{
			{Name: "title", Type: types.ColumnText},
			{Name: "views", Type: types.ColumnInteger},
		},
		Fields: []types.FieldSpec{
			{Name: "body", Default: render.TypeMarkdown},
			{Name: "summary", Fixed: render.TypePlain},
		},
	}
}

// mustCollection retrieves a collection by name or fails the test.
func mustCollection(t *testing.T, store types.Store, name string) types.Collection {
	t.Helper()
	coll, err := store.Collection(name)
	if err != nil {
		t.Fatalf("Collection(%q): %v", name, err)
	}
	return coll
}
