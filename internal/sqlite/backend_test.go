package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/inkwell/pkg/render"
	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// setupBackend creates an attached Backend over a temp directory with
// the default renderer registry.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// postsSpec declares the table used across backend tests: one plain
// column and one markdown-by-default markup field.
func postsSpec() types.TableSpec {
	return types.TableSpec{
		Name:    "posts",
		Columns: []types.ColumnSpec{{Name: "title", Type: types.ColumnText}},
		Fields:  []types.FieldSpec{{Name: "body", Default: "markdown"}},
	}
}

func TestAttachLifecycle(t *testing.T) {
	b := NewBackend(nil)
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	require.NoError(t, b.Attach(config))
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.Collection("posts")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	assert.ErrorIs(t, b.Define(postsSpec()), types.ErrStoreDetached)
}

func TestAttachValidatesConfig(t *testing.T) {
	b := NewBackend(nil)
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestDefineAndCollection(t *testing.T) {
	b := setupBackend(t)

	require.NoError(t, b.Define(postsSpec()))

	coll, err := b.Collection("posts")
	require.NoError(t, err)
	assert.NotNil(t, coll)

	_, err = b.Collection("missing")
	assert.ErrorIs(t, err, types.ErrCollectionNotFound)

	assert.Equal(t, []string{"posts"}, b.Tables())
}

func TestDefineFailsFastOnBadDeclarations(t *testing.T) {
	b := setupBackend(t)

	tests := []struct {
		name    string
		spec    types.TableSpec
		wantErr error
	}{
		{
			name: "fixed and default together",
			spec: types.TableSpec{
				Name:   "articles",
				Fields: []types.FieldSpec{{Name: "body", Fixed: "markdown", Default: "html"}},
			},
			wantErr: types.ErrFieldConfig,
		},
		{
			name: "choices without default",
			spec: types.TableSpec{
				Name:   "articles",
				Fields: []types.FieldSpec{{Name: "body", Choices: []string{"markdown", "html"}}},
			},
			wantErr: types.ErrChoicesWithoutDefault,
		},
		{
			name: "default type not registered",
			spec: types.TableSpec{
				Name:   "articles",
				Fields: []types.FieldSpec{{Name: "body", Default: "restructuredtext"}},
			},
			wantErr: render.ErrUnknownMarkupType,
		},
		{
			name: "choice not registered",
			spec: types.TableSpec{
				Name:   "articles",
				Fields: []types.FieldSpec{{Name: "body", Default: "html", Choices: []string{"html", "textile"}}},
			},
			wantErr: render.ErrUnknownMarkupType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, b.Define(tt.spec), tt.wantErr)

			_, err := b.Collection(tt.spec.Name)
			assert.ErrorIs(t, err, types.ErrCollectionNotFound, "no collection is created on a failed definition")
		})
	}
}

func TestDefineIdempotentAndConflicting(t *testing.T) {
	b := setupBackend(t)

	require.NoError(t, b.Define(postsSpec()))
	require.NoError(t, b.Define(postsSpec()), "identical respec is a no-op")

	changed := postsSpec()
	changed.Fields[0].Default = "html"
	assert.ErrorIs(t, b.Define(changed), types.ErrTableRedefined)
}

func TestDefinitionsSurviveReattach(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(config))
	require.NoError(t, b.Define(postsSpec()))

	coll, err := b.Collection("posts")
	require.NoError(t, err)

	rec := types.NewRecord(postsSpec())
	require.NoError(t, rec.Set("title", "persisted"))
	require.NoError(t, rec.SetRaw("body", "*kept*"))
	id, err := coll.Set("", rec)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A fresh backend over the same directory sees the definition and
	// the saved record.
	fresh := NewBackend(nil)
	require.NoError(t, fresh.Attach(config))
	t.Cleanup(func() { fresh.Detach() })

	coll, err = fresh.Collection("posts")
	require.NoError(t, err)

	got, err := coll.Get(id)
	require.NoError(t, err)
	title, _ := got.Get("title")
	assert.Equal(t, "persisted", title)

	m, err := got.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>kept</em></p>", m.Rendered())
}

func TestCustomRegistryInjection(t *testing.T) {
	registry := render.New()
	require.NoError(t, registry.Register("shout", func(raw string) (string, error) {
		return "<p>" + raw + "!!</p>", nil
	}))

	b := NewBackend(registry)
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })

	spec := types.TableSpec{
		Name:   "notes",
		Fields: []types.FieldSpec{{Name: "body", Fixed: "shout"}},
	}
	require.NoError(t, b.Define(spec))

	// The default types are gone: the application replaced the
	// registry wholesale.
	assert.ErrorIs(t, b.Define(types.TableSpec{
		Name:   "other",
		Fields: []types.FieldSpec{{Name: "body", Default: "markdown"}},
	}), render.ErrUnknownMarkupType)

	coll, err := b.Collection("notes")
	require.NoError(t, err)

	rec := types.NewRecord(spec)
	require.NoError(t, rec.SetRaw("body", "hello"))
	id, err := coll.Set("", rec)
	require.NoError(t, err)

	got, err := coll.Get(id)
	require.NoError(t, err)
	m, err := got.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "<p>hello!!</p>", m.Rendered())
}
