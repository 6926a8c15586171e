package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postsSpec() TableSpec {
	return TableSpec{
		Name: "posts",
		Columns: []ColumnSpec{
			{Name: "title", Type: ColumnText},
			{Name: "views", Type: ColumnInteger},
		},
		Fields: []FieldSpec{
			{Name: "body", Default: "markdown"},
			{Name: "teaser", Fixed: "html"},
		},
	}
}

func TestNewRecordDefaults(t *testing.T) {
	rec := NewRecord(postsSpec())

	body, err := rec.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "", body.Raw)
	assert.Equal(t, "markdown", body.Type)
	assert.Equal(t, "", body.Rendered())

	teaser, err := rec.Markup("teaser")
	require.NoError(t, err)
	assert.Equal(t, "html", teaser.Type)
}

func TestRecordMarkupIsFreshEachRead(t *testing.T) {
	rec := NewRecord(postsSpec())
	require.NoError(t, rec.SetRaw("body", "original"))

	view, err := rec.Markup("body")
	require.NoError(t, err)
	view.Raw = "mutated on the view only"

	again, err := rec.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Raw)

	// Writing the view back is what updates the record.
	require.NoError(t, rec.SetMarkup("body", view))
	final, err := rec.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "mutated on the view only", final.Raw)
}

func TestRecordSetRawKeepsRenderedStale(t *testing.T) {
	rec := NewRecord(postsSpec())
	require.NoError(t, rec.SetMarkup("body", NewMarkup("*old*", "markdown", "<p><em>old</em></p>")))

	require.NoError(t, rec.SetRaw("body", "plain new text"))

	m, err := rec.Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "plain new text", m.Raw)
	assert.Equal(t, "<p><em>old</em></p>", m.Rendered(), "rendered must stay stale until save")
}

func TestRecordSetMarkupType(t *testing.T) {
	spec := TableSpec{
		Name: "articles",
		Fields: []FieldSpec{
			{Name: "body", Default: "html", Choices: []string{"markdown", "html"}},
			{Name: "summary", Fixed: "markdown"},
		},
	}
	rec := NewRecord(spec)

	require.NoError(t, rec.SetMarkupType("body", "markdown"))
	assert.ErrorIs(t, rec.SetMarkupType("body", "plain"), ErrMarkupTypeNotAllowed)

	// A fixed field rejects any other value; re-setting the pinned
	// value is a no-op.
	assert.NoError(t, rec.SetMarkupType("summary", "markdown"))
	assert.ErrorIs(t, rec.SetMarkupType("summary", "html"), ErrMarkupTypeFixed)

	assert.ErrorIs(t, rec.SetMarkupType("missing", "html"), ErrFieldNotFound)
}

func TestRecordSetRoutesByColumn(t *testing.T) {
	rec := NewRecord(postsSpec())

	require.NoError(t, rec.Set("title", "Hello"))
	require.NoError(t, rec.Set("views", float64(7)))
	require.NoError(t, rec.Set("body", "raw text through the field name"))
	require.NoError(t, rec.Set("body_markup_type", "html"))
	require.NoError(t, rec.Set("body", NewMarkup("full", "markdown", "")))

	title, ok := rec.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Hello", title)

	views, ok := rec.Get("views")
	assert.True(t, ok)
	assert.Equal(t, int64(7), views)

	raw, ok := rec.Get("body")
	assert.True(t, ok)
	assert.Equal(t, "full", raw)

	markupType, ok := rec.Get("body_markup_type")
	assert.True(t, ok)
	assert.Equal(t, "markdown", markupType)

	assert.ErrorIs(t, rec.Set("title", 12), ErrInvalidValue)
	assert.ErrorIs(t, rec.Set("views", "many"), ErrInvalidValue)
	assert.ErrorIs(t, rec.Set("body", 3.14), ErrInvalidValue)
	assert.ErrorIs(t, rec.Set("missing", "x"), ErrColumnNotFound)
}

func TestRecordRenderedColumnIsReadOnly(t *testing.T) {
	rec := NewRecord(postsSpec())

	err := rec.Set("_body_rendered", "<p>forged</p>")
	assert.ErrorIs(t, err, ErrRenderedReadOnly)

	// Reading it is fine.
	rendered, ok := rec.Get("_body_rendered")
	assert.True(t, ok)
	assert.Equal(t, "", rendered)
}

func TestRecordFromJSON(t *testing.T) {
	spec := postsSpec()

	t.Run("string payload sets raw text", func(t *testing.T) {
		rec, err := spec.RecordFromJSON([]byte(`{"title":"T","body":"*md*"}`))
		require.NoError(t, err)

		m, err := rec.Markup("body")
		require.NoError(t, err)
		assert.Equal(t, "*md*", m.Raw)
		assert.Equal(t, "markdown", m.Type, "default markup type applies")
	})

	t.Run("object payload decomposes a markup value", func(t *testing.T) {
		rec, err := spec.RecordFromJSON([]byte(`{"body":{"raw":"x","markup_type":"html","rendered":""}}`))
		require.NoError(t, err)

		m, err := rec.Markup("body")
		require.NoError(t, err)
		assert.Equal(t, "html", m.Type)
	})

	t.Run("rendered column at top level is rejected", func(t *testing.T) {
		_, err := spec.RecordFromJSON([]byte(`{"_body_rendered":"<p>forged</p>"}`))
		assert.ErrorIs(t, err, ErrRenderedReadOnly)
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		_, err := spec.RecordFromJSON([]byte(`{"nope":"x"}`))
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})

	t.Run("record_id carries through", func(t *testing.T) {
		rec, err := spec.RecordFromJSON([]byte(`{"record_id":"abc","title":"T"}`))
		require.NoError(t, err)
		assert.Equal(t, "abc", rec.ID)
	})
}
