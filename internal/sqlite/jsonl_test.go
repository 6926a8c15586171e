package sqlite

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	srcBackend, srcColl := setupPosts(t)
	dstBackend, dstColl := setupPosts(t)

	for _, title := range []string{"one", "two"} {
		rec := types.NewRecord(postsSpec())
		require.NoError(t, rec.Set("title", title))
		require.NoError(t, rec.SetRaw("body", "*"+title+"*"))
		_, err := srcColl.Set("", rec)
		require.NoError(t, err)
	}

	var dump bytes.Buffer
	require.NoError(t, srcBackend.Export("posts", &dump))
	assert.Equal(t, 2, strings.Count(dump.String(), "\n"))

	count, err := dstBackend.Import("posts", &dump)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	imported, err := dstColl.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, imported, 2)

	m, err := imported[0].Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>one</em></p>", m.Rendered())
}

func TestImportRecomputesRendered(t *testing.T) {
	b, coll := setupPosts(t)

	line := `{"title":"forged","body":{"raw":"*real*","markup_type":"markdown","rendered":"<p>FORGED</p>"}}`
	count, err := b.Import("posts", strings.NewReader(line+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	records, err := coll.Fetch(nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	m, err := records[0].Markup("body")
	require.NoError(t, err)
	assert.Equal(t, "<p><em>real</em></p>", m.Rendered(), "the dump's rendered text is replaced on save")
}

func TestImportPreservesRecordIDs(t *testing.T) {
	b, coll := setupPosts(t)

	line := `{"record_id":"stable-id","title":"kept","body":"text"}`
	count, err := b.Import("posts", strings.NewReader(line+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := coll.Get("stable-id")
	require.NoError(t, err)
	title, _ := got.Get("title")
	assert.Equal(t, "kept", title)
}

func TestImportStopsAtBadLine(t *testing.T) {
	b, _ := setupPosts(t)

	input := `{"title":"good","body":"ok"}` + "\n" + `{not json}` + "\n"
	count, err := b.Import("posts", strings.NewReader(input))
	assert.Error(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, err.Error(), "line 2")
}

func TestExportUnknownTable(t *testing.T) {
	b := setupBackend(t)
	var buf bytes.Buffer
	assert.ErrorIs(t, b.Export("missing", &buf), types.ErrCollectionNotFound)
}
