package types

import (
	"encoding/json"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupAccessors(t *testing.T) {
	m := NewMarkup("*hi*", "markdown", "<p><em>hi</em></p>")

	assert.Equal(t, "*hi*", m.Raw)
	assert.Equal(t, "markdown", m.Type)
	assert.Equal(t, "<p><em>hi</em></p>", m.Rendered())
	assert.Equal(t, "<p><em>hi</em></p>", m.String())
	assert.Equal(t, template.HTML("<p><em>hi</em></p>"), m.HTML())
}

func TestMarkupMutationLeavesRenderedStale(t *testing.T) {
	m := NewMarkup("old", "markdown", "<p>old</p>")
	m.Raw = "new"
	m.Type = "html"

	// The cached rendered text does not track mutations; only a save
	// recomputes it.
	assert.Equal(t, "<p>old</p>", m.Rendered())
}

func TestMarkupEqual(t *testing.T) {
	a := NewMarkup("r", "t", "h")
	b := NewMarkup("r", "t", "h")
	c := NewMarkup("r", "t", "other")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Markup)(nil).Equal(nil))
}

func TestMarkupJSONRoundTrip(t *testing.T) {
	m := NewMarkup("*hi*", "markdown", "<p><em>hi</em></p>")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw":"*hi*","markup_type":"markdown","rendered":"<p><em>hi</em></p>"}`, string(data))

	var back Markup
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, m.Equal(&back))
}
