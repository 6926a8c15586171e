package types

import (
	"encoding/json"
	"html/template"
)

// Markup is the composite value a markup field presents to application
// code: raw source text, the markup-type name selecting a renderer, and
// the cached rendered HTML. A Markup is an ephemeral view composed from
// the three underlying columns on every read; it is never itself stored.
//
// Raw and Type are mutable. Mutating either does not recompute the
// rendered text; the rendered slot stays stale until the owning record
// is next saved. The rendered text has no setter: it can only be
// supplied at construction (hydration from storage) or recomputed by
// the save path.
type Markup struct {
	Raw  string // Unrendered source text.
	Type string // Markup-type name, a renderer registry key.

	rendered string
}

// NewMarkup constructs a Markup from the three slot values.
func NewMarkup(raw, markupType, rendered string) *Markup {
	return &Markup{Raw: raw, Type: markupType, rendered: rendered}
}

// Rendered returns the cached rendered HTML as of the most recent save.
func (m *Markup) Rendered() string {
	return m.rendered
}

// HTML returns the rendered text marked safe for direct template
// output. The registered renderer is trusted to have produced safe
// HTML; no additional escaping is applied.
func (m *Markup) HTML() template.HTML {
	return template.HTML(m.rendered)
}

// String returns the rendered text, so a Markup displays as its HTML.
func (m *Markup) String() string {
	return m.rendered
}

// Equal reports structural equality of all three slots.
func (m *Markup) Equal(other *Markup) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Raw == other.Raw && m.Type == other.Type && m.rendered == other.rendered
}

// markupJSON is the wire shape for Markup serialization.
type markupJSON struct {
	Raw      string `json:"raw"`
	Type     string `json:"markup_type"`
	Rendered string `json:"rendered"`
}

// MarshalJSON encodes all three slots.
func (m *Markup) MarshalJSON() ([]byte, error) {
	return json.Marshal(markupJSON{Raw: m.Raw, Type: m.Type, Rendered: m.rendered})
}

// UnmarshalJSON hydrates all three slots. This is a hydration path, not
// an application mutation: a rendered value carried in JSON is replaced
// at the next save like any other stale cache.
func (m *Markup) UnmarshalJSON(data []byte) error {
	var w markupJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.Raw = w.Raw
	m.Type = w.Type
	m.rendered = w.Rendered
	return nil
}
