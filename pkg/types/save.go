package types

import (
	"fmt"

	"github.com/mesh-intelligence/inkwell/pkg/render"
)

// PrepareForSave recomputes the rendered slot of every markup field
// from its current raw text and markup type. Backends call this
// exactly once, synchronously, immediately before the durable write.
//
// Each field's markup type is revalidated against its declaration and
// must name a registered renderer; an unknown type or a renderer
// failure aborts the save and leaves the record's persisted state
// untouched. There is no fallback rendering.
func (r *Record) PrepareForSave(registry *render.Registry) error {
	for _, f := range r.spec.Fields {
		markupType := r.types[f.Name]
		if !f.Allows(markupType) {
			return fmt.Errorf("field %q: %w: %q", f.Name, ErrMarkupTypeNotAllowed, markupType)
		}
		rendered, err := registry.Render(markupType, r.raw[f.Name])
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		r.setRendered(f.Name, rendered)
	}
	return nil
}
