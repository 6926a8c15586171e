package types

import "errors"

// Column name suffixes for the physical columns a markup field expands
// into. The raw column carries the logical field name itself; the
// rendered column is prefixed to mark it internal.
const (
	markupTypeSuffix = "_markup_type"
	renderedPrefix   = "_"
	renderedSuffix   = "_rendered"
)

// Field declaration errors. All are raised at declaration time, before
// any record exists.
var (
	ErrFieldNameEmpty        = errors.New("markup field name must not be empty")
	ErrFieldConfig           = errors.New("cannot declare both a fixed markup type and a default or choices")
	ErrChoicesWithoutDefault = errors.New("markup choices require a default markup type")
	ErrMarkupTypeNotAllowed  = errors.New("markup type not in declared choices")
)

// FieldSpec declares one logical markup field on a table. Exactly one
// of Fixed and Default may be set. A field with Fixed has its
// markup-type slot pinned and excluded from editing; a field with
// Default pre-populates the slot but leaves it editable. Choices
// restricts the legal markup-type values and requires Default.
type FieldSpec struct {
	Name    string   `json:"name" yaml:"name" mapstructure:"name"`
	Fixed   string   `json:"markup_type,omitempty" yaml:"markup_type,omitempty" mapstructure:"markup_type"`
	Default string   `json:"default_markup_type,omitempty" yaml:"default_markup_type,omitempty" mapstructure:"default_markup_type"`
	Choices []string `json:"markup_choices,omitempty" yaml:"markup_choices,omitempty" mapstructure:"markup_choices"`
}

// Validate checks the declaration. It fails fast with a sentinel error
// so misdeclared fields are caught when the table is defined, not when
// a record is saved.
func (f FieldSpec) Validate() error {
	if f.Name == "" {
		return ErrFieldNameEmpty
	}
	if f.Fixed != "" && (f.Default != "" || len(f.Choices) > 0) {
		return ErrFieldConfig
	}
	if len(f.Choices) > 0 && f.Default == "" {
		return ErrChoicesWithoutDefault
	}
	if f.Default != "" && len(f.Choices) > 0 && !f.Allows(f.Default) {
		return ErrMarkupTypeNotAllowed
	}
	return nil
}

// Editable reports whether the markup-type slot may be changed through
// the record API and surfaced in generated forms. Fields with a fixed
// markup type are not editable.
func (f FieldSpec) Editable() bool {
	return f.Fixed == ""
}

// DefaultType returns the markup type a new record starts with: the
// fixed type when pinned, otherwise the declared default (possibly "").
func (f FieldSpec) DefaultType() string {
	if f.Fixed != "" {
		return f.Fixed
	}
	return f.Default
}

// Allows reports whether the given markup type is legal for this field.
// A field without choices allows any type; the renderer registry still
// has the final say at save time.
func (f FieldSpec) Allows(markupType string) bool {
	if f.Fixed != "" {
		return markupType == f.Fixed
	}
	if len(f.Choices) == 0 {
		return true
	}
	for _, c := range f.Choices {
		if c == markupType {
			return true
		}
	}
	return false
}

// RawColumn returns the physical column holding the raw text. It is
// the logical field name itself, so the declared name maps directly to
// a column.
func (f FieldSpec) RawColumn() string {
	return f.Name
}

// TypeColumn returns the physical column holding the markup-type name.
func (f FieldSpec) TypeColumn() string {
	return f.Name + markupTypeSuffix
}

// RenderedColumn returns the physical column holding the cached
// rendered HTML. The leading underscore marks it as internal; it is
// read-only through the record API.
func (f FieldSpec) RenderedColumn() string {
	return renderedPrefix + f.Name + renderedSuffix
}
