package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Record access errors.
var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrFieldNotFound    = errors.New("markup field not found")
	ErrRenderedReadOnly = errors.New("rendered column is read-only")
	ErrMarkupTypeFixed  = errors.New("markup type is fixed for this field")
	ErrInvalidValue     = errors.New("invalid value for column type")
)

// Record is one row of a defined table, viewed through its declaration.
// Plain columns hold scalar values; each markup field holds three slots
// (raw, markup type, rendered) that compose into a Markup value on read
// and decompose on write. The rendered slot is read-only: it is only
// written by the save path, which recomputes it through the renderer
// registry.
type Record struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	spec     TableSpec
	columns  map[string]any
	raw      map[string]string
	types    map[string]string
	rendered map[string]string
}

// NewRecord returns an empty record for the given table declaration.
// Every markup field starts with empty raw and rendered text and its
// declared default (or fixed) markup type.
func NewRecord(spec TableSpec) *Record {
	r := &Record{
		spec:     spec,
		columns:  make(map[string]any),
		raw:      make(map[string]string),
		types:    make(map[string]string),
		rendered: make(map[string]string),
	}
	for _, f := range spec.Fields {
		r.raw[f.Name] = ""
		r.types[f.Name] = f.DefaultType()
		r.rendered[f.Name] = ""
	}
	return r
}

// Spec returns the table declaration this record belongs to.
func (r *Record) Spec() TableSpec {
	return r.spec
}

// Markup composes a fresh Markup value for the given logical field from
// its three slots. Each call returns a new value; mutate it and write
// it back with SetMarkup.
func (r *Record) Markup(field string) (*Markup, error) {
	if _, ok := r.spec.Field(field); !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	return NewMarkup(r.raw[field], r.types[field], r.rendered[field]), nil
}

// SetRaw sets the raw text of a markup field, leaving the markup type
// and the (now stale) rendered text unchanged. An unset markup type is
// populated with the field's default.
func (r *Record) SetRaw(field, raw string) error {
	spec, ok := r.spec.Field(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	r.raw[field] = raw
	if r.types[field] == "" {
		r.types[field] = spec.DefaultType()
	}
	return nil
}

// SetMarkupType sets the markup type of a field. Returns
// ErrMarkupTypeFixed for non-editable fields (setting the pinned value
// again is allowed) and ErrMarkupTypeNotAllowed for values outside the
// declared choices.
func (r *Record) SetMarkupType(field, markupType string) error {
	spec, ok := r.spec.Field(field)
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	if !spec.Editable() {
		if markupType == spec.Fixed {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrMarkupTypeFixed, field)
	}
	if !spec.Allows(markupType) {
		return fmt.Errorf("%w: %q", ErrMarkupTypeNotAllowed, markupType)
	}
	r.types[field] = markupType
	return nil
}

// SetMarkup decomposes a Markup value into all three slots of a field.
// The decomposition is direct, carrying the value's rendered text with
// it; the save path revalidates the markup type and recomputes the
// rendered slot regardless.
func (r *Record) SetMarkup(field string, m *Markup) error {
	if _, ok := r.spec.Field(field); !ok {
		return fmt.Errorf("%w: %q", ErrFieldNotFound, field)
	}
	if m == nil {
		return ErrInvalidValue
	}
	r.raw[field] = m.Raw
	r.types[field] = m.Type
	r.rendered[field] = m.rendered
	return nil
}

// Set writes a value through a column name. A logical markup-field name
// accepts a plain string (raw text only) or a Markup value (full
// decomposition); a markup-type column accepts a string and enforces
// fixed/choices rules; a rendered column is a hard error; a plain
// column accepts a value of its declared type.
func (r *Record) Set(column string, value any) error {
	if _, ok := r.spec.Field(column); ok {
		switch v := value.(type) {
		case string:
			return r.SetRaw(column, v)
		case *Markup:
			return r.SetMarkup(column, v)
		case Markup:
			return r.SetMarkup(column, &v)
		default:
			return fmt.Errorf("%w: markup field %q takes a string or Markup", ErrInvalidValue, column)
		}
	}
	if f, ok := r.spec.fieldForTypeColumn(column); ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: markup type must be a string", ErrInvalidValue)
		}
		return r.SetMarkupType(f.Name, s)
	}
	if _, ok := r.spec.fieldForRenderedColumn(column); ok {
		return fmt.Errorf("%w: %q", ErrRenderedReadOnly, column)
	}
	col, ok := r.spec.Column(column)
	if !ok {
		return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
	}
	coerced, err := coerceColumnValue(col, value)
	if err != nil {
		return err
	}
	r.columns[column] = coerced
	return nil
}

// Get reads a value through a column name: plain column values, raw
// text under the field name, the markup type and rendered text under
// their column names. The second return reports whether the column
// exists on this table.
func (r *Record) Get(column string) (any, bool) {
	if _, ok := r.spec.Field(column); ok {
		return r.raw[column], true
	}
	if f, ok := r.spec.fieldForTypeColumn(column); ok {
		return r.types[f.Name], true
	}
	if f, ok := r.spec.fieldForRenderedColumn(column); ok {
		return r.rendered[f.Name], true
	}
	if _, ok := r.spec.Column(column); ok {
		return r.columns[column], true
	}
	return nil, false
}

// setRendered writes the rendered slot. Only the save path uses this;
// it is deliberately not part of the public record API.
func (r *Record) setRendered(field, rendered string) {
	r.rendered[field] = rendered
}

// coerceColumnValue converts a caller-supplied value to the canonical
// Go type for the column: string for text, int64 for integer. float64
// is accepted for integers because JSON numbers decode to it.
func coerceColumnValue(col ColumnSpec, value any) (any, error) {
	switch col.Type {
	case ColumnText:
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: column %q wants text", ErrInvalidValue, col.Name)
		}
		return s, nil
	case ColumnInteger:
		switch v := value.(type) {
		case int:
			return int64(v), nil
		case int64:
			return v, nil
		case float64:
			return int64(v), nil
		default:
			return nil, fmt.Errorf("%w: column %q wants an integer", ErrInvalidValue, col.Name)
		}
	default:
		return nil, ErrColumnTypeUnknown
	}
}

// MarshalJSON encodes the record as a flat object: reserved columns,
// plain columns, and one Markup object per logical field.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.columns)+len(r.raw)+3)
	out[IDColumn] = r.ID
	if !r.CreatedAt.IsZero() {
		out[CreatedAtColumn] = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !r.UpdatedAt.IsZero() {
		out[UpdatedAtColumn] = r.UpdatedAt.UTC().Format(time.RFC3339)
	}
	for _, col := range r.spec.Columns {
		out[col.Name] = r.columns[col.Name]
	}
	for _, f := range r.spec.Fields {
		m, err := r.Markup(f.Name)
		if err != nil {
			return nil, err
		}
		out[f.Name] = m
	}
	return json.Marshal(out)
}

// RecordFromJSON decodes a flat JSON object into a record for this
// table. Markup fields accept either a bare string (raw text) or a
// Markup object; writing a rendered column at the top level is a hard
// error, matching Record.Set.
func (t TableSpec) RecordFromJSON(data []byte) (*Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	rec := NewRecord(t)
	for name, payload := range fields {
		switch name {
		case IDColumn:
			if err := json.Unmarshal(payload, &rec.ID); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
			}
			continue
		case CreatedAtColumn, UpdatedAtColumn:
			// Timestamps are backend-managed; ignore on input.
			continue
		}

		if _, ok := t.Field(name); ok {
			var raw string
			if err := json.Unmarshal(payload, &raw); err == nil {
				if err := rec.SetRaw(name, raw); err != nil {
					return nil, err
				}
				continue
			}
			var m Markup
			if err := json.Unmarshal(payload, &m); err != nil {
				return nil, fmt.Errorf("%w: field %q: %v", ErrInvalidData, name, err)
			}
			if err := rec.SetMarkup(name, &m); err != nil {
				return nil, err
			}
			continue
		}

		var value any
		if err := json.Unmarshal(payload, &value); err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidData, name, err)
		}
		if err := rec.Set(name, value); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
