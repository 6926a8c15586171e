package types

import (
	"errors"
	"fmt"
)

// Column value types for plain (non-markup) columns.
const (
	ColumnText    = "text"
	ColumnInteger = "integer"
)

// validColumnTypes is the set of recognized plain column types.
var validColumnTypes = map[string]bool{
	ColumnText:    true,
	ColumnInteger: true,
}

// Column names reserved by the backend on every table.
const (
	IDColumn        = "record_id"
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"
)

// Table declaration errors.
var (
	ErrTableNameEmpty    = errors.New("table name must not be empty")
	ErrColumnNameEmpty   = errors.New("column name must not be empty")
	ErrColumnTypeUnknown = errors.New("unknown column type")
	ErrColumnCollision   = errors.New("column name collides with another column or reserved name")
)

// ColumnSpec declares one plain column on a table.
type ColumnSpec struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Type string `json:"type" yaml:"type" mapstructure:"type"`
}

// Validate checks the column declaration.
func (c ColumnSpec) Validate() error {
	if c.Name == "" {
		return ErrColumnNameEmpty
	}
	if !validColumnTypes[c.Type] {
		return ErrColumnTypeUnknown
	}
	return nil
}

// TableSpec declares one table: its plain columns and its markup
// fields. Each markup field expands into three physical columns with
// deterministic names derived from the field name.
type TableSpec struct {
	Name    string       `json:"name" yaml:"name" mapstructure:"name"`
	Columns []ColumnSpec `json:"columns,omitempty" yaml:"columns,omitempty" mapstructure:"columns"`
	Fields  []FieldSpec  `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}

// Validate checks the whole declaration: every column and field is
// individually valid, and no physical column name (including the three
// expanded per markup field) collides with another or with a reserved
// backend column.
func (t TableSpec) Validate() error {
	if t.Name == "" {
		return ErrTableNameEmpty
	}

	seen := map[string]bool{
		IDColumn:        true,
		CreatedAtColumn: true,
		UpdatedAtColumn: true,
	}
	claim := func(name string) error {
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrColumnCollision, name)
		}
		seen[name] = true
		return nil
	}

	for _, col := range t.Columns {
		if err := col.Validate(); err != nil {
			return err
		}
		if err := claim(col.Name); err != nil {
			return err
		}
	}
	for _, f := range t.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if err := claim(f.RawColumn()); err != nil {
			return err
		}
		if err := claim(f.TypeColumn()); err != nil {
			return err
		}
		if err := claim(f.RenderedColumn()); err != nil {
			return err
		}
	}
	return nil
}

// Field returns the markup field declared under the given logical name.
func (t TableSpec) Field(name string) (FieldSpec, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Column returns the plain column declared under the given name.
func (t TableSpec) Column(name string) (ColumnSpec, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnSpec{}, false
}

// fieldForTypeColumn returns the markup field whose type column is name.
func (t TableSpec) fieldForTypeColumn(name string) (FieldSpec, bool) {
	for _, f := range t.Fields {
		if f.TypeColumn() == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// fieldForRenderedColumn returns the markup field whose rendered column
// is name.
func (t TableSpec) fieldForRenderedColumn(name string) (FieldSpec, bool) {
	for _, f := range t.Fields {
		if f.RenderedColumn() == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}
