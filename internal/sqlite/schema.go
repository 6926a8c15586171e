// Package sqlite implements the SQLite storage backend for Inkwell.
// Table declarations expand each markup field into three physical
// columns; records are rendered through the injected renderer registry
// inside the save transaction.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// createMetaTable holds the JSON-encoded TableSpec of every defined
// table so a later Attach can rebuild collection accessors.
const createMetaTable = `CREATE TABLE IF NOT EXISTS inkwell_tables (
    table_name TEXT PRIMARY KEY,
    spec TEXT NOT NULL
);`

// columnDef is one physical column of a generated table.
type columnDef struct {
	name    string
	sqlType string
}

// quoteIdent quotes an identifier for use in generated SQL. Rendered
// columns start with an underscore, so everything is quoted uniformly.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// sqlColumnType maps a plain column type to its SQLite storage type.
func sqlColumnType(columnType string) string {
	if columnType == types.ColumnInteger {
		return "INTEGER"
	}
	return "TEXT"
}

// physicalColumns returns the full physical column list for a spec, in
// a deterministic order: record ID, plain columns, the three expanded
// columns per markup field, then timestamps.
func physicalColumns(spec types.TableSpec) []columnDef {
	cols := []columnDef{{types.IDColumn, "TEXT"}}
	for _, c := range spec.Columns {
		cols = append(cols, columnDef{c.Name, sqlColumnType(c.Type)})
	}
	for _, f := range spec.Fields {
		cols = append(cols,
			columnDef{f.RawColumn(), "TEXT"},
			columnDef{f.TypeColumn(), "TEXT"},
			columnDef{f.RenderedColumn(), "TEXT"},
		)
	}
	cols = append(cols,
		columnDef{types.CreatedAtColumn, "TEXT"},
		columnDef{types.UpdatedAtColumn, "TEXT"},
	)
	return cols
}

// createTableSQL generates the DDL for a table declaration.
func createTableSQL(spec types.TableSpec) string {
	cols := physicalColumns(spec)
	lines := make([]string, 0, len(cols))
	for _, c := range cols {
		constraint := " NOT NULL"
		if c.name == types.IDColumn {
			constraint = " PRIMARY KEY"
		} else if c.sqlType == "TEXT" {
			constraint += " DEFAULT ''"
		} else {
			constraint += " DEFAULT 0"
		}
		lines = append(lines, fmt.Sprintf("    %s %s%s", quoteIdent(c.name), c.sqlType, constraint))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		quoteIdent(spec.Name), strings.Join(lines, ",\n"))
}

// columnNameList renders the quoted, comma-separated column list for
// SELECT and INSERT statements.
func columnNameList(cols []columnDef) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.name)
	}
	return strings.Join(names, ", ")
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
