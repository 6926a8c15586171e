package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

// Compile-time interface check: collection must implement Collection.
var _ types.Collection = (*collection)(nil)

// collection implements types.Collection for one defined table. Each
// operation hydrates between SQLite rows and *types.Record views; Set
// is the save boundary that re-renders every markup field.
type collection struct {
	backend *Backend
	spec    types.TableSpec
}

// newUUID generates a UUID v7 string, falling back to v4 if the clock
// source fails.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Get retrieves a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if no row exists.
func (c *collection) Get(id string) (*types.Record, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	if !c.backend.attached {
		return nil, types.ErrStoreDetached
	}

	cols := physicalColumns(c.spec)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		columnNameList(cols), quoteIdent(c.spec.Name), quoteIdent(types.IDColumn))

	rec, err := c.scanRecord(c.backend.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}
	return rec, nil
}

// Set persists a record. This is the save boundary: every markup
// field is re-rendered through the backend's registry before the row
// is written, inside a single transaction. A render failure (unknown
// markup type, renderer error) aborts the save with no partial write.
// When id is empty the record's own ID is used, or a UUID v7 is
// generated. Returns the ID actually used.
func (c *collection) Set(id string, rec *types.Record) (string, error) {
	if rec == nil {
		return "", types.ErrInvalidData
	}
	if rec.Spec().Name != c.spec.Name {
		return "", fmt.Errorf("%w: record belongs to table %q", types.ErrInvalidData, rec.Spec().Name)
	}

	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()

	if !c.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = rec.ID
	}
	if id == "" {
		id = newUUID()
	}

	// Render before touching the database. A failure here leaves the
	// stored row (and its cached rendered text) exactly as it was.
	if err := rec.PrepareForSave(c.backend.registry); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	var exists bool
	err := c.backend.db.QueryRow(
		fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", quoteIdent(c.spec.Name), quoteIdent(types.IDColumn)),
		id,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("checking record existence: %w", err)
	}
	if !exists {
		rec.CreatedAt = now
	} else if rec.CreatedAt.IsZero() {
		// Updating through a fresh record view keeps the original
		// creation time.
		var createdAt string
		if err := c.backend.db.QueryRow(
			fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
				quoteIdent(types.CreatedAtColumn), quoteIdent(c.spec.Name), quoteIdent(types.IDColumn)),
			id,
		).Scan(&createdAt); err != nil {
			return "", fmt.Errorf("reading creation time: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = parsed
		}
	}
	rec.UpdatedAt = now
	rec.ID = id

	tx, err := c.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	cols := physicalColumns(c.spec)
	values, err := c.rowValues(rec)
	if err != nil {
		return "", err
	}

	if exists {
		assignments := make([]string, 0, len(cols)-1)
		args := make([]any, 0, len(cols))
		for i, col := range cols {
			if col.name == types.IDColumn {
				continue
			}
			assignments = append(assignments, quoteIdent(col.name)+" = ?")
			args = append(args, values[i])
		}
		args = append(args, id)
		_, err = tx.Exec(
			fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
				quoteIdent(c.spec.Name), strings.Join(assignments, ", "), quoteIdent(types.IDColumn)),
			args...,
		)
	} else {
		_, err = tx.Exec(
			fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				quoteIdent(c.spec.Name), columnNameList(cols), placeholders(len(cols))),
			values...,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing save: %w", err)
	}
	return id, nil
}

// Delete removes a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if no row exists.
func (c *collection) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()

	if !c.backend.attached {
		return types.ErrStoreDetached
	}

	result, err := c.backend.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quoteIdent(c.spec.Name), quoteIdent(types.IDColumn)),
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns records matching the filter, ordered by creation time.
// Filter keys may be plain columns or markup raw/type columns; an
// unknown key returns ErrInvalidFilter. An empty filter matches all.
func (c *collection) Fetch(filter map[string]any) ([]*types.Record, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()

	if !c.backend.attached {
		return nil, types.ErrStoreDetached
	}

	cols := physicalColumns(c.spec)
	query := fmt.Sprintf("SELECT %s FROM %s", columnNameList(cols), quoteIdent(c.spec.Name))

	var (
		clauses []string
		args    []any
	)
	for key, value := range filter {
		if !c.filterable(key) {
			return nil, fmt.Errorf("%w: %q", types.ErrInvalidFilter, key)
		}
		clauses = append(clauses, quoteIdent(key)+" = ?")
		args = append(args, value)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY %s, %s", quoteIdent(types.CreatedAtColumn), quoteIdent(types.IDColumn))

	rows, err := c.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	var records []*types.Record
	for rows.Next() {
		rec, err := c.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// filterable reports whether a column may appear in a Fetch filter.
// Rendered columns are excluded: the cache is an output, not a key.
func (c *collection) filterable(column string) bool {
	if _, ok := c.spec.Column(column); ok {
		return true
	}
	for _, f := range c.spec.Fields {
		if column == f.RawColumn() || column == f.TypeColumn() {
			return true
		}
	}
	return false
}

// rowValues flattens a record into driver values in physicalColumns
// order.
func (c *collection) rowValues(rec *types.Record) ([]any, error) {
	values := []any{rec.ID}
	for _, col := range c.spec.Columns {
		v, _ := rec.Get(col.Name)
		if v == nil {
			if col.Type == types.ColumnInteger {
				v = int64(0)
			} else {
				v = ""
			}
		}
		values = append(values, v)
	}
	for _, f := range c.spec.Fields {
		m, err := rec.Markup(f.Name)
		if err != nil {
			return nil, err
		}
		values = append(values, m.Raw, m.Type, m.Rendered())
	}
	values = append(values,
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.UpdatedAt.UTC().Format(time.RFC3339),
	)
	return values, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord hydrates one row into a fresh *types.Record.
func (c *collection) scanRecord(row rowScanner) (*types.Record, error) {
	var (
		id        string
		createdAt string
		updatedAt string
	)

	texts := make([]sql.NullString, len(c.spec.Columns))
	ints := make([]sql.NullInt64, len(c.spec.Columns))
	markups := make([]sql.NullString, 3*len(c.spec.Fields))

	dest := []any{&id}
	for i, col := range c.spec.Columns {
		if col.Type == types.ColumnInteger {
			dest = append(dest, &ints[i])
		} else {
			dest = append(dest, &texts[i])
		}
	}
	for i := range markups {
		dest = append(dest, &markups[i])
	}
	dest = append(dest, &createdAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	rec := types.NewRecord(c.spec)
	rec.ID = id
	for i, col := range c.spec.Columns {
		var value any
		if col.Type == types.ColumnInteger {
			value = ints[i].Int64
		} else {
			value = texts[i].String
		}
		if err := rec.Set(col.Name, value); err != nil {
			return nil, err
		}
	}
	for i, f := range c.spec.Fields {
		m := types.NewMarkup(markups[3*i].String, markups[3*i+1].String, markups[3*i+2].String)
		if err := rec.SetMarkup(f.Name, m); err != nil {
			return nil, err
		}
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = parsed
	}
	if parsed, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		rec.UpdatedAt = parsed
	}
	return rec, nil
}
