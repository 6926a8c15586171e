// JSONL dump and load for defined tables. One record per line, in the
// same flat JSON shape the record API uses; loading replays each line
// through the normal save path, so rendered text is recomputed rather
// than trusted from the dump.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Export writes every record of a table as one JSON object per line.
func (b *Backend) Export(table string, w io.Writer) error {
	coll, err := b.Collection(table)
	if err != nil {
		return err
	}
	records, err := coll.Fetch(nil)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encoding record %s: %w", rec.ID, err)
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	return bw.Flush()
}

// Import reads JSONL records and saves each one through the normal
// save path. Records carrying a record_id upsert; records without one
// get fresh IDs. Returns the number of records imported; a malformed
// line or a failed save aborts the import at that line.
func (b *Backend) Import(table string, r io.Reader) (int, error) {
	coll, err := b.Collection(table)
	if err != nil {
		return 0, err
	}
	b.mu.RLock()
	spec := b.specs[table]
	b.mu.RUnlock()

	count := 0
	lineNo := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		rec, err := spec.RecordFromJSON(line)
		if err != nil {
			return count, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := coll.Set(rec.ID, rec); err != nil {
			return count, fmt.Errorf("line %d: %w", lineNo, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("scanning input: %w", err)
	}
	return count, nil
}
