// Set command creates or updates a record by ID.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var setCmd = &cobra.Command{
	Use:   "set <table> <id> <json>",
	Short: "Create or update a record with a chosen ID",
	Long: `Set writes a record under the given ID, creating it if absent and
replacing it wholesale otherwise. The payload is the same flat JSON
shape create accepts. Saving re-renders every markup field; writing a
rendered column directly is rejected.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]
		recordID := args[1]
		payload := args[2]

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		coll, err := backend.Collection(tableName)
		if err != nil {
			if errors.Is(err, types.ErrCollectionNotFound) {
				return fmt.Errorf("unknown table %q (define it first)", tableName)
			}
			return fmt.Errorf("get collection: %w", err)
		}

		spec, _ := backend.Spec(tableName)
		rec, err := spec.RecordFromJSON([]byte(payload))
		if err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}

		savedID, err := coll.Set(recordID, rec)
		if err != nil {
			return fmt.Errorf("save record: %w", err)
		}

		saved, err := coll.Get(savedID)
		if err != nil {
			return fmt.Errorf("get saved record: %w", err)
		}
		return printJSON(cmd, saved)
	},
}
