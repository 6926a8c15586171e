// Get command retrieves a record by ID.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <table> <id>",
	Short: "Get a record by ID",
	Long: `Get retrieves a record and prints it as JSON. Markup fields appear
as objects with raw, markup_type, and rendered keys.

Example:
  inkwell get posts 0190f3a2-...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]
		recordID := args[1]

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		coll, err := backend.Collection(tableName)
		if err != nil {
			if errors.Is(err, types.ErrCollectionNotFound) {
				return fmt.Errorf("unknown table %q", tableName)
			}
			return fmt.Errorf("get collection: %w", err)
		}

		rec, err := coll.Get(recordID)
		if err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("record %q not found in table %q", recordID, tableName)
			}
			return fmt.Errorf("get record: %w", err)
		}
		return printJSON(cmd, rec)
	},
}
