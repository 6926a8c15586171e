// Delete command removes a record by ID.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <table> <id>",
	Short: "Delete a record by ID",
	Args:  cobra.ExactArgs(2),
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

		if err := coll.Delete(recordID); err != nil {
			if errors.Is(err, types.ErrNotFound) {
				return fmt.Errorf("record %q not found in table %q", recordID, tableName)
			}
			return fmt.Errorf("delete record: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s from %s\n", recordID, tableName)
		return nil
	},
}
