// List command queries records from a table with optional filtering.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var listFilters []string

var listCmd = &cobra.Command{
	Use:   "list <table>",
	Short: "List records in a table",
	Long: `List prints all records of a table as JSON, optionally restricted by
exact-match filters on plain columns or markup raw/type columns.

Example:
  inkwell list posts --filter body_markup_type=markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]

		assignments, err := parseAssignments(listFilters)
		if err != nil {
			return err
		}
		filter := make(map[string]any, len(assignments))
		for column, value := range assignments {
			filter[column] = value
		}

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

		records, err := coll.Fetch(filter)
		if err != nil {
			return fmt.Errorf("fetch records: %w", err)
		}
		if records == nil {
			records = []*types.Record{}
		}
		return printJSON(cmd, records)
	},
}

func init() {
	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "exact-match filter, column=value (repeatable)")
}
