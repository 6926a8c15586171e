// Create command inserts a new record from a JSON payload.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var createCmd = &cobra.Command{
	Use:   "create <table> <json>",
	Short: "Create a record in a table",
	Long: `Create inserts a new record built from a flat JSON object. Markup
fields accept either a plain string (raw text, default markup type) or
an object with "raw" and "markup_type" keys. The rendered text is
computed on save.

Example:
  inkwell create posts '{"title":"Hi","body":"*hello*"}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]
		payload := args[1]

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

		spec, ok := backend.Spec(tableName)
		if !ok {
			return fmt.Errorf("unknown table %q", tableName)
		}

		rec, err := spec.RecordFromJSON([]byte(payload))
		if err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}

		id, err := coll.Set("", rec)
		if err != nil {
			return fmt.Errorf("save record: %w", err)
		}

		saved, err := coll.Get(id)
		if err != nil {
			return fmt.Errorf("get saved record: %w", err)
		}
		return printJSON(cmd, saved)
	},
}
