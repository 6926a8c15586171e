// Load command imports JSONL records into a table.
package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load <table> [file]",
	Short: "Load JSONL records into a table",
	Long: `Load reads one JSON object per line (from a file or stdin) and saves
each as a record. Rendered text carried in the input is recomputed on
save; records with a record_id upsert.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]
		file := ""
		if len(args) == 2 {
			file = args[1]
		}

		input, err := readInput(cmd, file)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		count, err := backend.Import(tableName, bytes.NewReader(input))
		if err != nil {
			return fmt.Errorf("load into %q after %d records: %w", tableName, count, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d records into %s\n", count, tableName)
		return nil
	},
}
