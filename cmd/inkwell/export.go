// Export command dumps a table as JSONL.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportFile string

var exportCmd = &cobra.Command{
	Use:   "export <table>",
	Short: "Export a table as JSONL",
	Long: `Export writes every record of a table as one JSON object per line,
to a file or stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		out := cmd.OutOrStdout()
		if exportFile != "" && exportFile != "-" {
			f, err := os.Create(exportFile)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := backend.Export(tableName, out); err != nil {
			return fmt.Errorf("export %q: %w", tableName, err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFile, "output", "o", "", "output file (default: stdout)")
}
