// Init command creates the data directory and database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the inkwell storage",
	Long:  `Init creates the data directory and an empty database so table definitions can follow.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized inkwell storage in %s\n", dataDir)
		return nil
	},
}
