// Render command runs text through the renderer registry directly.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/pkg/render"
)

var renderType string

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render markup text to HTML",
	Long: `Render converts raw text (from a file or stdin) to HTML using one of
the registered markup types, without touching any stored record.

Example:
  echo '*fancy*' | inkwell render --type markdown`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) == 1 {
			file = args[0]
		}
		raw, err := readInput(cmd, file)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		registry := render.Default()
		out, err := registry.Render(renderType, string(raw))
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderType, "type", "t", render.TypeMarkdown, "markup type to render with")
}
