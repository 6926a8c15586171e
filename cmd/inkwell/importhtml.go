// Import-html command converts an HTML document into a markdown record.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/internal/htmlimport"
	"github.com/mesh-intelligence/inkwell/pkg/render"
	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var importHTMLSets []string

var importHTMLCmd = &cobra.Command{
	Use:   "import-html <table> <field> [file]",
	Short: "Import an HTML document as a markdown record",
	Long: `Import-html reads an HTML document (from a file or stdin), strips
page chrome, converts the main content to Markdown, and saves it as a
new record with the named markup field set to the converted text and
its markup type set to markdown.

Example:
  inkwell import-html posts body page.html --set title="Imported page"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tableName := args[0]
		fieldName := args[1]
		file := ""
		if len(args) == 3 {
			file = args[2]
		}

		html, err := readInput(cmd, file)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		markdown, err := htmlimport.Convert(string(html))
		if err != nil {
			return fmt.Errorf("convert HTML: %w", err)
		}

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
		rec := types.NewRecord(spec)
		if err := rec.SetMarkup(fieldName, types.NewMarkup(markdown, render.TypeMarkdown, "")); err != nil {
			return fmt.Errorf("set field %q: %w", fieldName, err)
		}

		assignments, err := parseAssignments(importHTMLSets)
		if err != nil {
			return err
		}
		for column, value := range assignments {
			if err := rec.Set(column, value); err != nil {
				return fmt.Errorf("set column %q: %w", column, err)
			}
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

func init() {
	importHTMLCmd.Flags().StringArrayVar(&importHTMLSets, "set", nil, "plain column assignment, column=value (repeatable)")
}
