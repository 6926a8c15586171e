// Define command registers a table declaration from a YAML spec file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/inkwell/pkg/types"
)

var defineSpecFile string

var defineCmd = &cobra.Command{
	Use:   "define",
	Short: "Define a table from a YAML spec file",
	Long: `Define reads a table declaration and creates its physical schema.
Each markup field expands into three columns: raw text, markup type,
and cached rendered HTML.

Example spec file:

  name: posts
  columns:
    - name: title
      type: text
  fields:
    - name: body
      default_markup_type: markdown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := readTableSpec(defineSpecFile)
		if err != nil {
			return err
		}

		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := backend.Define(spec); err != nil {
			return fmt.Errorf("define table %q: %w", spec.Name, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Defined table %q\n", spec.Name)
		return nil
	},
}

func init() {
	defineCmd.Flags().StringVarP(&defineSpecFile, "file", "f", "", "YAML table spec file (required)")
	defineCmd.MarkFlagRequired("file")
}

// readTableSpec loads a TableSpec from a YAML file using Viper.
func readTableSpec(path string) (types.TableSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return types.TableSpec{}, fmt.Errorf("read spec file: %w", err)
	}

	var spec types.TableSpec
	if err := v.Unmarshal(&spec); err != nil {
		return types.TableSpec{}, fmt.Errorf("parse spec file: %w", err)
	}
	return spec, nil
}
