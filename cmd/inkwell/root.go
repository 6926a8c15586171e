// Root command for the inkwell CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/inkwell/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Inkwell stores records with markup fields rendered at save time",
	Long: `Inkwell is a record store built around the markup field: a logical
field that keeps raw markup text, a markup-type name, and a cached
rendered HTML version in three columns. The rendered text is recomputed
through the renderer registry every time a record is saved.`,
	Version: Version,
	// Errors are reported once by main; do not print usage on them.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.inkwell-db)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(defineCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(importHTMLCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > INKWELL_DATA_DIR env >
// $(CWD)/.inkwell-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > INKWELL_CONFIG_DIR env > platform
// default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
