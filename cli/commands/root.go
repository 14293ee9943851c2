// Package commands implements the slugstore CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/config"
	"github.com/satishbabariya/slugstore/cli/internal/ui"
	"github.com/satishbabariya/slugstore/internal/debug"
	"github.com/satishbabariya/slugstore/store"
)

const version = "0.1.0"

var (
	flagDB    string
	flagTable string
)

var rootCmd = &cobra.Command{
	Use:   "slugstore",
	Short: "Slug-keyed single-table SQLite store",
	Long: `slugstore manages one slug-keyed table in an embedded SQLite database:
schema setup, row upserts and filtered reads, with every identifier
validated and every value parameter-bound.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTable, "table", "", "table name (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

// Execute is the CLI entry point.
func Execute() error {
	debug.InitFromEnv()
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		return err
	}
	return nil
}

// loadConfig loads configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}
	if flagTable != "" {
		cfg.TableName = flagTable
	}
	return cfg, nil
}

// openTable opens the configured table handle. Callers must Close it.
func openTable() (*store.Table, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.DatabasePath, cfg.TableName)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printers()["info"].Printf("slugstore %s\n", version)
	},
}
