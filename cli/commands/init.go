package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/config"
	"github.com/satishbabariya/slugstore/cli/internal/ui"
	"github.com/satishbabariya/slugstore/schema"
)

var initSaveConfig bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configured table",
	Long: `Create the configured table with its reserved columns
(_id, _slug, _created_at, _updated_at) if it does not exist yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()

		res, err := t.EnsureTable(cmd.Context())
		if err != nil {
			return err
		}
		switch res {
		case schema.Applied:
			ui.PrintSuccess("created table %s in %s", cfg.TableName, cfg.DatabasePath)
		case schema.Unchanged:
			ui.PrintInfo("table %s already exists in %s", cfg.TableName, cfg.DatabasePath)
		}

		if initSaveConfig {
			if err := config.Save(cfg); err != nil {
				return err
			}
			ui.PrintSuccess("saved configuration")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSaveConfig, "save-config", false, "write the effective configuration to $HOME/.config/slugstore")
	rootCmd.AddCommand(initCmd)
}
