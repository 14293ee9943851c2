package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/ui"
	"github.com/satishbabariya/slugstore/schema"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Manage the table schema",
}

var tableCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the table if absent",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		res, err := t.EnsureTable(cmd.Context())
		if err != nil {
			return err
		}
		reportResult(res, "table "+t.Name())
		return nil
	},
}

var tableDropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop the table if present",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		res, err := t.DropTable(cmd.Context())
		if err != nil {
			return err
		}
		reportResult(res, "table "+t.Name())
		return nil
	},
}

var tableColumnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the live column catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		cols := t.Columns(cmd.Context())
		if len(cols) == 0 {
			ui.PrintWarning("table %s does not exist", t.Name())
			return nil
		}
		names := make([]string, 0, len(cols))
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)
		rows := make([][]string, len(names))
		for i, name := range names {
			rows[i] = []string{name, cols[name]}
		}
		ui.PrintTable([]string{"column", "type"}, rows)
		return nil
	},
}

var tableAddColumnCmd = &cobra.Command{
	Use:   "add-column <name> <type>",
	Short: "Add a column (INTEGER, REAL, BLOB or TEXT) if absent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := schema.ParseColumnType(args[1])
		if err != nil {
			return err
		}
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		res, err := t.AddColumn(cmd.Context(), args[0], typ)
		if err != nil {
			return err
		}
		reportResult(res, "column "+args[0])
		return nil
	},
}

var tableDropColumnCmd = &cobra.Command{
	Use:   "drop-column <name>",
	Short: "Drop a column if present",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		res, err := t.DropColumn(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		reportResult(res, "column "+args[0])
		return nil
	},
}

var tableEnsureColumnsCmd = &cobra.Command{
	Use:   "ensure-columns <json>",
	Short: "Ensure a set of columns exists",
	Long: `Ensure every column in a JSON name-to-type object exists, e.g.
  slugstore table ensure-columns '{"title":"TEXT","views":"INTEGER"}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw map[string]string
		if err := json.Unmarshal([]byte(args[0]), &raw); err != nil {
			return fmt.Errorf("parse columns: %w", err)
		}
		want := make(map[string]schema.ColumnType, len(raw))
		for name, typ := range raw {
			ct, err := schema.ParseColumnType(typ)
			if err != nil {
				return err
			}
			want[name] = ct
		}
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		if err := t.EnsureColumns(cmd.Context(), want); err != nil {
			return err
		}
		ui.PrintSuccess("%d column(s) ensured", len(want))
		return nil
	},
}

func reportResult(res schema.Result, subject string) {
	switch res {
	case schema.Applied:
		ui.PrintSuccess("%s: %s", subject, res)
	case schema.Unchanged:
		ui.PrintInfo("%s: %s", subject, res)
	default:
		ui.PrintError("%s: %s", subject, res)
	}
}

func init() {
	tableCmd.AddCommand(tableCreateCmd, tableDropCmd, tableColumnsCmd,
		tableAddColumnCmd, tableDropColumnCmd, tableEnsureColumnsCmd)
	rootCmd.AddCommand(tableCmd)
}
