package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/ui"
)

var rowCmd = &cobra.Command{
	Use:   "row",
	Short: "Manage rows by slug",
}

var rowPutData string

var rowPutCmd = &cobra.Command{
	Use:   "put <slug>",
	Short: "Insert or update a row",
	Long: `Insert or update the row identified by slug. The payload is a JSON
object whose keys must be existing, non-reserved columns:
  slugstore row put p1 --data '{"title":"Hello","views":3}'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload map[string]any
		if err := json.Unmarshal([]byte(rowPutData), &payload); err != nil {
			return fmt.Errorf("parse payload: %w", err)
		}
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		if err := t.RowUpsert(cmd.Context(), args[0], payload); err != nil {
			return err
		}
		ui.PrintSuccess("row %s written", args[0])
		return nil
	},
}

var rowHasCmd = &cobra.Command{
	Use:   "has <slug>",
	Short: "Check whether a row exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		ok, err := t.RowExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if ok {
			ui.PrintSuccess("row %s exists", args[0])
		} else {
			ui.PrintWarning("row %s does not exist", args[0])
		}
		return nil
	},
}

var rowRmCmd = &cobra.Command{
	Use:   "rm <slug>",
	Short: "Delete a row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()
		removed, err := t.RowRemove(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if removed {
			ui.PrintSuccess("row %s removed", args[0])
		} else {
			ui.PrintWarning("row %s did not exist", args[0])
		}
		return nil
	},
}

func init() {
	rowPutCmd.Flags().StringVar(&rowPutData, "data", "{}", "JSON object of column values")
	rowCmd.AddCommand(rowPutCmd, rowHasCmd, rowRmCmd)
	rootCmd.AddCommand(rowCmd)
}
