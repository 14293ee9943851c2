package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/slugstore/cli/internal/ui"
	"github.com/satishbabariya/slugstore/filter"
	"github.com/satishbabariya/slugstore/store"
)

var (
	queryWhere    string
	queryColumns  []string
	queryOrder    string
	queryLimit    int
	queryOffset   int
	queryDistinct bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run a filtered read",
	Long: `Run a filtered read against the table. The --where expression uses
column comparisons combined with AND/OR/NOT, e.g.
  slugstore query --where 'views >= 10 AND NOT (title IS NULL)' --order '_id' --limit 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := store.SelectOptions{
			Columns:  queryColumns,
			Distinct: queryDistinct,
		}
		if queryWhere != "" {
			node, err := filter.Parse(queryWhere)
			if err != nil {
				return err
			}
			opts.Filter = node
		}
		if queryOrder != "" {
			order, err := parseOrder(queryOrder)
			if err != nil {
				return err
			}
			opts.OrderBy = order
		}
		if cmd.Flags().Changed("limit") {
			opts.Limit = &queryLimit
		}
		if cmd.Flags().Changed("offset") {
			opts.Offset = &queryOffset
		}

		t, err := openTable()
		if err != nil {
			return err
		}
		defer t.Close()

		rows, err := t.Select(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			ui.PrintInfo("no rows")
			return nil
		}
		printRows(queryColumns, rows)
		ui.PrintInfo("%d row(s)", len(rows))
		return nil
	},
}

// parseOrder parses "col [asc|desc], col2 [asc|desc], ...".
func parseOrder(s string) ([]store.OrderBy, error) {
	var order []store.OrderBy
	for _, term := range strings.Split(s, ",") {
		fields := strings.Fields(term)
		switch len(fields) {
		case 1:
			order = append(order, store.OrderBy{Column: fields[0]})
		case 2:
			switch strings.ToLower(fields[1]) {
			case "asc":
				order = append(order, store.OrderBy{Column: fields[0]})
			case "desc":
				order = append(order, store.OrderBy{Column: fields[0], Desc: true})
			default:
				return nil, fmt.Errorf("order direction must be asc or desc: %q", term)
			}
		default:
			return nil, fmt.Errorf("malformed order term: %q", term)
		}
	}
	return order, nil
}

func printRows(projection []string, rows []store.Row) {
	headers := projection
	if len(headers) == 0 {
		headers = make([]string, 0, len(rows[0]))
		for name := range rows[0] {
			headers = append(headers, name)
		}
		sort.Strings(headers)
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(headers))
		for j, name := range headers {
			cells[i][j] = formatValue(row[name])
		}
	}
	ui.PrintTable(headers, cells)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("blob(%d bytes)", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func init() {
	queryCmd.Flags().StringVar(&queryWhere, "where", "", "filter expression")
	queryCmd.Flags().StringSliceVar(&queryColumns, "columns", nil, "projection columns (default all)")
	queryCmd.Flags().StringVar(&queryOrder, "order", "", "ordering, e.g. \"views desc,_id\"")
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "maximum rows to return")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "rows to skip")
	queryCmd.Flags().BoolVar(&queryDistinct, "distinct", false, "eliminate duplicate rows")
	rootCmd.AddCommand(queryCmd)
}
