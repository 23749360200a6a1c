package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/views"
)

var viewsTable string

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Show which views each table supports",
	Long: `Show the view availability matrix. Unavailable views list the reason
and a suggested alternative.

Examples:
  gridlex views
  gridlex views --table contacts
  gridlex views --json`,
	Args: cobra.NoArgs,
	RunE: runViews,
}

func init() {
	viewsCmd.Flags().StringVarP(&viewsTable, "table", "t", "", "Only show one table")
	rootCmd.AddCommand(viewsCmd)
}

type viewAvailability struct {
	Table model.TableType `json:"table"`
	View  model.ViewType  `json:"view"`
	views.Availability
}

func runViews(cmd *cobra.Command, args []string) error {
	tables := model.AllTables
	if viewsTable != "" {
		t, err := model.ParseTableType(viewsTable)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": viewsTable})
			return nil
		}
		tables = []model.TableType{t}
	}

	var rows []viewAvailability
	for _, t := range tables {
		for _, v := range model.AllViews {
			rows = append(rows, viewAvailability{Table: t, View: v, Availability: views.GetViewAvailability(t, v)})
		}
	}

	out := cmd.OutOrStdout()
	if GetJSONOutput() {
		return printJSON(out, rows)
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s (default: %s)\n", t, views.GetFirstAvailableView(t, model.ListView))
		for _, row := range rows {
			if row.Table != t {
				continue
			}
			if row.Available {
				fmt.Fprintf(out, "  %-9s available\n", row.View)
				continue
			}
			fmt.Fprintf(out, "  %-9s unavailable: %s\n", row.View, row.Reason)
			fmt.Fprintf(out, "  %-9s %s\n", "", row.Suggestion)
		}
	}
	return nil
}
