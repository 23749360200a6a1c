package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
)

var (
	selectClear  bool
	selectAll    string
	selectRemove bool
	selectToggle bool
)

var selectCmd = &cobra.Command{
	Use:   "select [id]...",
	Short: "Manage the record selection",
	Long: `Add records to the selection, or remove, toggle or clear them. With no
arguments the current selection is printed. The selection lives for the
session, so it is mostly useful inside 'gridlex shell'.

Examples:
  gridlex select c-001 c-002
  gridlex select --remove c-002
  gridlex select --toggle c-003
  gridlex select --all contacts
  gridlex select --clear`,
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "Clear the selection")
	selectCmd.Flags().StringVar(&selectAll, "all", "", "Select every record of a table")
	selectCmd.Flags().BoolVar(&selectRemove, "remove", false, "Remove the given ids from the selection")
	selectCmd.Flags().BoolVar(&selectToggle, "toggle", false, "Toggle the given ids")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	if selectRemove && selectToggle {
		ExitValidationError("--remove and --toggle cannot be combined", nil)
		return nil
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}
	st := app.Records

	if selectClear {
		st.ClearSelection()
	}
	if selectAll != "" {
		table, err := model.ParseTableType(selectAll)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": selectAll})
			return nil
		}
		st.SelectAll(table)
	}

	switch {
	case selectRemove:
		st.Deselect(args...)
	case selectToggle:
		for _, id := range args {
			st.ToggleSelect(id)
		}
	default:
		st.Select(args...)
	}

	selected := st.Selected()
	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"selected": selected})
	}
	if len(selected) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records selected.")
		return nil
	}
	for _, id := range selected {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}
