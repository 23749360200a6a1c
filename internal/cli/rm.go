package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete records",
	Long: `Delete one or more records from every table and from the selection.
Unknown ids are ignored.

Examples:
  gridlex rm c-004
  gridlex rm t-004 t-006`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}

	removed := app.Records.DeleteRecords(args)
	if len(removed) < len(args) {
		logger.Debug("delete ignored unknown ids", "requested", len(args), "removed", len(removed))
	}

	if GetJSONOutput() {
		if removed == nil {
			removed = []string{}
		}
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"deleted": removed})
	}
	if !IsQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s)\n", len(removed))
	}
	return nil
}
