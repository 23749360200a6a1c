package cli

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single record",
	Long: `Display every field of one record.

Examples:
  gridlex show c-001
  gridlex show o-002 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}

	rec, found := app.Records.GetRecordByID(args[0])
	if !found {
		ExitRecordNotFound(args[0])
		return nil
	}

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), rec)
	}
	printRecord(cmd.OutOrStdout(), rec)
	return nil
}
