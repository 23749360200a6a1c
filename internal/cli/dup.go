package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
)

var dupCmd = &cobra.Command{
	Use:   "dup <id>",
	Short: "Duplicate a record",
	Long: `Copy a record into the same table under a new id. The copy's name
gets " (Copy)" appended and both dates are set to today. An unknown id is
ignored.

Examples:
  gridlex dup o-002`,
	Args: cobra.ExactArgs(1),
	RunE: runDup,
}

func init() {
	rootCmd.AddCommand(dupCmd)
}

func runDup(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}

	dup, err := app.Records.DuplicateRecord(args[0])
	if errors.Is(err, model.ErrRecordNotFound) {
		logger.Debug("duplicate skipped: record not found", "id", args[0])
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to duplicate record: %w", err)
	}
	logger.Info("record duplicated", "source", args[0], "id", dup.Meta().ID)

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), dup)
	}
	fmt.Fprintln(cmd.OutOrStdout(), dup.Meta().ID)
	return nil
}
