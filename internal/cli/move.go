package cli

import (
	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/views"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> <column>",
	Short: "Move a record to another board column",
	Long: `Move a record between kanban columns by setting its workflow field
(stage for opportunities, status for everything else).

Examples:
  gridlex move o-004 Qualified
  gridlex move t-002 "In Progress"`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(cmd *cobra.Command, args []string) error {
	id, column := args[0], args[1]

	app, ok := requireApp()
	if !ok {
		return nil
	}

	rec, found := app.Records.GetRecordByID(id)
	if !found {
		logger.Debug("move skipped: record not found", "id", id)
		return nil
	}
	field := views.WorkflowField(rec.Table())
	if err := rec.SetField(field, column); err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"record_id": id, "field": field})
		return nil
	}

	return saveRecord(cmd, app, rec)
}
