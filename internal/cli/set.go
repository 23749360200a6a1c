package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
)

var setCmd = &cobra.Command{
	Use:   "set <id> <field=value>...",
	Short: "Update fields of a record",
	Long: `Update one or more fields of a record and stamp updatedAt with today.

System fields (id, tableType, createdAt, updatedAt) are read-only. An
unknown id changes nothing and is not reported as an error.

Examples:
  gridlex set c-001 email=sarah@example.com role="Chief Revenue Officer"
  gridlex set o-003 stage="Closed Won"
  gridlex set c-006 location=51.5074,-0.1278`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	id := args[0]
	pairs, err := parseAssignments(args[1:])
	if err != nil {
		ExitValidationError(err.Error(), nil)
		return nil
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}

	rec, found := app.Records.GetRecordByID(id)
	if !found {
		logger.Debug("update skipped: record not found", "id", id)
		return nil
	}
	if err := applyAssignments(rec, pairs); err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"record_id": id})
		return nil
	}

	return saveRecord(cmd, app, rec)
}

// saveRecord writes rec back to the store. A record that vanished in the
// meantime is skipped silently.
func saveRecord(cmd *cobra.Command, app *App, rec model.Record) error {
	updated, err := app.Records.UpdateRecord(rec)
	if errors.Is(err, model.ErrRecordNotFound) {
		logger.Debug("update skipped: record not found", "id", rec.Meta().ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	logger.Info("record updated", "id", updated.Meta().ID)

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), updated)
	}
	if !IsQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Meta().ID)
	}
	return nil
}
