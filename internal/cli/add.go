package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
)

var addSetFlags []string

var addCmd = &cobra.Command{
	Use:   "add <table> <name>",
	Short: "Create a record",
	Long: `Create a record in a table. The record gets a fresh id and today's
date for both createdAt and updatedAt.

New records start in the first workflow state of their table (contacts
Active, opportunities Lead, organizations Prospect, tasks Pending/Medium).

Examples:
  gridlex add contacts "Ada Lovelace" --set email=ada@example.com
  gridlex add opportunities "Big Deal" --set value=50000 --set closeDate=2024-06-30
  gridlex add tasks "Follow up" --set dueDate=2024-04-01 --set priority=High`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringArrayVar(&addSetFlags, "set", nil, "Set field value (field=value, can be repeated)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	table, err := model.ParseTableType(args[0])
	if err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"table": args[0]})
		return nil
	}
	if !table.IsRecordTable() {
		ExitValidationError("records can only be added to contacts, opportunities, organizations, or tasks",
			map[string]interface{}{"table": args[0]})
		return nil
	}

	pairs, err := parseAssignments(addSetFlags)
	if err != nil {
		ExitValidationError(err.Error(), nil)
		return nil
	}

	rec, err := model.NewRecord(table)
	if err != nil {
		return err
	}
	rec.SetName(args[1])
	if err := applyAssignments(rec, newRecordDefaults[table]); err != nil {
		return err
	}
	if err := applyAssignments(rec, pairs); err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"table": string(table)})
		return nil
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}
	created, err := app.Records.CreateRecord(rec)
	if err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	logger.Info("record created", "id", created.Meta().ID, "table", table)

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), created)
	}
	fmt.Fprintln(cmd.OutOrStdout(), created.Meta().ID)
	return nil
}
