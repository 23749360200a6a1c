package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/export"
	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
	"github.com/user/gridlex/internal/viewconfig"
)

var (
	exportFormat   string
	exportTable    string
	exportConfig   string
	exportSearch   string
	exportFilters  []string
	exportSelected bool
	exportColumns  string
	exportForce    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export records to a file",
	Long: `Export the working set of a table (after search, filters and sort) to
CSV, JSON, or JSONL format.

By default, exports to CSV format. Use --format to specify the output format.
If no file is specified, writes to stdout.

CSV cells that contain a comma are wrapped in double quotes.

Examples:
  gridlex export                                     # Contacts to stdout (CSV)
  gridlex export deals.csv --table opportunities     # Export to CSV file
  gridlex export tasks.json --table tasks --format json
  gridlex export --config pipeline --format jsonl
  gridlex export picked.csv --table unified --selected`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, jsonl")
	exportCmd.Flags().StringVarP(&exportTable, "table", "t", "contacts", "Table to export")
	exportCmd.Flags().StringVar(&exportConfig, "config", "", "Use a saved view config for table, filters, sort and columns")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "Free-text search")
	exportCmd.Flags().StringArrayVar(&exportFilters, "filter", nil, "Filter clause (can be repeated)")
	exportCmd.Flags().BoolVar(&exportSelected, "selected", false, "Only export selected records")
	exportCmd.Flags().StringVar(&exportColumns, "columns", "", "CSV columns (comma-separated)")
	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "Overwrite existing file without warning")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"format": exportFormat})
		return nil
	}

	outputFile := ""
	if len(args) > 0 {
		outputFile = args[0]
	}
	if outputFile != "" && !exportForce {
		if _, err := os.Stat(outputFile); err == nil {
			ExitValidationError(fmt.Sprintf("file '%s' already exists (use --force to overwrite)", outputFile),
				map[string]interface{}{"file": outputFile})
			return nil
		}
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}

	var cfg viewconfig.ViewConfig
	if exportConfig != "" {
		c, err := app.Configs.Get(exportConfig)
		if err != nil {
			ExitConfigNotFound(exportConfig)
			return nil
		}
		cfg = c
	}
	if exportConfig == "" || cmd.Flags().Changed("table") {
		table, err := model.ParseTableType(exportTable)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": exportTable})
			return nil
		}
		cfg.TableType = table
	}
	filters, err := parseFilters(exportFilters)
	if err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"filters": exportFilters})
		return nil
	}
	cfg.Filters = append(cfg.Filters, filters...)
	if exportColumns != "" {
		cfg.VisibleFields = parseColumns(exportColumns)
	}

	records := query.Run(app.Records.RecordsForTable(cfg.TableType), viewconfig.Options(cfg, exportSearch))
	if exportSelected {
		kept := records[:0]
		for _, rec := range records {
			if app.Records.IsSelected(rec.Meta().ID) {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	if outputFile == "" {
		return export.Write(cmd.OutOrStdout(), format, records, cfg.Fields())
	}
	if err := export.WriteFile(outputFile, format, records, cfg.Fields()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("export written", "file", outputFile, "format", format, "records", len(records))

	if !IsQuiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d record(s) to %s\n", len(records), outputFile)
	}
	return nil
}
