package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
	"github.com/user/gridlex/internal/viewconfig"
	"github.com/user/gridlex/internal/views"
)

var (
	listTable   string
	listView    string
	listSearch  string
	listFilters []string
	listSortBy  string
	listDesc    bool
	listConfig  string
	listGroupBy string
	listMonth   string
	listNear    string
	listRadius  float64
	listColumns string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Query records and render a view",
	Long: `Run the record query pipeline (search, filter, sort) over one table
and render the result in the chosen view.

Without --config the table's default view config supplies the view,
columns, sort and filters; flags given on the command line override it.

If the view is not available for the table, the first available view is
used instead and a notice explains why.

Filter format (repeatable, all filters must match):
  field=value          Equals (case-insensitive)
  field~value          Contains (case-insensitive)
  field>value          Greater than (numeric)
  field<value          Less than (numeric)
  "field between a..b" Accepted but not evaluated

Examples:
  gridlex list
  gridlex list --table opportunities --view kanban
  gridlex list --table opportunities --filter "value>20000" --sort-by value --desc
  gridlex list --table unified --search acme
  gridlex list --table tasks --view calendar --month 2024-03
  gridlex list --table contacts --view map --near 40.71,-74.00 --radius 25
  gridlex list --config pipeline`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listTable, "table", "t", "contacts", "Table: contacts, opportunities, organizations, tasks, unified")
	listCmd.Flags().StringVar(&listView, "view", "list", "View: list, kanban, calendar, map")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Free-text search across text fields")
	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "Filter clause (can be repeated)")
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Sort by field")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	listCmd.Flags().StringVar(&listConfig, "config", "", "Start from a saved view config")
	listCmd.Flags().StringVar(&listGroupBy, "group-by", "", "Board column field (kanban view)")
	listCmd.Flags().StringVar(&listMonth, "month", "", "Restrict the calendar to a month (yyyy-mm)")
	listCmd.Flags().StringVar(&listNear, "near", "", "Map center as lat,lng")
	listCmd.Flags().Float64Var(&listRadius, "radius", 50, "Map radius in km (with --near)")
	listCmd.Flags().StringVar(&listColumns, "columns", "", "Columns to show (comma-separated)")
	rootCmd.AddCommand(listCmd)
}

// listResult is the --json shape of list.
type listResult struct {
	Table   model.TableType `json:"table"`
	View    model.ViewType  `json:"view"`
	Config  string          `json:"config,omitempty"`
	Notice  string          `json:"notice,omitempty"`
	Count   int             `json:"count"`
	Records []model.Record  `json:"records"`
	Columns []views.Column  `json:"columns,omitempty"`
	Days    []views.Day     `json:"days,omitempty"`
	Points  []views.Point   `json:"points,omitempty"`
}

// resolveListConfig builds the effective view config from --config and the
// flags that were set explicitly.
func resolveListConfig(cmd *cobra.Command, app *App) (viewconfig.ViewConfig, bool) {
	var cfg viewconfig.ViewConfig
	if listConfig != "" {
		c, err := app.Configs.Get(listConfig)
		if err != nil {
			if errors.Is(err, model.ErrConfigNotFound) {
				ExitConfigNotFound(listConfig)
				return cfg, false
			}
			ExitWithError(1, ErrCodeValidation, err.Error(), nil)
			return cfg, false
		}
		cfg = c
	}

	flags := cmd.Flags()
	if listConfig == "" || flags.Changed("table") {
		table, err := model.ParseTableType(listTable)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": listTable})
			return cfg, false
		}
		cfg.TableType = table
	}

	// Without --config the table's last default config is the base.
	fromDefault := false
	if listConfig == "" {
		if defaults := app.Configs.Defaults(cfg.TableType); len(defaults) > 0 {
			cfg = defaults[len(defaults)-1]
			fromDefault = true
			logger.Debug("using default view config", "id", cfg.ID, "table", cfg.TableType)
		}
	}

	if (listConfig == "" && !fromDefault) || flags.Changed("view") {
		view, err := model.ParseViewType(listView)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"view": listView})
			return cfg, false
		}
		cfg.Type = view
	}

	filters, err := parseFilters(listFilters)
	if err != nil {
		ExitValidationError(err.Error(), map[string]interface{}{"filters": listFilters})
		return cfg, false
	}
	cfg.Filters = append(cfg.Filters, filters...)

	if listSortBy != "" {
		cfg.SortBy = listSortBy
		cfg.SortOrder = query.Asc
	}
	if listDesc {
		cfg.SortOrder = query.Desc
	}
	if listGroupBy != "" {
		cfg.GroupBy = listGroupBy
	}
	if listColumns != "" {
		cfg.VisibleFields = parseColumns(listColumns)
	}
	return cfg, true
}

func runList(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}

	cfg, ok := resolveListConfig(cmd, app)
	if !ok {
		return nil
	}

	var center model.Location
	if listNear != "" {
		c, err := parseLatLng(listNear)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"near": listNear})
			return nil
		}
		center = c
	}

	result := listResult{Table: cfg.TableType, View: cfg.Type, Config: cfg.ID}
	if av := views.GetViewAvailability(cfg.TableType, cfg.Type); !av.Available {
		result.View = views.GetFirstAvailableView(cfg.TableType, cfg.Type)
		result.Notice = fmt.Sprintf("%s view is not available for %s: %s %s Showing %s view.",
			cfg.Type, cfg.TableType, av.Reason, av.Suggestion, result.View)
		logger.Info("view fallback", "table", cfg.TableType, "requested", cfg.Type, "view", result.View)
	}

	records := query.Run(app.Records.RecordsForTable(cfg.TableType), viewconfig.Options(cfg, listSearch))
	if records == nil {
		records = []model.Record{}
	}
	result.Count = len(records)
	result.Records = records

	switch result.View {
	case model.KanbanView:
		result.Columns = views.Board(records, cfg.TableType, cfg.GroupBy)
	case model.CalendarView:
		result.Days = views.Calendar(records, listMonth)
	case model.MapView:
		result.Points = views.Points(records)
		if listNear != "" {
			result.Points = views.Near(result.Points, center, listRadius)
		}
		result.Count = len(result.Points)
	}

	out := cmd.OutOrStdout()
	if GetJSONOutput() {
		return printJSON(out, result)
	}

	if result.Notice != "" && !IsQuiet() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Note:", result.Notice)
	}

	switch result.View {
	case model.KanbanView:
		printBoard(out, result.Columns)
	case model.CalendarView:
		printCalendar(out, result.Days)
	case model.MapView:
		printPoints(out, result.Points, listNear != "")
	default:
		if len(records) == 0 {
			fmt.Fprintln(out, "No records found.")
			return nil
		}
		printTable(out, records, cfg.Fields())
	}

	if !IsQuiet() {
		fmt.Fprintf(out, "\nTotal: %d record(s)\n", result.Count)
	}
	return nil
}
