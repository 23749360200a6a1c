package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/gridlex/internal/context"
	"github.com/user/gridlex/internal/model"
	"github.com/user/gridlex/internal/query"
	"github.com/user/gridlex/internal/viewconfig"
	"github.com/user/gridlex/internal/views"
)

var (
	configListTable string

	configSaveID      string
	configSaveName    string
	configSaveTable   string
	configSaveView    string
	configSaveFilters []string
	configSaveSortBy  string
	configSaveDesc    bool
	configSaveGroupBy string
	configSaveColumns string
	configSaveShare   string
	configSaveDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage saved view configs",
	Long: `Manage saved view configs: named presets that bundle a view type, a
table, visible columns, sort, filters and sharing flags.

Subcommands:
  list      List configs
  show      Show one config
  save      Create or update a config
  rm        Delete a config
  dup       Duplicate a config
  default   Flag a config as a default for its table`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List view configs",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a view config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigShow,
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or update a view config",
	Long: `Create a view config, or update the one with --id in place.

When --id names an existing config, only the flags given are changed.

Examples:
  gridlex config save --name "Big deals" --table opportunities --filter "value>50000" --sort-by value --desc
  gridlex config save --id pipeline --name "Team Pipeline"
  gridlex config save --name "My tasks" --table tasks --view calendar --share private --default`,
	Args: cobra.NoArgs,
	RunE: runConfigSave,
}

var configRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a view config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigRm,
}

var configDupCmd = &cobra.Command{
	Use:   "dup <id>",
	Short: "Duplicate a view config",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigDup,
}

var configDefaultCmd = &cobra.Command{
	Use:   "default <id>",
	Short: "Flag a view config as default",
	Long: `Flag a view config as a default for its table. Other defaults for the
same table keep their flag.`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigDefault,
}

func init() {
	configListCmd.Flags().StringVarP(&configListTable, "table", "t", "", "Only configs for this table")

	f := configSaveCmd.Flags()
	f.StringVar(&configSaveID, "id", "", "Config id to update (default: new id)")
	f.StringVar(&configSaveName, "name", "", "Config name")
	f.StringVarP(&configSaveTable, "table", "t", "contacts", "Table")
	f.StringVar(&configSaveView, "view", "list", "View type")
	f.StringArrayVar(&configSaveFilters, "filter", nil, "Filter clause (can be repeated)")
	f.StringVar(&configSaveSortBy, "sort-by", "", "Sort field")
	f.BoolVar(&configSaveDesc, "desc", false, "Sort descending")
	f.StringVar(&configSaveGroupBy, "group-by", "", "Board column field")
	f.StringVar(&configSaveColumns, "columns", "", "Visible columns (comma-separated)")
	f.StringVar(&configSaveShare, "share", "", "Share mode: private, team, public")
	f.BoolVar(&configSaveDefault, "default", false, "Flag as default")

	configCmd.AddCommand(configListCmd, configShowCmd, configSaveCmd, configRmCmd, configDupCmd, configDefaultCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	var table model.TableType
	if configListTable != "" {
		t, err := model.ParseTableType(configListTable)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": configListTable})
			return nil
		}
		table = t
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}
	configs := app.Configs.List(table)

	out := cmd.OutOrStdout()
	if GetJSONOutput() {
		return printJSON(out, configs)
	}
	if len(configs) == 0 {
		fmt.Fprintln(out, "No view configs found.")
		return nil
	}

	idWidth, nameWidth := 2, 4
	for _, c := range configs {
		idWidth = max(idWidth, len(c.ID))
		nameWidth = max(nameWidth, len(c.Name))
	}
	idWidth = min(idWidth, maxColumnWidth)
	nameWidth = min(nameWidth, maxColumnWidth)

	fmt.Fprintf(out, "%-*s  %-*s  %-13s  %-8s  %s\n", idWidth, "ID", nameWidth, "Name", "Table", "View", "Flags")
	fmt.Fprintf(out, "%s  %s  %s  %s  %s\n", strings.Repeat("-", idWidth), strings.Repeat("-", nameWidth),
		strings.Repeat("-", 13), strings.Repeat("-", 8), strings.Repeat("-", 5))
	for _, c := range configs {
		var flags []string
		if c.IsDefault {
			flags = append(flags, "default")
		}
		if c.IsShared {
			flags = append(flags, "shared:"+string(c.ShareMode))
		}
		fmt.Fprintf(out, "%-*s  %-*s  %-13s  %-8s  %s\n", idWidth, truncate(c.ID, idWidth), nameWidth, truncate(c.Name, nameWidth),
			c.TableType, c.Type, strings.Join(flags, ","))
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}
	c, err := app.Configs.Get(args[0])
	if err != nil {
		ExitConfigNotFound(args[0])
		return nil
	}

	out := cmd.OutOrStdout()
	if GetJSONOutput() {
		return printJSON(out, c)
	}

	filters := make([]string, len(c.Filters))
	for i, f := range c.Filters {
		filters[i] = f.String()
	}
	sort := c.SortBy
	if sort != "" && c.SortOrder == query.Desc {
		sort += " (desc)"
	}

	fmt.Fprintf(out, "ID:        %s\n", c.ID)
	fmt.Fprintf(out, "Name:      %s\n", c.Name)
	fmt.Fprintf(out, "Table:     %s\n", c.TableType)
	fmt.Fprintf(out, "View:      %s\n", c.Type)
	fmt.Fprintf(out, "Columns:   %s\n", strings.Join(c.Fields(), ", "))
	fmt.Fprintf(out, "Sort:      %s\n", sort)
	fmt.Fprintf(out, "Filters:   %s\n", strings.Join(filters, "; "))
	fmt.Fprintf(out, "Group by:  %s\n", c.GroupBy)
	fmt.Fprintf(out, "Saved by:  %s\n", c.SavedBy)
	fmt.Fprintf(out, "Default:   %t\n", c.IsDefault)
	if c.IsShared {
		fmt.Fprintf(out, "Shared:    %s\n", c.ShareMode)
	}
	return nil
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}

	flags := cmd.Flags()
	var c viewconfig.ViewConfig
	existing := false
	if configSaveID != "" {
		if prev, err := app.Configs.Get(configSaveID); err == nil {
			c, existing = prev, true
		}
		c.ID = configSaveID
	}

	if configSaveName != "" {
		c.Name = configSaveName
	}
	if c.Name == "" {
		ExitValidationError("--name is required for a new view config", nil)
		return nil
	}
	if !existing || flags.Changed("table") {
		t, err := model.ParseTableType(configSaveTable)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"table": configSaveTable})
			return nil
		}
		c.TableType = t
	}
	if !existing || flags.Changed("view") {
		v, err := model.ParseViewType(configSaveView)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"view": configSaveView})
			return nil
		}
		c.Type = v
	}
	if av := views.GetViewAvailability(c.TableType, c.Type); !av.Available {
		ExitViewUnavailable(string(c.TableType), string(c.Type), av.Reason, av.Suggestion)
		return nil
	}

	if !existing || flags.Changed("filter") {
		filters, err := parseFilters(configSaveFilters)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"filters": configSaveFilters})
			return nil
		}
		c.Filters = filters
	}
	if flags.Changed("sort-by") {
		c.SortBy = configSaveSortBy
	}
	if !existing || flags.Changed("desc") {
		c.SortOrder = query.Asc
		if configSaveDesc {
			c.SortOrder = query.Desc
		}
	}
	if flags.Changed("group-by") {
		c.GroupBy = configSaveGroupBy
	}
	if flags.Changed("columns") {
		c.VisibleFields = parseColumns(configSaveColumns)
	}
	if c.VisibleFields == nil {
		c.VisibleFields = []string{}
	}
	if flags.Changed("share") {
		mode, err := viewconfig.ParseShareMode(configSaveShare)
		if err != nil {
			ExitValidationError(err.Error(), map[string]interface{}{"share": configSaveShare})
			return nil
		}
		c.ShareMode = mode
		c.IsShared = mode != viewconfig.SharePrivate
	}
	if flags.Changed("default") {
		c.IsDefault = configSaveDefault
	}
	c.SavedBy = context.ResolveActor(GetActorName())

	saved := app.Configs.Save(c)
	logger.Info("view config saved", "id", saved.ID, "updated", existing)

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), saved)
	}
	fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
	return nil
}

func runConfigRm(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}
	if err := app.Configs.Delete(args[0]); err != nil {
		return configError(args[0], err)
	}
	logger.Info("view config deleted", "id", args[0])

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"deleted": args[0]})
	}
	if !IsQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	}
	return nil
}

func runConfigDup(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}
	dup, err := app.Configs.Duplicate(args[0])
	if err != nil {
		return configError(args[0], err)
	}
	dup.SavedBy = context.ResolveActor(GetActorName())
	dup = app.Configs.Save(dup)

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), dup)
	}
	fmt.Fprintln(cmd.OutOrStdout(), dup.ID)
	return nil
}

func runConfigDefault(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}
	if err := app.Configs.SetDefault(args[0]); err != nil {
		return configError(args[0], err)
	}
	c, err := app.Configs.Get(args[0])
	if err != nil {
		return configError(args[0], err)
	}

	if GetJSONOutput() {
		return printJSON(cmd.OutOrStdout(), c)
	}
	if !IsQuiet() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now a default for %s\n", c.ID, c.TableType)
	}
	return nil
}

// configError reports a missing config and passes anything else up.
func configError(id string, err error) error {
	if errors.Is(err, model.ErrConfigNotFound) {
		ExitConfigNotFound(id)
		return nil
	}
	return err
}
