// Package cli provides the command-line interface for gridlex.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/gridlex/internal/context"
)

// settings merges flags, GRIDLEX_* environment variables and the optional
// gridlex.yaml file in the data directory.
var settings = viper.New()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gridlex",
	Short: "A CRM workspace with list, board, calendar and map views",
	Long: `Gridlex presents contacts, opportunities, organizations and tasks
through four interchangeable views over an in-memory record store seeded
from mock data.

Features:
  - Views: list, kanban board, calendar and map, with availability rules per table
  - Queries: free-text search, AND-ed filters and a locale-aware sort
  - Saved views: named presets with filters, sort, grouping and sharing flags
  - Sessions: 'gridlex shell' keeps one store alive across commands

Configuration (highest precedence first):
  1. Command line flags
  2. Environment variables (GRIDLEX_ACTOR, GRIDLEX_DATA, GRIDLEX_DATA_DIR, ...)
  3. gridlex.yaml in the data directory`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initRuntime,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	closeSession()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("actor", "", "Override actor recorded on saved views (default: $GRIDLEX_ACTOR or $USER)")
	flags.String("data", "", "Load records from a YAML dataset instead of the built-in mock data")
	flags.String("data-dir", "", "Preferences directory (default: nearest .gridlex, else ~/.gridlex)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.Bool("quiet", false, "Suppress non-essential output")
	flags.Bool("verbose", false, "Enable debug output (same as --log-level debug)")

	settings.SetEnvPrefix("GRIDLEX")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindPFlags(flags)
}

// initRuntime reads the config file and sets up logging before any
// subcommand runs.
func initRuntime(cmd *cobra.Command, args []string) error {
	if err := readConfigFile(); err != nil {
		return err
	}

	level := settings.GetString("log-level")
	if IsVerbose() {
		level = "debug"
	}
	return initLogging(level, settings.GetString("log-format"), cmd.ErrOrStderr())
}

// readConfigFile loads gridlex.yaml from the data directory when present.
func readConfigFile() error {
	dir := GetDataDir()
	if dir == "" {
		dir = context.FindDataDir()
	}
	if dir == "" {
		return nil
	}
	settings.SetConfigName("gridlex")
	settings.SetConfigType("yaml")
	settings.AddConfigPath(dir)
	if err := settings.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// GetJSONOutput returns whether JSON output is enabled
func GetJSONOutput() bool {
	return settings.GetBool("json")
}

// GetActorName returns the actor name override
func GetActorName() string {
	return settings.GetString("actor")
}

// GetDataFile returns the dataset file override
func GetDataFile() string {
	return settings.GetString("data")
}

// GetDataDir returns the preferences directory override
func GetDataDir() string {
	return settings.GetString("data-dir")
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return settings.GetBool("quiet")
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return settings.GetBool("verbose")
}
