package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var onboardReset bool

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Walk through the gridlex tour",
	Long: `Print the onboarding tour and remember that it was completed.

The completed flag is kept in the preferences database in the data
directory, so the tour is only shown once. Use --reset to forget it.

Examples:
  gridlex onboard
  gridlex onboard --reset`,
	Args: cobra.NoArgs,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().BoolVar(&onboardReset, "reset", false, "Forget that the tour was completed")
	rootCmd.AddCommand(onboardCmd)
}

const onboardingTour = `Welcome to gridlex!

1. Tables
   contacts, opportunities, organizations and tasks, plus "unified"
   which shows all four together.
     gridlex list --table opportunities

2. Views
   list, kanban, calendar and map. Not every table supports every view;
   see which ones do with:
     gridlex views

3. Search, filter, sort
     gridlex list --table unified --search acme
     gridlex list --table opportunities --filter "value>20000" --sort-by value --desc

4. Saved views
     gridlex config list
     gridlex list --config pipeline

5. Sessions
   One-shot commands start from the mock data every time. Use the shell to
   keep edits and selections for the whole session:
     gridlex shell
`

func runOnboard(cmd *cobra.Command, args []string) error {
	app, ok := requireApp()
	if !ok {
		return nil
	}
	p, err := app.Prefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	out := cmd.OutOrStdout()
	if onboardReset {
		if err := p.SetOnboardingComplete(false); err != nil {
			return err
		}
		logger.Info("onboarding reset")
		if GetJSONOutput() {
			return printJSON(out, map[string]interface{}{"completed": false})
		}
		if !IsQuiet() {
			fmt.Fprintln(out, "Onboarding reset. Run 'gridlex onboard' to see the tour again.")
		}
		return nil
	}

	done, err := p.OnboardingComplete()
	if err != nil {
		return err
	}
	if !done {
		if err := p.SetOnboardingComplete(true); err != nil {
			return err
		}
	}

	if GetJSONOutput() {
		return printJSON(out, map[string]interface{}{"completed": true, "alreadyCompleted": done})
	}
	if done {
		fmt.Fprintln(out, "Onboarding already completed. Use --reset to see the tour again.")
		return nil
	}
	fmt.Fprint(out, onboardingTour)
	return nil
}
