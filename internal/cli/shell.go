package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/user/gridlex/internal/fixtures"
	"github.com/user/gridlex/internal/store"
)

const shellPrompt = "gridlex> "

var (
	shellWatch bool

	// inShell guards against starting a shell from inside a shell.
	inShell bool
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run commands against one session",
	Long: `Start an interactive session. Every command typed at the prompt runs
against the same record store, so created, edited and deleted records and
the selection survive until the shell exits. Type 'exit' or 'quit' (or send
EOF) to leave.

With --watch, the dataset given by --data is reloaded whenever the file
changes; the selection keeps the ids that still exist.

Examples:
  gridlex shell
  gridlex --data crm.yaml shell --watch`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	shellCmd.Flags().BoolVar(&shellWatch, "watch", false, "Reload the --data file when it changes")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	if inShell {
		ExitValidationError("already inside a gridlex shell", nil)
		return nil
	}

	app, ok := requireApp()
	if !ok {
		return nil
	}

	if shellWatch {
		if app.Ctx.DataFile == "" {
			ExitValidationError("--watch requires --data", nil)
			return nil
		}
		w, err := fixtures.NewWatcher(app.Ctx.DataFile, app.Records.Replace, logger)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Close()
			return fmt.Errorf("failed to watch %s: %w", app.Ctx.DataFile, err)
		}
		defer w.Close()
	}

	out := cmd.OutOrStdout()
	unsubscribe := app.Records.Subscribe(func(ev store.Event) {
		if ev.Kind == store.EventReplaced && !IsQuiet() {
			fmt.Fprintln(out, "\n(dataset reloaded)")
		}
	})
	defer unsubscribe()

	globals := snapshotFlags(rootCmd.PersistentFlags())

	inShell = true
	origExitFunc := ExitFunc
	ExitFunc = func(code int) { ExitCode = code }
	defer func() {
		inShell = false
		ExitFunc = origExitFunc
		ExitCode = 0
	}()

	return runShellLoop(cmd.InOrStdin(), out, cmd.ErrOrStderr(), globals)
}

func runShellLoop(in io.Reader, out, errOut io.Writer, globals map[string]string) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		tokens, err := splitLine(line)
		if err != nil {
			fmt.Fprintln(errOut, "Error:", err)
			continue
		}
		if tokens[0] == "gridlex" {
			tokens = tokens[1:]
		}
		runShellCommand(tokens, errOut, globals)
	}
}

// runShellCommand dispatches one line through the root command with flags
// back at their defaults plus the globals the shell was started with.
func runShellCommand(tokens []string, errOut io.Writer, globals map[string]string) {
	resetCommandFlags(rootCmd)
	restoreFlags(rootCmd.PersistentFlags(), globals)
	ExitCode = 0

	rootCmd.SetArgs(tokens)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
	}
	logger.Debug("shell command finished", "args", tokens, "exit_code", ExitCode)
}

// resetCommandFlags puts every flag of cmd and its subcommands back to its
// default value.
func resetCommandFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if !f.Changed {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetCommandFlags(sub)
	}
}

// snapshotFlags records the flags that were set explicitly.
func snapshotFlags(fs *pflag.FlagSet) map[string]string {
	values := make(map[string]string)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			values[f.Name] = f.Value.String()
		}
	})
	return values
}

func restoreFlags(fs *pflag.FlagSet, values map[string]string) {
	for name, value := range values {
		_ = fs.Set(name, value)
	}
}

var errUnterminatedQuote = errors.New("unterminated quote or trailing backslash")

// splitLine breaks a shell line into arguments. Single quotes keep their
// content literally; double quotes and bare words honor backslash escapes.
func splitLine(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\\':
			escaped = true
			inWord = true
		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
