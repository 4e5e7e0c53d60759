// Package cmd contains all CLI commands for the coursegrid binary.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/coursegrid/cmd/completion"
	cmdconfig "github.com/klytics/coursegrid/cmd/config"
	"github.com/klytics/coursegrid/cmd/doctor"
	"github.com/klytics/coursegrid/cmd/version"
	"github.com/klytics/coursegrid/internal/output"
)

var (
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var flags generateFlags

	rootCmd := &cobra.Command{
		Use:   "coursegrid <course_id>",
		Short: "Turn a Stepik course into a progress-tracking spreadsheet",
		Long: `coursegrid fetches a Stepik course, estimates how many study sessions
each lesson takes, and lays the course out as a color-coded .xlsx grid.

Every lesson gets one cell per session. Sections are stacked three rows
apart and share the width of the longest section.`,
		Example: `  coursegrid 58852
  coursegrid 58852 --max 45 --min 15 --out progress.xlsx
  coursegrid plan 58852 --format json`,
		Args:          courseIDArg,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], flags)
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Stepik API base URL (default from config)")
	rootCmd.PersistentFlags().IntVar(&flags.max, "max", 0, "Maximum session size in minutes (default from config, 30)")
	rootCmd.PersistentFlags().IntVar(&flags.min, "min", 0, "Minimum session size in minutes (default from config, 10)")

	rootCmd.Flags().StringVarP(&flags.out, "out", "o", "", "Output file (default: <course title>.xlsx)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageErrorf(cmd, "%s", err)
	})

	// Register subcommands
	rootCmd.AddCommand(newPlanCommand(&flags))
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(doctor.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand()
	executed, err := rootCmd.ExecuteContextC(ctx)
	if err == nil {
		return
	}

	code := ExitCode(err)
	if jsonOutput {
		name := rootCmd.Name()
		if executed != nil {
			name = executed.Name()
		}
		output.PrintJSONError(os.Stdout, name, err, code)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	stop()
	os.Exit(code)
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return output.ExitOK
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		return output.ExitUserError
	}
	return output.ExitSystemError
}

// usageError marks errors caused by bad arguments or configuration.
type usageError struct {
	err  error
	hint string
}

func (e *usageError) Error() string {
	if e.hint == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s\n%s", e.err, e.hint)
}

func (e *usageError) Unwrap() error {
	return e.err
}

func usageErrorf(cmd *cobra.Command, format string, args ...any) error {
	return &usageError{
		err:  fmt.Errorf(format, args...),
		hint: fmt.Sprintf("Usage: %s", cmd.UseLine()),
	}
}
