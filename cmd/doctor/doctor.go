// Package doctor provides the "coursegrid doctor" command for checking setup health.
package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/coursegrid/internal/config"
	"github.com/klytics/coursegrid/internal/logger"
	"github.com/klytics/coursegrid/internal/stepik"
)

// probeCourse is fetched to check that the API answers. A 404 still counts.
const probeCourse = 1

// Check represents a single health check result.
type Check struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message"`
}

// NewCommand creates the "doctor" command.
func NewCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and API reachability",
		Long:  "Run diagnostic checks to verify coursegrid is properly configured and can reach the Stepik API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			checks := runChecks(ctx)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(checks)
			}

			out := cmd.OutOrStdout()
			green := color.New(color.FgGreen).SprintFunc()
			yellow := color.New(color.FgYellow).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()

			fmt.Fprintln(out, "coursegrid doctor")
			fmt.Fprintln(out, "=================")
			fmt.Fprintln(out)

			okCount, warnCount, errCount := 0, 0, 0
			for _, c := range checks {
				var icon string
				switch c.Status {
				case "ok":
					icon = green("✓")
					okCount++
				case "warning":
					icon = yellow("!")
					warnCount++
				case "error":
					icon = red("✗")
					errCount++
				}
				fmt.Fprintf(out, "  %s %s: %s\n", icon, c.Name, c.Message)
			}

			fmt.Fprintln(out)
			fmt.Fprintf(out, "  %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

			if errCount > 0 {
				return fmt.Errorf("%d check(s) failed", errCount)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "API check timeout")
	return cmd
}

func runChecks(ctx context.Context) []Check {
	var checks []Check

	checks = append(checks, Check{
		Name:    "Go Runtime",
		Status:  "ok",
		Message: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	})

	// Check config file
	configFile := config.ConfigPath()
	if _, err := os.Stat(configFile); err == nil {
		checks = append(checks, Check{Name: "Config File", Status: "ok", Message: configFile})
	} else {
		checks = append(checks, Check{
			Name:    "Config File",
			Status:  "warning",
			Message: fmt.Sprintf("%s not found, using defaults (create one with 'coursegrid config set')", filepath.Base(configFile)),
		})
	}

	cfg, err := config.Load()
	if err != nil {
		return append(checks, Check{Name: "Configuration", Status: "error", Message: err.Error()})
	}
	if err := cfg.Validate(); err != nil {
		return append(checks, Check{Name: "Configuration", Status: "error", Message: err.Error()})
	}
	checks = append(checks, Check{
		Name:    "Configuration",
		Status:  "ok",
		Message: fmt.Sprintf("sessions %d-%d min", cfg.Session.Min, cfg.Session.Max),
	})

	checks = append(checks, checkAPI(ctx, cfg.APIURL))
	return checks
}

func checkAPI(ctx context.Context, baseURL string) Check {
	client := stepik.NewClient(baseURL, logger.Nop())
	_, err := client.Course(ctx, probeCourse)
	if err == nil || errors.Is(err, stepik.ErrNotFound) {
		return Check{Name: "Stepik API", Status: "ok", Message: baseURL}
	}
	return Check{Name: "Stepik API", Status: "error", Message: err.Error()}
}
