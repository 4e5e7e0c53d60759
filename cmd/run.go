package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/klytics/coursegrid/internal/config"
	"github.com/klytics/coursegrid/internal/formats/xlsx"
	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/logger"
	"github.com/klytics/coursegrid/internal/output"
	"github.com/klytics/coursegrid/internal/progress"
	"github.com/klytics/coursegrid/internal/stepik"
	"github.com/klytics/coursegrid/internal/tree"
)

// generateFlags are the per-run overrides shared by the root and plan commands.
type generateFlags struct {
	apiURL string
	max    int
	min    int
	out    string
}

// Result is the --json payload of a successful run.
type Result struct {
	CourseID  int    `json:"course_id"`
	Title     string `json:"title"`
	File      string `json:"file"`
	Sections  int    `json:"sections"`
	Lessons   int    `json:"lessons"`
	TotalDays int    `json:"total_days"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func courseIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return usageErrorf(cmd, "expected exactly one course id, got %d arguments", len(args))
	}
	if _, err := parseCourseID(args[0]); err != nil {
		return usageErrorf(cmd, "%s", err)
	}
	return nil
}

func parseCourseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("course id must be an integer, got %q", s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("course id must be positive, got %d", id)
	}
	return id, nil
}

// loadConfig reads the config layers and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, flags generateFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = flags.apiURL
	}
	if cmd.Flags().Changed("max") {
		cfg.Session.Max = flags.max
	}
	if cmd.Flags().Changed("min") {
		cfg.Session.Min = flags.min
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageErrorf(cmd, "%s", err)
	}
	return cfg, nil
}

// fetchCourse downloads and estimates the whole course tree.
func fetchCourse(ctx context.Context, cfg *config.Config, id int, log zerolog.Logger, bar *progress.Bar) (*tree.Course, error) {
	client := stepik.NewClient(cfg.APIURL, log)

	var opts []tree.Option
	if bar != nil {
		opts = append(opts, tree.WithProgress(func(section, lesson int) {
			bar.Increment(fmt.Sprintf("section %d, lesson %d", section+1, lesson))
		}))
		defer bar.Finish()
	}

	course, err := tree.Build(ctx, client, id, cfg.Session, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not fetch course: %w", err)
	}
	log.Debug().
		Int("course", course.ID).
		Int("sections", len(course.Sections)).
		Int("lessons", course.LessonCount()).
		Int("total_days", course.TotalLength).
		Msg("course fetched")
	return course, nil
}

func runGenerate(cmd *cobra.Command, arg string, flags generateFlags) error {
	id, err := parseCourseID(arg)
	if err != nil {
		return usageErrorf(cmd, "%s", err)
	}

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	log := logger.New(verbose, cmd.ErrOrStderr())
	steps := progress.NewSteps(cmd.OutOrStdout(), jsonOutput)

	bar := progress.New("Lessons", 0)
	if jsonOutput {
		bar.Enabled = false
	}
	bar.Out = cmd.ErrOrStderr()

	steps.Start(progress.StepReceiving)
	course, err := fetchCourse(cmd.Context(), cfg, id, log, bar)
	if err != nil {
		return err
	}

	steps.Start(progress.StepGenerating)
	plan := layout.Build(course, cfg.LayoutOptions())
	log.Debug().Int("commands", len(plan.Commands)).Msg("layout planned")

	path := outputPath(flags.out, course.Name, course.ID)
	if err := xlsx.Render(plan, path, cfg.Palette); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	log.Debug().Str("file", path).Msg("workbook saved")

	steps.Done(progress.StepDone)

	if jsonOutput {
		return output.PrintJSON(cmd.OutOrStdout(), "generate", Result{
			CourseID:  course.ID,
			Title:     course.Name,
			File:      path,
			Sections:  len(course.Sections),
			Lessons:   course.LessonCount(),
			TotalDays: course.TotalLength,
			Width:     plan.Width,
			Height:    plan.Height,
		})
	}
	return nil
}

// outputPath resolves the workbook path. An empty out falls back to the
// course title, with path separators replaced.
func outputPath(out, title string, id int) string {
	if out == "" {
		name := strings.TrimSpace(title)
		name = strings.NewReplacer("/", "_", "\\", "_", string(filepath.Separator), "_").Replace(name)
		if name == "" || name == "." || name == ".." {
			name = fmt.Sprintf("course-%d", id)
		}
		out = name
	}
	if !strings.EqualFold(filepath.Ext(out), ".xlsx") {
		out += ".xlsx"
	}
	return out
}
