package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/logger"
	"github.com/klytics/coursegrid/internal/output"
	"github.com/klytics/coursegrid/internal/tree"
)

// planDocument is what `coursegrid plan` prints.
type planDocument struct {
	Course *tree.Course `json:"course" yaml:"course"`
	Plan   layout.Plan  `json:"plan" yaml:"plan"`
}

func newPlanCommand(flags *generateFlags) *cobra.Command {
	var format string
	var noPager bool

	cmd := &cobra.Command{
		Use:   "plan <course_id>",
		Short: "Print the course tree and cell placements without writing a workbook",
		Args:  courseIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil || f == output.FormatText {
				return usageErrorf(cmd, "unsupported format %q (supported: yaml, json)", format)
			}

			id, err := parseCourseID(args[0])
			if err != nil {
				return usageErrorf(cmd, "%s", err)
			}
			if jsonOutput {
				f = output.FormatJSON
			}

			cfg, err := loadConfig(cmd, *flags)
			if err != nil {
				return err
			}
			log := logger.New(verbose, cmd.ErrOrStderr())

			course, err := fetchCourse(cmd.Context(), cfg, id, log, nil)
			if err != nil {
				return err
			}
			doc := planDocument{Course: course, Plan: layout.Build(course, cfg.LayoutOptions())}

			if jsonOutput {
				return output.PrintJSON(cmd.OutOrStdout(), "plan", doc)
			}

			var buf bytes.Buffer
			if err := output.NewWriter(&buf, f).Write(doc); err != nil {
				return fmt.Errorf("could not encode plan: %w", err)
			}

			if !noPager && output.ShouldPage(buf.String(), output.TermHeight()) {
				return output.Page(buf.String())
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml | json")
	cmd.Flags().BoolVar(&noPager, "no-pager", false, "Never pipe output through $PAGER")
	return cmd
}
