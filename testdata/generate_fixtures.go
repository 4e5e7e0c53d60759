//go:build ignore

// This program generates test fixture files for coursegrid.
package main

import (
	"fmt"
	"os"

	"github.com/klytics/coursegrid/internal/estimate"
	"github.com/klytics/coursegrid/internal/formats/xlsx"
	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/tree"
)

func main() {
	if err := generateXlsx(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating sample.xlsx: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Test fixtures generated successfully.")
}

func generateXlsx() error {
	limits := estimate.DefaultLimits()
	sections := []struct {
		name    string
		seconds []int
	}{
		{"Getting Started", []int{300, 5400, 900}},
		{"Collections", []int{3600, 7200, 1800, 600}},
		{"Wrap Up", []int{2400}},
	}

	course := &tree.Course{ID: 1, Name: "Sample Course"}
	for i, s := range sections {
		sec := tree.Section{ID: i + 1, Name: s.name}
		for j, seconds := range s.seconds {
			days := estimate.DaysToPass(seconds, limits)
			sec.Lessons = append(sec.Lessons, tree.Lesson{
				ID:             (i+1)*100 + j,
				Index:          j + 1,
				Name:           fmt.Sprintf("%s %d", s.name, j+1),
				TimeToComplete: seconds,
				Minutes:        estimate.Minutes(seconds),
				DaysToPass:     days,
			})
			sec.Length += days
		}
		course.Sections = append(course.Sections, sec)
		course.TotalLength += sec.Length
		if sec.Length > course.MaxSectionLength {
			course.MaxSectionLength = sec.Length
		}
	}

	plan := layout.Build(course, layout.DefaultOptions())
	return xlsx.Render(plan, "testdata/sample.xlsx", xlsx.DefaultPalette())
}
