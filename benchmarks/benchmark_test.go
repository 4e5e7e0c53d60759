package benchmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klytics/coursegrid/internal/estimate"
	"github.com/klytics/coursegrid/internal/formats/xlsx"
	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/tree"
)

var sampleXlsx = filepath.Join("..", "testdata", "sample.xlsx")

// syntheticCourse builds a course with the given shape. Lesson durations
// cycle through 5 to 120 minutes.
func syntheticCourse(sections, lessons int) *tree.Course {
	limits := estimate.DefaultLimits()
	c := &tree.Course{ID: 1, Name: "Benchmark Course"}
	for s := 0; s < sections; s++ {
		sec := tree.Section{ID: s + 1, Name: fmt.Sprintf("Section %d", s+1)}
		for l := 0; l < lessons; l++ {
			seconds := (5 + (s*lessons+l)%116) * 60
			days := estimate.DaysToPass(seconds, limits)
			sec.Lessons = append(sec.Lessons, tree.Lesson{
				ID:             s*lessons + l,
				Index:          l + 1,
				Name:           fmt.Sprintf("Lesson %d", l+1),
				TimeToComplete: seconds,
				Minutes:        estimate.Minutes(seconds),
				DaysToPass:     days,
			})
			sec.Length += days
		}
		c.Sections = append(c.Sections, sec)
		c.TotalLength += sec.Length
		if sec.Length > c.MaxSectionLength {
			c.MaxSectionLength = sec.Length
		}
	}
	return c
}

// --- Estimator ---

func BenchmarkDaysToPass(b *testing.B) {
	limits := estimate.DefaultLimits()
	for i := 0; i < b.N; i++ {
		estimate.DaysToPass(i%20000, limits)
	}
}

// --- Layout ---

func BenchmarkLayoutSmall(b *testing.B) {
	course := syntheticCourse(5, 8)
	opts := layout.DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layout.Build(course, opts)
	}
}

func BenchmarkLayoutLarge(b *testing.B) {
	course := syntheticCourse(60, 40)
	opts := layout.DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layout.Build(course, opts)
	}
}

// --- Renderer ---

func BenchmarkRender(b *testing.B) {
	plan := layout.Build(syntheticCourse(10, 12), layout.DefaultOptions())
	out := filepath.Join(b.TempDir(), "bench.xlsx")
	palette := xlsx.DefaultPalette()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := xlsx.Render(plan, out, palette); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkXlsxRead(b *testing.B) {
	if _, err := os.Stat(sampleXlsx); os.IsNotExist(err) {
		b.Skip("sample.xlsx not found")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := xlsx.ReadFile(sampleXlsx); err != nil {
			b.Fatal(err)
		}
	}
}
