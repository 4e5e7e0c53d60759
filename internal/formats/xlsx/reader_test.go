package xlsx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/coursegrid/internal/layout"
	"github.com/klytics/coursegrid/internal/tree"
)

// twoSectionCourse has sections of 4 and 7 sessions.
func twoSectionCourse() *tree.Course {
	return &tree.Course{
		Name: "Go Basics",
		Sections: []tree.Section{
			{Name: "Intro", Length: 4, Lessons: []tree.Lesson{
				{Index: 1, DaysToPass: 1},
				{Index: 2, DaysToPass: 3},
			}},
			{Name: "Deep Dive", Length: 7, Lessons: []tree.Lesson{
				{Index: 1, DaysToPass: 2},
				{Index: 2, DaysToPass: 4},
				{Index: 3, DaysToPass: 1},
			}},
		},
		TotalLength:      11,
		MaxSectionLength: 7,
	}
}

func renderTo(t *testing.T, plan layout.Plan) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	if err := Render(plan, path, DefaultPalette()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("Render did not create the file")
	}
	return path
}

func TestRenderAndRead(t *testing.T) {
	plan := layout.Build(twoSectionCourse(), layout.DefaultOptions())
	path := renderTo(t, plan)

	wb, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(wb.Sheets))
	}

	sheet, err := wb.GetSheet("Progress")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		start, end, value string
	}{
		{"D4", "J4", "Go Basics"},
		{"D5", "J5", "Intro"},
		{"E6", "G6", "2"},
		{"H6", "J7", ""},
		{"D8", "J8", "Deep Dive"},
		{"D9", "E9", "1"},
		{"F9", "I9", "2"},
	}
	for _, tt := range tests {
		m, ok := sheet.FindMerge(tt.start)
		if !ok {
			t.Errorf("no merge starting at %s", tt.start)
			continue
		}
		if m.End != tt.end {
			t.Errorf("merge %s ends at %s, want %s", tt.start, m.End, tt.end)
		}
		if m.Value != tt.value {
			t.Errorf("merge %s value = %q, want %q", tt.start, m.Value, tt.value)
		}
	}

	// Single-session lessons are plain cells, not merges.
	if _, ok := sheet.FindMerge("D6"); ok {
		t.Error("single-cell lesson should not be merged")
	}
	if got := sheet.Cell(5, 3); got != "1" {
		t.Errorf("D6 = %q, want 1", got)
	}
	if got := sheet.Cell(8, 9); got != "3" {
		t.Errorf("J9 = %q, want 3", got)
	}

	// The second section fills the width, so only one padding block exists.
	padding := 0
	for _, m := range sheet.Merges {
		if m.Value == "" {
			padding++
		}
	}
	if padding != 1 {
		t.Errorf("expected 1 unused block, got %d", padding)
	}
}

func TestRenderStylesAndWidths(t *testing.T) {
	plan := layout.Build(twoSectionCourse(), layout.DefaultOptions())
	path := renderTo(t, plan)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	fills := map[string]string{
		"D4": "A2D08E",
		"D5": "C6E0B4",
		"E6": "E2EFDA",
		"H6": "D9D9D9",
	}
	for cell, want := range fills {
		id, err := f.GetCellStyle("Progress", cell)
		if err != nil {
			t.Fatal(err)
		}
		style, err := f.GetStyle(id)
		if err != nil {
			t.Fatal(err)
		}
		if len(style.Fill.Color) == 0 || style.Fill.Color[0] != want {
			t.Errorf("%s fill = %v, want %s", cell, style.Fill.Color, want)
		}
		if len(style.Border) != 4 {
			t.Errorf("%s has %d borders, want 4", cell, len(style.Border))
		}
	}

	// Progress cells carry borders but no fill.
	id, err := f.GetCellStyle("Progress", "D7")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(style.Border) != 4 {
		t.Errorf("D7 has %d borders, want 4", len(style.Border))
	}
	if len(style.Fill.Color) != 0 {
		t.Errorf("D7 should not be filled, got %v", style.Fill.Color)
	}

	for _, col := range []string{"D", "G", "J"} {
		w, err := f.GetColWidth("Progress", col)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(w-NaturalColumnWidth/3) > 0.01 {
			t.Errorf("column %s width = %.3f, want %.3f", col, w, NaturalColumnWidth/3)
		}
	}
}

func TestRenderEmptySection(t *testing.T) {
	c := twoSectionCourse()
	c.Sections = append(c.Sections, tree.Section{Name: "Later"})

	wb, err := ReadFile(renderTo(t, layout.Build(c, layout.DefaultOptions())))
	if err != nil {
		t.Fatal(err)
	}

	sheet := &wb.Sheets[0]
	if m, ok := sheet.FindMerge("D11"); !ok || m.End != "J11" || m.Value != "Later" {
		t.Errorf("section name merge = %+v, %v", m, ok)
	}
	if m, ok := sheet.FindMerge("D12"); !ok || m.End != "J13" {
		t.Errorf("full-width padding merge = %+v, %v", m, ok)
	}
}

func TestRenderKeepsNumericTitles(t *testing.T) {
	course := &tree.Course{
		Name: "007",
		Sections: []tree.Section{
			{Name: "+01", Length: 2, Lessons: []tree.Lesson{{Index: 1, DaysToPass: 2}}},
		},
		TotalLength:      2,
		MaxSectionLength: 2,
	}
	path := renderTo(t, layout.Build(course, layout.DefaultOptions()))

	wb, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := wb.GetSheet("Progress")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		start, want string
	}{
		{"D4", "007"},
		{"D5", "+01"},
		{"D6", "1"},
	}
	for _, tt := range tests {
		m, ok := sheet.FindMerge(tt.start)
		if !ok {
			t.Errorf("no merge starting at %s", tt.start)
			continue
		}
		if m.Value != tt.want {
			t.Errorf("%s = %q, want %q", tt.start, m.Value, tt.want)
		}
	}
}

func TestCellValue(t *testing.T) {
	if got := cellValue("3", layout.StyleLesson); got != 3 {
		t.Errorf("lesson label should be numeric, got %#v", got)
	}
	for _, style := range []layout.Style{layout.StyleCourse, layout.StyleSection} {
		if got := cellValue("007", style); got != "007" {
			t.Errorf("%s label should stay text, got %#v", style, got)
		}
	}
}

func TestRenderBadPalette(t *testing.T) {
	plan := layout.Build(twoSectionCourse(), layout.DefaultOptions())
	path := filepath.Join(t.TempDir(), "bad.xlsx")

	p := DefaultPalette()
	p.Lesson = "green"
	if err := Render(plan, path, p); err == nil {
		t.Fatal("expected palette error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written when rendering fails")
	}
}

func TestRendererMissingPaletteSlot(t *testing.T) {
	r := NewRenderer()
	defer r.Close()

	sheet, err := r.CreateSheet("Progress")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.MergeCells(sheet, 0, 0, 0, 1, "x", layout.StyleCourse); err == nil {
		t.Error("expected error for unset palette slot")
	}
	if err := r.WriteCell(sheet, 1, 0, layout.StyleBorder); err != nil {
		t.Errorf("border cells need no palette: %v", err)
	}
}

func TestRendererCreateSecondSheet(t *testing.T) {
	r := NewRenderer()
	defer r.Close()

	if _, err := r.CreateSheet("One"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.CreateSheet("Two"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "two.xlsx")
	if err := r.Save(path); err != nil {
		t.Fatal(err)
	}
	wb, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wb.GetSheet("Two"); err != nil {
		t.Error(err)
	}
	if _, err := wb.GetSheet("Missing"); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestParseHex(t *testing.T) {
	r, g, b, err := ParseHex("#A2D08E")
	if err != nil {
		t.Fatal(err)
	}
	if r != 162 || g != 208 || b != 142 {
		t.Errorf("got %d,%d,%d", r, g, b)
	}
	if hexColor(r, g, b) != "A2D08E" {
		t.Errorf("hexColor = %s", hexColor(r, g, b))
	}

	for _, bad := range []string{"", "FFF", "GGGGGG", "1234567"} {
		if _, _, _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile("/nonexistent/file.xlsx")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
