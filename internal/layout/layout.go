// Package layout maps a course tree onto a grid of merged cells.
//
// The course name sits on the anchor row. Below it every section takes a
// three-row band: the section name, the lesson numbers, and an empty progress
// row. All sections share the same columns; a lesson is as many columns wide
// as the sessions it needs, and a section shorter than the longest one is
// padded with an "unused" block so the grid stays rectangular.
package layout

import (
	"strconv"

	"github.com/klytics/coursegrid/internal/tree"
)

// SheetName is the name of the single worksheet a plan is drawn on.
const SheetName = "Progress"

// rowsPerSection is the height of a section band.
const rowsPerSection = 3

// Options controls where the grid starts and how columns are scaled.
type Options struct {
	AnchorRow   int
	AnchorCol   int
	ColumnScale float64
}

// DefaultOptions anchors the grid at row 3, column 3 (leaving a three-cell
// margin) and shrinks columns to a third of their natural width.
func DefaultOptions() Options {
	return Options{
		AnchorRow:   3,
		AnchorCol:   3,
		ColumnScale: 1.0 / 3.0,
	}
}

type cursor struct {
	row, col int
}

// Build lays out the course and returns the placement plan.
// It is a pure function of its inputs.
func Build(course *tree.Course, opts Options) Plan {
	width := course.MaxSectionLength
	if width < 1 {
		width = 1
	}

	at := cursor{row: opts.AnchorRow, col: opts.AnchorCol}
	var cmds []Command

	for i, section := range course.Sections {
		sectionAt := cursor{row: at.row + 1 + rowsPerSection*i, col: at.col}
		out, _ := layoutSection(sectionAt, section, width)
		cmds = append(cmds, out...)
	}

	cmds = append(cmds, merge(at.row, at.row, at.col, at.col+width-1, course.Name, StyleCourse))

	for c := at.col; c < at.col+width; c++ {
		cmds = append(cmds, Command{
			Kind:  KindColumnWidth,
			Rows:  Span{From: at.row, To: at.row},
			Cols:  Span{From: c, To: c},
			Scale: opts.ColumnScale,
		})
	}

	return Plan{
		Sheet:    SheetName,
		Anchor:   Point{Row: at.row, Col: at.col},
		Width:    width,
		Height:   1 + rowsPerSection*len(course.Sections),
		Commands: cmds,
	}
}

// layoutSection places the section's lessons on the row below at, then its
// name across the full allotted width, then pads any columns the lessons did
// not fill. It returns the columns actually used by lessons.
func layoutSection(at cursor, s tree.Section, width int) ([]Command, int) {
	var cmds []Command
	used := 0

	for _, lesson := range s.Lessons {
		out, w := layoutLesson(cursor{row: at.row + 1, col: at.col + used}, lesson)
		cmds = append(cmds, out...)
		used += w
	}

	cmds = append(cmds, merge(at.row, at.row, at.col, at.col+width-1, s.Name, StyleSection))

	if used < width {
		cmds = append(cmds, merge(at.row+1, at.row+2, at.col+used, at.col+width-1, "", StyleUnused))
	}

	return cmds, used
}

// layoutLesson places the lesson number across its sessions and one empty
// progress cell under each session.
func layoutLesson(at cursor, l tree.Lesson) ([]Command, int) {
	days := l.DaysToPass
	if days < 1 {
		days = 1
	}

	cmds := make([]Command, 0, days+1)
	cmds = append(cmds, merge(at.row, at.row, at.col, at.col+days-1, strconv.Itoa(l.Index), StyleLesson))
	for c := at.col; c < at.col+days; c++ {
		cmds = append(cmds, Command{
			Kind:  KindCell,
			Rows:  Span{From: at.row + 1, To: at.row + 1},
			Cols:  Span{From: c, To: c},
			Style: StyleBorder,
		})
	}

	return cmds, days
}

func merge(r0, r1, c0, c1 int, label string, style Style) Command {
	return Command{
		Kind:  KindMerge,
		Rows:  Span{From: r0, To: r1},
		Cols:  Span{From: c0, To: c1},
		Label: label,
		Style: style,
	}
}
