package layout

import "fmt"

// Style tags a placement with the fill it is drawn with.
type Style string

const (
	StyleCourse  Style = "course"
	StyleSection Style = "section"
	StyleLesson  Style = "lesson"
	StyleUnused  Style = "unused"
	StyleBorder  Style = "border"
)

// Kind is the type of a placement command.
type Kind string

const (
	// KindMerge merges a rectangular range and writes Label into it.
	KindMerge Kind = "merge"
	// KindCell writes a single empty bordered cell.
	KindCell Kind = "cell"
	// KindColumnWidth scales the display width of one column.
	KindColumnWidth Kind = "width"
)

// Span is an inclusive, 0-based range along one axis.
type Span struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Len returns the number of rows or columns covered.
func (s Span) Len() int {
	return s.To - s.From + 1
}

func (s Span) String() string {
	if s.From == s.To {
		return fmt.Sprintf("%d", s.From)
	}
	return fmt.Sprintf("%d-%d", s.From, s.To)
}

// Command is one placement instruction for the renderer.
// For KindCell, Rows and Cols are single-element spans. For KindColumnWidth
// only Cols.From and Scale are meaningful.
type Command struct {
	Kind  Kind    `json:"kind" yaml:"kind"`
	Rows  Span    `json:"rows" yaml:"rows"`
	Cols  Span    `json:"cols" yaml:"cols"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Style Style   `json:"style,omitempty" yaml:"style,omitempty"`
	Scale float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

func (c Command) String() string {
	switch c.Kind {
	case KindColumnWidth:
		return fmt.Sprintf("width col=%d x%.2f", c.Cols.From, c.Scale)
	case KindCell:
		return fmt.Sprintf("cell r=%d c=%d %s", c.Rows.From, c.Cols.From, c.Style)
	default:
		return fmt.Sprintf("merge r=%s c=%s %s %q", c.Rows, c.Cols, c.Style, c.Label)
	}
}

// Point is a 0-based grid coordinate.
type Point struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Plan is the complete, ordered output of a layout pass.
type Plan struct {
	Sheet    string    `json:"sheet" yaml:"sheet"`
	Anchor   Point     `json:"anchor" yaml:"anchor"`
	Width    int       `json:"width" yaml:"width"`
	Height   int       `json:"height" yaml:"height"`
	Commands []Command `json:"commands" yaml:"commands"`
}

// ByStyle returns the merge and cell commands drawn with the given style,
// in emission order.
func (p Plan) ByStyle(style Style) []Command {
	var out []Command
	for _, c := range p.Commands {
		if c.Kind != KindColumnWidth && c.Style == style {
			out = append(out, c)
		}
	}
	return out
}

// ColumnWidths returns the width commands in emission order.
func (p Plan) ColumnWidths() []Command {
	var out []Command
	for _, c := range p.Commands {
		if c.Kind == KindColumnWidth {
			out = append(out, c)
		}
	}
	return out
}
