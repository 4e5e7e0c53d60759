package xlsx

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/coursegrid/internal/layout"
)

// NaturalColumnWidth is Excel's default column width in characters.
const NaturalColumnWidth = 8.43

// Renderer draws placement commands onto an excelize workbook.
// Rows and columns are 0-based; the renderer converts to A1 references.
type Renderer struct {
	f       *excelize.File
	sheets  int
	palette map[int]string
	styles  map[layout.Style]int
}

// NewRenderer creates a renderer over an empty workbook.
func NewRenderer() *Renderer {
	return &Renderer{
		f:       excelize.NewFile(),
		palette: make(map[int]string),
		styles:  make(map[layout.Style]int),
	}
}

// CreateSheet adds a worksheet and returns its handle. The first call renames
// the workbook's default sheet.
func (r *Renderer) CreateSheet(name string) (string, error) {
	if r.sheets == 0 {
		if err := r.f.SetSheetName(r.f.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("could not rename sheet: %w", err)
		}
	} else if _, err := r.f.NewSheet(name); err != nil {
		return "", fmt.Errorf("could not create sheet %q: %w", name, err)
	}
	r.sheets++
	return name, nil
}

// SetPaletteColor assigns an RGB color to a palette slot. It must be called
// before any cell using that slot is drawn.
func (r *Renderer) SetPaletteColor(index int, red, green, blue uint8) {
	r.palette[index] = hexColor(red, green, blue)
}

// MergeCells merges the inclusive range, writes label into it and applies the
// style to every cell so borders are drawn around the whole block.
func (r *Renderer) MergeCells(sheet string, rowStart, rowEnd, colStart, colEnd int, label string, style layout.Style) error {
	topLeft, err := cellName(rowStart, colStart)
	if err != nil {
		return err
	}
	bottomRight, err := cellName(rowEnd, colEnd)
	if err != nil {
		return err
	}

	if topLeft != bottomRight {
		if err := r.f.MergeCell(sheet, topLeft, bottomRight); err != nil {
			return fmt.Errorf("could not merge %s:%s: %w", topLeft, bottomRight, err)
		}
	}

	if label != "" {
		if err := r.f.SetCellValue(sheet, topLeft, cellValue(label, style)); err != nil {
			return fmt.Errorf("could not set cell %s: %w", topLeft, err)
		}
	}

	return r.applyStyle(sheet, topLeft, bottomRight, style)
}

// WriteCell draws a single empty cell with the given style.
func (r *Renderer) WriteCell(sheet string, row, col int, style layout.Style) error {
	cell, err := cellName(row, col)
	if err != nil {
		return err
	}
	return r.applyStyle(sheet, cell, cell, style)
}

// SetColumnWidth sets the width of one column, in characters.
func (r *Renderer) SetColumnWidth(sheet string, col int, width float64) error {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Errorf("invalid column %d: %w", col, err)
	}
	if err := r.f.SetColWidth(sheet, name, name, width); err != nil {
		return fmt.Errorf("could not set width of column %s: %w", name, err)
	}
	return nil
}

// Save writes the workbook to path.
func (r *Renderer) Save(path string) error {
	if err := r.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}

// Close releases the underlying workbook.
func (r *Renderer) Close() error {
	return r.f.Close()
}

// Draw replays the plan's commands, in order, onto sheet.
func (r *Renderer) Draw(sheet string, plan layout.Plan) error {
	for _, c := range plan.Commands {
		var err error
		switch c.Kind {
		case layout.KindMerge:
			err = r.MergeCells(sheet, c.Rows.From, c.Rows.To, c.Cols.From, c.Cols.To, c.Label, c.Style)
		case layout.KindCell:
			err = r.WriteCell(sheet, c.Rows.From, c.Cols.From, c.Style)
		case layout.KindColumnWidth:
			err = r.SetColumnWidth(sheet, c.Cols.From, NaturalColumnWidth*c.Scale)
		default:
			err = fmt.Errorf("unknown command kind %q", c.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Render draws the plan onto a new workbook with the given palette and saves
// it to path. Nothing is written if any command fails.
func Render(plan layout.Plan, path string, palette Palette) error {
	r := NewRenderer()
	defer r.Close()

	if err := palette.Apply(r); err != nil {
		return err
	}

	sheet, err := r.CreateSheet(plan.Sheet)
	if err != nil {
		return err
	}

	if err := r.Draw(sheet, plan); err != nil {
		return err
	}

	return r.Save(path)
}

func (r *Renderer) applyStyle(sheet, topLeft, bottomRight string, style layout.Style) error {
	id, err := r.styleID(style)
	if err != nil {
		return err
	}
	if err := r.f.SetCellStyle(sheet, topLeft, bottomRight, id); err != nil {
		return fmt.Errorf("could not style %s:%s: %w", topLeft, bottomRight, err)
	}
	return nil
}

// styleID returns the workbook style for a placement style, creating it on
// first use.
func (r *Renderer) styleID(style layout.Style) (int, error) {
	if id, ok := r.styles[style]; ok {
		return id, nil
	}

	s := &excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	}

	if slot, ok := slotFor[style]; ok {
		color, ok := r.palette[slot]
		if !ok {
			return 0, fmt.Errorf("palette slot %#x for style %q is not set", slot, style)
		}
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
		s.Alignment = &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	}

	id, err := r.f.NewStyle(s)
	if err != nil {
		return 0, fmt.Errorf("could not create style %q: %w", style, err)
	}
	r.styles[style] = id
	return id, nil
}

func cellName(row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", fmt.Errorf("invalid cell coordinates (%d, %d): %w", row, col, err)
	}
	return name, nil
}

// cellValue stores lesson indices as numbers so they are not flagged as
// numbers-stored-as-text. Course and section names are always text.
func cellValue(label string, style layout.Style) any {
	if style != layout.StyleLesson {
		return label
	}
	if n, err := strconv.Atoi(label); err == nil {
		return n
	}
	return label
}
