package xlsx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/klytics/coursegrid/internal/layout"
)

// Palette slots reserved for the four fills.
const (
	SlotCourse  = 0x08
	SlotSection = 0x09
	SlotLesson  = 0x0A
	SlotUnused  = 0x0B
)

// slotFor maps a placement style to its palette slot. Styles without a slot
// are drawn with borders only.
var slotFor = map[layout.Style]int{
	layout.StyleCourse:  SlotCourse,
	layout.StyleSection: SlotSection,
	layout.StyleLesson:  SlotLesson,
	layout.StyleUnused:  SlotUnused,
}

// Palette holds the fill colors as RRGGBB hex strings.
type Palette struct {
	Course  string `mapstructure:"course" json:"course" yaml:"course"`
	Section string `mapstructure:"section" json:"section" yaml:"section"`
	Lesson  string `mapstructure:"lesson" json:"lesson" yaml:"lesson"`
	Unused  string `mapstructure:"unused" json:"unused" yaml:"unused"`
}

// DefaultPalette returns the green-to-grey fills.
func DefaultPalette() Palette {
	return Palette{
		Course:  "A2D08E",
		Section: "C6E0B4",
		Lesson:  "E2EFDA",
		Unused:  "D9D9D9",
	}
}

// Apply registers every palette color on the renderer.
func (p Palette) Apply(r *Renderer) error {
	slots := []struct {
		index int
		hex   string
	}{
		{SlotCourse, p.Course},
		{SlotSection, p.Section},
		{SlotLesson, p.Lesson},
		{SlotUnused, p.Unused},
	}
	for _, s := range slots {
		red, green, blue, err := ParseHex(s.hex)
		if err != nil {
			return fmt.Errorf("palette slot %#x: %w", s.index, err)
		}
		r.SetPaletteColor(s.index, red, green, blue)
	}
	return nil
}

// Validate checks that every color parses.
func (p Palette) Validate() error {
	fields := []struct{ name, hex string }{
		{"course", p.Course},
		{"section", p.Section},
		{"lesson", p.Lesson},
		{"unused", p.Unused},
	}
	for _, f := range fields {
		if _, _, _, err := ParseHex(f.hex); err != nil {
			return fmt.Errorf("palette.%s: %w", f.name, err)
		}
	}
	return nil
}

// ParseHex parses an RRGGBB color, with or without a leading '#'.
func ParseHex(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q, expected RRGGBB", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q, expected RRGGBB", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}
