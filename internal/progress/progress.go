// Package progress reports run status: fixed step lines on stdout and an
// optional per-lesson bar on stderr.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Status lines printed by a successful run, in order.
const (
	StepReceiving  = "Receiving data"
	StepGenerating = "Generating table"
	StepDone       = "Table is generated"
)

// Steps prints one line per run phase.
type Steps struct {
	Out   io.Writer
	Quiet bool
}

// NewSteps returns a step printer writing to w, or to stdout when w is nil.
func NewSteps(w io.Writer, quiet bool) *Steps {
	if w == nil {
		w = color.Output
	}
	return &Steps{Out: w, Quiet: quiet}
}

// Start prints an in-progress phase.
func (s *Steps) Start(msg string) {
	if s.Quiet {
		return
	}
	fmt.Fprintln(s.Out, msg)
}

// Done prints the final phase.
func (s *Steps) Done(msg string) {
	if s.Quiet {
		return
	}
	fmt.Fprintln(s.Out, color.New(color.FgGreen).Sprint(msg))
}

// Bar renders an ASCII progress bar to stderr.
type Bar struct {
	Total   int
	Current int
	Label   string
	Width   int
	Enabled bool
	Out     io.Writer

	mu sync.Mutex
}

// New creates a progress bar.
// Automatically disabled if stderr is not a TTY or COURSEGRID_NO_PROGRESS=1.
func New(label string, total int) *Bar {
	return &Bar{
		Total:   total,
		Label:   label,
		Width:   40,
		Enabled: shouldEnable(),
		Out:     os.Stderr,
	}
}

// Increment advances the bar by 1 and redraws.
func (b *Bar) Increment(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Current++
	if b.Total > 0 && b.Current > b.Total {
		b.Current = b.Total
	}
	b.render(status)
}

// Finish clears the bar line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.Enabled {
		return
	}
	fmt.Fprint(b.Out, "\r\033[K")
}

func (b *Bar) render(status string) {
	if !b.Enabled {
		return
	}

	if b.Total <= 0 {
		fmt.Fprintf(b.Out, "\r\033[K%s %d  %s", b.Label, b.Current, status)
		return
	}

	filled := b.Current * b.Width / b.Total
	if filled > b.Width {
		filled = b.Width
	}

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", b.Width-filled)
	fmt.Fprintf(b.Out, "\r\033[K%s [%s] %d/%d  %s",
		b.Label, bar, b.Current, b.Total, status)
}

// Pct returns the current percentage (0-100) of the bar.
func (b *Bar) Pct() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Total == 0 {
		return 0
	}
	return float64(b.Current) / float64(b.Total) * 100
}

func shouldEnable() bool {
	if os.Getenv("COURSEGRID_NO_PROGRESS") == "1" {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
