// Package output provides formatting utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents an output format.
type Format int

const (
	// FormatText is plain text output.
	FormatText Format = iota
	// FormatJSON is JSON output.
	FormatJSON
	// FormatYAML is YAML output.
	FormatYAML
)

// ParseFormat maps a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, fmt.Errorf("unknown format %q (supported: text, json, yaml)", s)
	}
}

// Writer handles formatted output to a destination.
type Writer struct {
	dest   io.Writer
	format Format
}

// NewWriter creates a new output writer with the given format.
// A nil dest writes to stdout.
func NewWriter(dest io.Writer, format Format) *Writer {
	if dest == nil {
		dest = os.Stdout
	}
	return &Writer{
		dest:   dest,
		format: format,
	}
}

// Format returns the writer's format.
func (w *Writer) Format() Format {
	return w.format
}

// Write encodes v in the writer's structured format. Text writers fall back
// to fmt's %v.
func (w *Writer) Write(v interface{}) error {
	switch w.format {
	case FormatJSON:
		return w.WriteJSON(v)
	case FormatYAML:
		return w.WriteYAML(v)
	default:
		_, err := fmt.Fprintf(w.dest, "%v\n", v)
		return err
	}
}

// WriteJSON encodes a value as pretty-printed JSON.
func (w *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(w.dest)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML encodes a value as YAML with two-space indentation.
func (w *Writer) WriteYAML(v interface{}) error {
	enc := yaml.NewEncoder(w.dest)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes plain text.
func (w *Writer) WriteText(s string) error {
	_, err := fmt.Fprint(w.dest, s)
	return err
}

// WriteLn writes a line of text.
func (w *Writer) WriteLn(s string) error {
	_, err := fmt.Fprintln(w.dest, s)
	return err
}
