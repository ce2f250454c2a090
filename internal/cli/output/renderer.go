// Package output renders command results. Terminal sessions get styled
// tables, piped output gets markdown, and --format selects json or yaml
// for machine consumption.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Renderer writes command results in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer. ModeAuto resolves to a styled table when
// out is a terminal and markdown otherwise.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeTable, ModeMarkdown, ModeJSON, ModeYAML:
	default:
		mode = ModeAuto
	}
	if mode == ModeAuto {
		mode = ModeTable
		if !isTerminal(out) {
			mode = ModeMarkdown
		}
	}
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// Mode returns the resolved output mode.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Structured reports whether the mode is machine-readable (json/yaml).
// Commands pass Emit a data value instead of building tables in that case.
func (r *Renderer) Structured() bool {
	return r.mode == ModeJSON || r.mode == ModeYAML
}

// Emit encodes v as JSON or YAML.
func (r *Renderer) Emit(v any) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case ModeYAML:
		enc := yaml.NewEncoder(r.out)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("emit called in %s mode", r.mode)
	}
}

// Table renders a header and rows as a styled or markdown table.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// Printf writes plain text to the output stream.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Errorf writes plain text to the error stream.
func (r *Renderer) Errorf(format string, args ...any) {
	fmt.Fprintf(r.errOut, format, args...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
