// Package sdl renders schema models to canonical schema-definition text.
//
// Output is deterministic: types and fields are emitted in model order,
// never re-sorted. The whitespace convention is fixed at two-space indent
// with one field per line; sorting or re-flowing is a presentation concern
// that lives outside this package.
package sdl

import (
	"bytes"
	"strings"
)

const indentSize = 2

// printer accumulates SDL output with indentation handling.
type printer struct {
	output      *bytes.Buffer
	depth       int
	atLineStart bool
}

func newPrinter() *printer {
	return &printer{
		output:      &bytes.Buffer{},
		atLineStart: true,
	}
}

// String returns the rendered output without a trailing newline.
func (p *printer) String() string {
	return strings.TrimRight(p.output.String(), "\n")
}

func (p *printer) write(s string) {
	if p.atLineStart && len(s) > 0 && s[0] != '\n' {
		p.writeIndent()
	}
	p.output.WriteString(s)
	p.atLineStart = false
}

func (p *printer) writeln() {
	p.output.WriteByte('\n')
	p.atLineStart = true
}

func (p *printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}
