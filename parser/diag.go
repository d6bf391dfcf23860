package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/csp/core"
)

// Diagnostics collects and renders located error messages.
//
// A message looks like
//
//	machine.csp:3:11: invalid token
//	VM = coin @ choc
//	          ^
//
// with the offending source line quoted and the region underlined.
// Diagnostics implements core.Reporter, so the engine's runtime
// errors render the same way.
type Diagnostics struct {
	Out   io.Writer
	lines []string
	count int
}

// NewDiagnostics makes a Diagnostics over the source text, writing
// to out.
func NewDiagnostics(src string, out io.Writer) *Diagnostics {
	return &Diagnostics{
		Out:   out,
		lines: strings.Split(src, "\n"),
	}
}

// Count returns the number of errors reported so far.
func (d *Diagnostics) Count() int {
	return d.count
}

// Errorf reports an error at a single location.
func (d *Diagnostics) Errorf(loc core.Location, format string, args ...interface{}) {
	d.report(loc, loc, format, args...)
}

// ErrorfAt reports an error spanning a token.
func (d *Diagnostics) ErrorfAt(begin, end core.Location, format string, args ...interface{}) {
	d.report(begin, end, format, args...)
}

func (d *Diagnostics) report(begin, end core.Location, format string, args ...interface{}) {
	d.count++
	if d.Out == nil {
		return
	}
	fmt.Fprintf(d.Out, "%s: %s\n", begin, fmt.Sprintf(format, args...))
	if begin.Line < 1 || len(d.lines) < begin.Line {
		return
	}
	line := expandTabs(d.lines[begin.Line-1])
	fmt.Fprintln(d.Out, line)

	width := 1
	if end.Line == begin.Line && begin.Col < end.Col {
		width = end.Col - begin.Col + 1
	}
	if len(line) < begin.Col-1+width {
		width = len(line) - begin.Col + 1
		if width < 1 {
			width = 1
		}
	}
	fmt.Fprintln(d.Out, strings.Repeat(" ", begin.Col-1)+"^"+strings.Repeat("~", width-1))
}

// expandTabs mirrors the scanner's tab handling so the underline
// lands where the scanner said the token was.
func expandTabs(line string) string {
	var sb strings.Builder
	col := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '\t' {
			next := (col/8 + 1) * 8
			for col < next {
				sb.WriteByte(' ')
				col++
			}
			continue
		}
		sb.WriteByte(line[i])
		col++
	}
	return sb.String()
}
