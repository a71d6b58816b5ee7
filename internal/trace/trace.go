// Package trace renders an eval.Error's stack trace as human-readable
// diagnostic text: a message line followed by one "file:line:column"
// frame per activation, each with the offending source line and a
// caret pointing at the column, in the style of the teacher repo's
// original compiler-error renderer.
package trace

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/eval"
)

// Render formats err for display on stderr or in a test golden file.
func Render(err *eval.Error) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", err.Kind, err.Message)
	for _, f := range err.Trace {
		sb.WriteString(renderFrame(f))
	}
	return sb.String()
}

func renderFrame(f eval.StackFrame) string {
	if f.Loc == nil || f.Loc.Source == nil {
		return fmt.Sprintf("\tat %s\n", f.Name)
	}
	loc := f.Loc
	var sb strings.Builder
	fmt.Fprintf(&sb, "\tat %s (%s:%d:%d)\n", f.Name, loc.Source.Name, loc.Start.Line, loc.Start.Column)
	if line := sourceLine(loc.Source, loc.Start.Line); line != "" {
		sb.WriteString("\t\t" + line + "\n")
		sb.WriteString("\t\t" + caret(line, loc.Start.Column) + "\n")
	}
	return sb.String()
}

func sourceLine(src *ast.Source, lineNo int) string {
	lines := strings.Split(src.Code, "\n")
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}

// caret builds the indentation prefix for the "^" marker under column,
// accounting for East-Asian wide runes before it (each renders as two
// terminal cells, so a plain rune count would misalign the marker).
func caret(line string, column int) string {
	if column < 1 {
		column = 1
	}
	runes := []rune(line)
	if column-1 > len(runes) {
		column = len(runes) + 1
	}
	var sb strings.Builder
	for _, r := range runes[:column-1] {
		if width.LookupRune(r).Kind() == width.EastAsianWide {
			sb.WriteString("  ")
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}
