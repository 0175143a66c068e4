// Package gqlerror defines the syntax error reported by the lexer and parser.
package gqlerror

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/Protocol-Lattice/gqlfront/source"
)

// SyntaxError describes the first lexical or grammatical error in a document.
// Line and Column are 1-based and derived from Offset when the error is built.
type SyntaxError struct {
	Message string         // Human readable description
	Source  *source.Source // Document the error was found in
	Offset  int            // 0-based byte offset into Source.Body
	Line    int
	Column  int
	Snippet string // Previous line, offending line, caret and next line
}

// NewSyntaxError builds a SyntaxError at offset in src.
func NewSyntaxError(src *source.Source, offset int, message string) *SyntaxError {
	loc := src.LocationOf(offset)
	return &SyntaxError{
		Message: message,
		Source:  src,
		Offset:  offset,
		Line:    loc.Line,
		Column:  loc.Column,
		Snippet: highlight(src, loc),
	}
}

// Errorf is NewSyntaxError with a formatted message.
func Errorf(src *source.Source, offset int, format string, args ...interface{}) *SyntaxError {
	return NewSyntaxError(src, offset, fmt.Sprintf(format, args...))
}

// Error returns the headline and the source snippet.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s\n\n%s", e.Headline(), e.Snippet)
}

// Headline returns the single-line form of the error without the snippet.
func (e *SyntaxError) Headline() string {
	return fmt.Sprintf("Syntax Error %s (%d:%d) %s", e.Source.Name, e.Line, e.Column, e.Message)
}

// highlight renders the line before the error, the offending line, a caret
// under the offending column and the line after.
func highlight(src *source.Source, loc source.Location) string {
	lines := src.Lines()
	idx := loc.Line - 1

	width := len(fmt.Sprint(loc.Line + 1))
	row := func(n int) string {
		return fmt.Sprintf("%*d: %s", width, n+1, lines[n])
	}

	var out []string
	if idx > 0 {
		out = append(out, row(idx-1))
	}
	out = append(out, row(idx))
	out = append(out, strings.Repeat(" ", width+2+loc.Column-1)+"^")
	if idx+1 < len(lines) {
		out = append(out, row(idx+1))
	}
	return strings.Join(out, "\n")
}

// Printable renders r for use inside an error message, escaping control and
// other non-printable characters as \uNNNN.
func Printable(r rune) string {
	if r < 0x20 || r == 0x7f || !unicode.IsPrint(r) {
		return fmt.Sprintf("\\u%04X", r)
	}
	return string(r)
}
