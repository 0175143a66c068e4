package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Protocol-Lattice/gqlfront/gqlerror"
)

// styles holds the color formatters for diagnostics.
type styles struct {
	heading *color.Color
	caret   *color.Color
	source  *color.Color
}

// newStyles creates color formatters. enabled=false respects NO_COLOR and
// non-terminal output through color.NoColor.
func newStyles(enabled bool) *styles {
	s := &styles{
		heading: color.New(color.Bold, color.FgHiWhite),
		caret:   color.New(color.Bold, color.FgHiRed),
		source:  color.New(color.FgHiBlue),
	}

	if !enabled {
		s.heading.DisableColor()
		s.caret.DisableColor()
		s.source.DisableColor()
	}

	return s
}

// printError writes err to w. Syntax errors get their source snippet with
// the caret line highlighted.
func printError(w io.Writer, err error, s *styles) {
	var syntaxErr *gqlerror.SyntaxError
	if !errors.As(err, &syntaxErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	s.heading.Fprintln(w, syntaxErr.Headline())
	fmt.Fprintln(w)
	for _, line := range strings.Split(syntaxErr.Snippet, "\n") {
		if strings.TrimSpace(line) == "^" {
			s.caret.Fprintln(w, line)
			continue
		}
		s.source.Fprintln(w, line)
	}
}
