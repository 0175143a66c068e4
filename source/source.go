// Package source holds GraphQL document text and maps byte offsets back to
// line and column positions for diagnostics.
package source

import (
	"strings"
	"unicode/utf8"
)

// DefaultName is used when a Source is created without a name.
const DefaultName = "GraphQL request"

// Source is a GraphQL document body plus a name used in error messages.
// The body is newline-normalized once at construction (CR and CRLF become LF),
// so every offset handed out by the lexer refers to the normalized text.
type Source struct {
	Name string // Name shown in diagnostics
	Body string // Newline-normalized document text
}

// New creates a Source for body. An empty name falls back to DefaultName.
func New(body, name string) *Source {
	if name == "" {
		name = DefaultName
	}
	return &Source{Name: name, Body: normalizeNewlines(body)}
}

// normalizeNewlines rewrites CRLF and lone CR into LF.
func normalizeNewlines(body string) string {
	if !strings.ContainsRune(body, '\r') {
		return body
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\r", "\n")
}

// Location is a 1-based line and column pair.
type Location struct {
	Line   int
	Column int
}

// LocationOf computes the line and column of a byte offset in the body.
// Columns count runes, not bytes. Offsets past the end are clamped.
func (s *Source) LocationOf(offset int) Location {
	if offset > len(s.Body) {
		offset = len(s.Body)
	}
	if offset < 0 {
		offset = 0
	}
	line := 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if s.Body[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Location{
		Line:   line,
		Column: utf8.RuneCountInString(s.Body[lineStart:offset]) + 1,
	}
}

// Lines splits the body into lines without their terminators.
func (s *Source) Lines() []string {
	return strings.Split(s.Body, "\n")
}
