package token

import (
	"fmt"
	"strconv"
)

// Kind represents the kind of a token produced by the GraphQL lexer.
type Kind string

const (
	// Special tokens
	EOF Kind = "<EOF>" // End of input

	// Punctuators
	BANG      Kind = "!"   // Non-null marker
	DOLLAR    Kind = "$"   // Variable prefix
	PAREN_L   Kind = "("   // Left parenthesis
	PAREN_R   Kind = ")"   // Right parenthesis
	SPREAD    Kind = "..." // Fragment spread
	COLON     Kind = ":"   // Colon separator
	EQUALS    Kind = "="   // Default value / union members
	AT        Kind = "@"   // Directive prefix
	BRACKET_L Kind = "["   // Left bracket
	BRACKET_R Kind = "]"   // Right bracket
	BRACE_L   Kind = "{"   // Left brace
	PIPE      Kind = "|"   // Union / directive location separator
	BRACE_R   Kind = "}"   // Right brace

	// Identifiers and literals
	NAME   Kind = "Name"   // Names (field names, type names, keywords, etc.)
	INT    Kind = "Int"    // Integer literals
	FLOAT  Kind = "Float"  // Float literals
	STRING Kind = "String" // String literals
)

// IsPunctuator reports whether k is one of the fixed punctuation tokens.
func (k Kind) IsPunctuator() bool {
	switch k {
	case BANG, DOLLAR, PAREN_L, PAREN_R, SPREAD, COLON, EQUALS, AT,
		BRACKET_L, BRACKET_R, BRACE_L, PIPE, BRACE_R:
		return true
	}
	return false
}

// Token represents a single token in the GraphQL source.
// Start and End are byte offsets into the normalized source body, End exclusive.
type Token struct {
	Kind  Kind  // The kind of the token
	Start int   // Offset of the first byte
	End   int   // Offset past the last byte
	Value Value // Literal payload for NAME, INT, FLOAT and STRING tokens
}

// Text returns the textual payload of NAME and STRING tokens, and the decimal
// form of numeric tokens. Punctuators and EOF return "".
func (t Token) Text() string {
	if t.Value == nil {
		return ""
	}
	return t.Value.String()
}

// Describe renders the token the way it appears in error messages:
// the kind alone for punctuators and EOF, kind and value for literals.
func (t Token) Describe() string {
	if t.Kind.IsPunctuator() {
		return strconv.Quote(string(t.Kind))
	}
	if t.Value == nil {
		return string(t.Kind)
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Value.String())
}

// Value is the literal payload of a token. It is a closed set of types:
// Name, String, Int32, Int64, Uint64 and Float.
type Value interface {
	fmt.Stringer
	isValue()
}

// Name is the payload of a NAME token.
type Name string

// String is the decoded payload of a STRING token.
type String string

// Int32 is the payload of an INT token that fits in 32 bits.
type Int32 int32

// Int64 is the payload of an INT token that overflows 32 bits.
type Int64 int64

// Uint64 is the payload of a positive INT token that overflows int64.
type Uint64 uint64

// Float is the payload of a FLOAT token.
type Float float64

func (Name) isValue()   {}
func (String) isValue() {}
func (Int32) isValue()  {}
func (Int64) isValue()  {}
func (Uint64) isValue() {}
func (Float) isValue()  {}

func (v Name) String() string   { return string(v) }
func (v String) String() string { return string(v) }
func (v Int32) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Int64) String() string  { return strconv.FormatInt(int64(v), 10) }
func (v Uint64) String() string { return strconv.FormatUint(uint64(v), 10) }
func (v Float) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
