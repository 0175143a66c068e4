// Package graphql is the front end of a GraphQL toolchain: it tokenizes and
// parses documents, walks and prints the syntax tree and estimates the cost
// of operations before they run.
package graphql

import (
	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/complexity"
	"github.com/Protocol-Lattice/gqlfront/gqlerror"
	"github.com/Protocol-Lattice/gqlfront/lexer"
	"github.com/Protocol-Lattice/gqlfront/parser"
	"github.com/Protocol-Lattice/gqlfront/printer"
	"github.com/Protocol-Lattice/gqlfront/source"
	"github.com/Protocol-Lattice/gqlfront/token"
	"github.com/Protocol-Lattice/gqlfront/visitor"
)

// ===========================
// Re-exported Types
// ===========================

// Source and error types
type (
	Source      = source.Source
	SyntaxError = gqlerror.SyntaxError
)

// Token types
type (
	TokenKind = token.Kind
	Token     = token.Token
)

// Token constants
const (
	EOF       = token.EOF
	BANG      = token.BANG
	DOLLAR    = token.DOLLAR
	PAREN_L   = token.PAREN_L
	PAREN_R   = token.PAREN_R
	SPREAD    = token.SPREAD
	COLON     = token.COLON
	EQUALS    = token.EQUALS
	AT        = token.AT
	BRACKET_L = token.BRACKET_L
	BRACKET_R = token.BRACKET_R
	BRACE_L   = token.BRACE_L
	PIPE      = token.PIPE
	BRACE_R   = token.BRACE_R
	NAME      = token.NAME
	INT       = token.INT
	FLOAT     = token.FLOAT
	STRING    = token.STRING
)

// AST types
type (
	Node                = ast.Node
	Document            = ast.Document
	Definition          = ast.Definition
	OperationDefinition = ast.OperationDefinition
	VariableDefinition  = ast.VariableDefinition
	FragmentDefinition  = ast.FragmentDefinition
	Type                = ast.Type
	SelectionSet        = ast.SelectionSet
	Selection           = ast.Selection
	Field               = ast.Field
	Argument            = ast.Argument
	Value               = ast.Value
)

// Complexity types
type (
	Analyzer         = complexity.Analyzer
	AnalyzerOption   = complexity.Option
	ComplexityResult = complexity.Result
	Limits           = complexity.Limits
)

// Visitor types
type (
	Visitor     = visitor.Visitor
	BaseVisitor = visitor.Base
)

// Lexer type
type Lexer = lexer.Lexer

// Parser type
type Parser = parser.Parser

// ===========================
// Convenience Functions
// ===========================

// NewSource wraps a document body. An empty name falls back to source.DefaultName.
func NewSource(body, name string) *Source {
	return source.New(body, name)
}

// NewLexer creates a new lexer for the given GraphQL document.
func NewLexer(input string) *Lexer {
	return lexer.New(source.New(input, ""))
}

// NewParser creates a new parser reading tokens from l.
func NewParser(l *Lexer) *Parser {
	return parser.New(l)
}

// Parse parses a GraphQL document. Syntax errors are *SyntaxError.
func Parse(input string) (*Document, error) {
	return parser.Parse(source.New(input, ""))
}

// Print renders n in canonical GraphQL form.
func Print(n Node) string {
	return printer.Print(n)
}

// Walk traverses doc with v and returns the possibly rewritten document.
func Walk(v Visitor, doc *Document) (*Document, error) {
	return visitor.Walk(v, doc)
}

// Analyze parses input and scores every operation in it with the default
// average impact.
func Analyze(input string, opts ...AnalyzerOption) (*ComplexityResult, error) {
	doc, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return complexity.Analyze(doc, complexity.DefaultAverageImpact, opts...)
}
