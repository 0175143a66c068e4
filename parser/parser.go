// Package parser builds an AST from GraphQL source text by recursive descent.
package parser

import (
	"strconv"

	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/gqlerror"
	"github.com/Protocol-Lattice/gqlfront/lexer"
	"github.com/Protocol-Lattice/gqlfront/source"
	"github.com/Protocol-Lattice/gqlfront/token"
)

// Parser parses GraphQL source code into an AST.
// It keeps a single token of lookahead and pulls the next one from the lexer
// whenever the current token is consumed.
type Parser struct {
	l       *lexer.Lexer   // The lexer to read tokens from
	src     *source.Source // Source being parsed, used for errors and literal text
	tok     token.Token    // Current token
	prevEnd int            // End offset of the last consumed token
	err     error          // Error from reading the first token

	depth    int // Open selection sets, lists, objects and list types
	maxDepth int
}

// DefaultMaxDepth bounds how deeply selection sets, list and object values
// and list types may nest in one document.
const DefaultMaxDepth = 500

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting ceiling. Values below 1 keep DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// New creates a new Parser for the given lexer.
func New(l *lexer.Lexer, opts ...Option) *Parser {
	p := &Parser{l: l, src: l.Source(), maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	p.tok, p.err = l.NextToken()
	return p
}

// Parse parses src as a complete document.
func Parse(src *source.Source, opts ...Option) (*ast.Document, error) {
	return New(lexer.New(src), opts...).ParseDocument()
}

// ParseValue parses src as a single value literal. Variables are allowed.
func ParseValue(src *source.Source, opts ...Option) (ast.Value, error) {
	p := New(lexer.New(src), opts...)
	if p.err != nil {
		return nil, p.err
	}
	v, err := p.parseValueLiteral(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseType parses src as a single type reference such as [String!]!.
func ParseType(src *source.Source, opts ...Option) (ast.Type, error) {
	p := New(lexer.New(src), opts...)
	if p.err != nil {
		return nil, p.err
	}
	t, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseDocument parses a GraphQL document.
// A document holds at least one definition.
func (p *Parser) ParseDocument() (*ast.Document, error) {
	if p.err != nil {
		return nil, p.err
	}
	start := p.tok.Start
	doc := &ast.Document{}
	for {
		def, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
		if p.peek(token.EOF) {
			break
		}
	}
	doc.Loc = p.loc(start)
	return doc, nil
}

// parseDefinition dispatches on the leading token of a top-level definition.
func (p *Parser) parseDefinition() (ast.Definition, error) {
	if p.peek(token.BRACE_L) {
		return p.parseOperationDefinition()
	}
	if p.peek(token.NAME) {
		switch p.tok.Text() {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		case "schema":
			return p.parseSchemaDefinition()
		case "scalar":
			return p.parseScalarTypeDefinition()
		case "type":
			return p.parseObjectTypeDefinition()
		case "interface":
			return p.parseInterfaceTypeDefinition()
		case "union":
			return p.parseUnionTypeDefinition()
		case "enum":
			return p.parseEnumTypeDefinition()
		case "input":
			return p.parseInputObjectTypeDefinition()
		case "extend":
			return p.parseTypeExtensionDefinition()
		case "directive":
			return p.parseDirectiveDefinition()
		}
	}
	return nil, p.unexpected(p.tok)
}

// parseOperationDefinition parses a query, mutation, or subscription operation.
// A bare selection set is shorthand for an anonymous query.
func (p *Parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	start := p.tok.Start
	if p.peek(token.BRACE_L) {
		ss, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{Loc: p.loc(start), Operation: ast.Query, SelectionSet: ss}, nil
	}

	operation, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	op := &ast.OperationDefinition{Operation: operation}
	if p.peek(token.NAME) {
		if op.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if op.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
		return nil, err
	}
	if op.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if op.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	op.Loc = p.loc(start)
	return op, nil
}

// parseOperationType reads one of the query, mutation or subscription keywords.
func (p *Parser) parseOperationType() (ast.Operation, error) {
	tok, err := p.expect(token.NAME)
	if err != nil {
		return "", err
	}
	switch op := ast.Operation(tok.Text()); op {
	case ast.Query, ast.Mutation, ast.Subscription:
		return op, nil
	}
	return "", p.unexpected(tok)
}

// parseVariableDefinitions parses ($a: Int = 1, $b: String) when present.
func (p *Parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if !p.peek(token.PAREN_L) {
		return nil, nil
	}
	return oneOrMore(p, token.PAREN_L, p.parseVariableDefinition, token.PAREN_R)
}

func (p *Parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	start := p.tok.Start
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	def := &ast.VariableDefinition{Variable: v}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if ok, err := p.skip(token.EQUALS); err != nil {
		return nil, err
	} else if ok {
		if def.DefaultValue, err = p.parseValueLiteral(true); err != nil {
			return nil, err
		}
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *Parser) parseVariable() (*ast.Variable, error) {
	start := p.tok.Start
	if _, err := p.expect(token.DOLLAR); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Loc: p.loc(start), Name: name}, nil
}

// parseSelectionSet parses a selection set (fields within braces).
func (p *Parser) parseSelectionSet() (*ast.SelectionSet, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	start := p.tok.Start
	sels, err := oneOrMore(p, token.BRACE_L, p.parseSelection, token.BRACE_R)
	if err != nil {
		return nil, err
	}
	return &ast.SelectionSet{Loc: p.loc(start), Selections: sels}, nil
}

// parseSelection parses a field or, after "...", a fragment spread or inline fragment.
func (p *Parser) parseSelection() (ast.Selection, error) {
	if p.peek(token.SPREAD) {
		return p.parseFragment()
	}
	return p.parseField()
}

// parseField parses alias: name(args) @dirs { ... }.
func (p *Parser) parseField() (*ast.Field, error) {
	start := p.tok.Start
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}
	field := &ast.Field{Name: nameOrAlias}
	if ok, err := p.skip(token.COLON); err != nil {
		return nil, err
	} else if ok {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if field.Arguments, err = p.parseArguments(false); err != nil {
		return nil, err
	}
	if field.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if p.peek(token.BRACE_L) {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}
	field.Loc = p.loc(start)
	return field, nil
}

// parseArguments parses (name: value, ...) when present.
func (p *Parser) parseArguments(isConst bool) ([]*ast.Argument, error) {
	if !p.peek(token.PAREN_L) {
		return nil, nil
	}
	return oneOrMore(p, token.PAREN_L, func() (*ast.Argument, error) {
		return p.parseArgument(isConst)
	}, token.PAREN_R)
}

func (p *Parser) parseArgument(isConst bool) (*ast.Argument, error) {
	start := p.tok.Start
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	value, err := p.parseValueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.Argument{Loc: p.loc(start), Name: name, Value: value}, nil
}

// parseFragment parses what follows "...": a named spread, or an inline
// fragment with an optional type condition.
func (p *Parser) parseFragment() (ast.Selection, error) {
	start := p.tok.Start
	if _, err := p.expect(token.SPREAD); err != nil {
		return nil, err
	}
	if p.peek(token.NAME) && p.tok.Text() != "on" {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		dirs, err := p.parseDirectives(false)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{Loc: p.loc(start), Name: name, Directives: dirs}, nil
	}

	frag := &ast.InlineFragment{}
	var err error
	if p.peekKeyword("on") {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if frag.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}
	if frag.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return frag, nil
}

// parseFragmentDefinition parses fragment Name on Type @dirs { ... }.
func (p *Parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}
	if p.peekKeyword("on") {
		return nil, p.unexpected(p.tok)
	}
	frag := &ast.FragmentDefinition{}
	var err error
	if frag.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if frag.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}
	if frag.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return frag, nil
}

// parseValueLiteral parses a value. In const contexts variables are rejected.
func (p *Parser) parseValueLiteral(isConst bool) (ast.Value, error) {
	tok := p.tok
	switch tok.Kind {
	case token.BRACKET_L:
		return p.parseList(isConst)
	case token.BRACE_L:
		return p.parseObject(isConst)
	case token.INT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.IntValue{Loc: p.loc(tok.Start), Value: p.literal(tok)}, nil
	case token.FLOAT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FloatValue{Loc: p.loc(tok.Start), Value: p.literal(tok)}, nil
	case token.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.StringValue{Loc: p.loc(tok.Start), Value: tok.Text()}, nil
	case token.NAME:
		text := tok.Text()
		if text == "null" {
			return nil, p.unexpected(tok)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if text == "true" || text == "false" {
			return &ast.BooleanValue{Loc: p.loc(tok.Start), Value: text == "true"}, nil
		}
		return &ast.EnumValue{Loc: p.loc(tok.Start), Value: text}, nil
	case token.DOLLAR:
		if !isConst {
			return p.parseVariable()
		}
	}
	return nil, p.unexpected(tok)
}

// parseList parses [v1, v2, ...]. An empty list is allowed.
func (p *Parser) parseList(isConst bool) (*ast.ListValue, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	start := p.tok.Start
	values, err := zeroOrMore(p, token.BRACKET_L, func() (ast.Value, error) {
		return p.parseValueLiteral(isConst)
	}, token.BRACKET_R)
	if err != nil {
		return nil, err
	}
	return &ast.ListValue{Loc: p.loc(start), Values: values}, nil
}

// parseObject parses a GraphQL object literal.
func (p *Parser) parseObject(isConst bool) (*ast.ObjectValue, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	start := p.tok.Start
	fields, err := zeroOrMore(p, token.BRACE_L, func() (*ast.ObjectField, error) {
		return p.parseObjectField(isConst)
	}, token.BRACE_R)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectValue{Loc: p.loc(start), Fields: fields}, nil
}

func (p *Parser) parseObjectField(isConst bool) (*ast.ObjectField, error) {
	start := p.tok.Start
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	value, err := p.parseValueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectField{Loc: p.loc(start), Name: name, Value: value}, nil
}

// parseDirectives parses any number of @name(args).
func (p *Parser) parseDirectives(isConst bool) ([]*ast.Directive, error) {
	var dirs []*ast.Directive
	for p.peek(token.AT) {
		d, err := p.parseDirective(isConst)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func (p *Parser) parseDirective(isConst bool) (*ast.Directive, error) {
	start := p.tok.Start
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.Directive{Loc: p.loc(start), Name: name, Arguments: args}, nil
}

// parseTypeReference parses a GraphQL type (e.g., String, [Int!], User!).
func (p *Parser) parseTypeReference() (ast.Type, error) {
	start := p.tok.Start
	var t ast.Type
	isList, err := p.skip(token.BRACKET_L)
	if err != nil {
		return nil, err
	}
	if isList {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		inner, err := p.parseTypeReference()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.BRACKET_R); err != nil {
			return nil, err
		}
		t = &ast.ListType{Loc: p.loc(start), Type: inner}
	} else {
		if t, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}

	nonNull, err := p.skip(token.BANG)
	if err != nil {
		return nil, err
	}
	if nonNull {
		return &ast.NonNullType{Loc: p.loc(start), Type: t}, nil
	}
	return t, nil
}

func (p *Parser) parseNamedType() (*ast.NamedType, error) {
	start := p.tok.Start
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{Loc: p.loc(start), Name: name}, nil
}

func (p *Parser) parseName() (*ast.Name, error) {
	tok, err := p.expect(token.NAME)
	if err != nil {
		return nil, err
	}
	return &ast.Name{Loc: ast.Loc{Start: tok.Start, End: tok.End}, Value: tok.Text()}, nil
}

// advance consumes the current token and reads the next one.
func (p *Parser) advance() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.prevEnd = p.tok.End
	p.tok = tok
	return nil
}

// peek reports whether the current token is of kind k.
func (p *Parser) peek(k token.Kind) bool {
	return p.tok.Kind == k
}

// peekKeyword reports whether the current token is the name value.
func (p *Parser) peekKeyword(value string) bool {
	return p.tok.Kind == token.NAME && p.tok.Text() == value
}

// skip consumes the current token when it is of kind k.
func (p *Parser) skip(k token.Kind) (bool, error) {
	if !p.peek(k) {
		return false, nil
	}
	return true, p.advance()
}

// expect consumes a token of kind k or fails naming what was found instead.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	tok := p.tok
	if tok.Kind != k {
		return tok, p.errorf(tok.Start, "Expected %s, found %s.", describeKind(k), tok.Describe())
	}
	return tok, p.advance()
}

// expectKeyword consumes the name value or fails naming what was found instead.
func (p *Parser) expectKeyword(value string) (token.Token, error) {
	tok := p.tok
	if !p.peekKeyword(value) {
		return tok, p.errorf(tok.Start, "Expected %q, found %s.", value, tok.Describe())
	}
	return tok, p.advance()
}

// unexpected reports tok as not valid at this point of the grammar.
func (p *Parser) unexpected(tok token.Token) error {
	return p.errorf(tok.Start, "Unexpected %s.", tok.Describe())
}

// enter opens one level of nesting at the current token.
func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return p.errorf(p.tok.Start, "Document nesting exceeds the limit of %d.", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) errorf(offset int, format string, args ...interface{}) error {
	return gqlerror.Errorf(p.src, offset, format, args...)
}

// loc spans from start to the end of the last consumed token.
func (p *Parser) loc(start int) ast.Loc {
	return ast.Loc{Start: start, End: p.prevEnd}
}

// literal returns the source text of a numeric token.
func (p *Parser) literal(tok token.Token) string {
	return p.src.Body[tok.Start:tok.End]
}

func describeKind(k token.Kind) string {
	if k.IsPunctuator() {
		return strconv.Quote(string(k))
	}
	return string(k)
}

// oneOrMore parses open, at least one node, then any more nodes until closing.
func oneOrMore[T any](p *Parser, open token.Kind, parseFn func() (T, error), closing token.Kind) ([]T, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		n, err := parseFn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		done, err := p.skip(closing)
		if err != nil {
			return nil, err
		}
		if done {
			return nodes, nil
		}
	}
}

// zeroOrMore parses open, any number of nodes, then closing.
func zeroOrMore[T any](p *Parser, open token.Kind, parseFn func() (T, error), closing token.Kind) ([]T, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		done, err := p.skip(closing)
		if err != nil {
			return nil, err
		}
		if done {
			return nodes, nil
		}
		n, err := parseFn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}
