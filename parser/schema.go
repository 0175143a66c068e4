package parser

import (
	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/token"
)

// directiveLocations are the names accepted after "on" in a directive definition.
var directiveLocations = map[string]bool{
	"QUERY":                  true,
	"MUTATION":               true,
	"SUBSCRIPTION":           true,
	"FIELD":                  true,
	"FRAGMENT_DEFINITION":    true,
	"FRAGMENT_SPREAD":        true,
	"INLINE_FRAGMENT":        true,
	"VARIABLE_DEFINITION":    true,
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

// parseSchemaDefinition parses schema @dirs { query: Query ... }.
func (p *Parser) parseSchemaDefinition() (*ast.SchemaDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	def := &ast.SchemaDefinition{}
	var err error
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.OperationTypes, err = oneOrMore(p, token.BRACE_L, p.parseOperationTypeDefinition, token.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *Parser) parseOperationTypeDefinition() (*ast.OperationTypeDefinition, error) {
	start := p.tok.Start
	op, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	t, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	return &ast.OperationTypeDefinition{Loc: p.loc(start), Operation: op, Type: t}, nil
}

// parseScalarTypeDefinition parses scalar Name @dirs.
func (p *Parser) parseScalarTypeDefinition() (*ast.ScalarTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	dirs, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.ScalarTypeDefinition{Loc: p.loc(start), Name: name, Directives: dirs}, nil
}

// parseObjectTypeDefinition parses type Name implements A B @dirs { fields }.
func (p *Parser) parseObjectTypeDefinition() (*ast.ObjectTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	def := &ast.ObjectTypeDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = zeroOrMore(p, token.BRACE_L, p.parseFieldDefinition, token.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseImplementsInterfaces parses the space separated list after "implements".
func (p *Parser) parseImplementsInterfaces() ([]*ast.NamedType, error) {
	if !p.peekKeyword("implements") {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var types []*ast.NamedType
	for {
		t, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.peek(token.NAME) {
			return types, nil
		}
	}
}

// parseFieldDefinition parses name(args): Type @dirs.
func (p *Parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	start := p.tok.Start
	def := &ast.FieldDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = p.parseArgumentDefinitions(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *Parser) parseArgumentDefinitions() ([]*ast.InputValueDefinition, error) {
	if !p.peek(token.PAREN_L) {
		return nil, nil
	}
	return oneOrMore(p, token.PAREN_L, p.parseInputValueDefinition, token.PAREN_R)
}

// parseInputValueDefinition parses name: Type = default @dirs.
func (p *Parser) parseInputValueDefinition() (*ast.InputValueDefinition, error) {
	start := p.tok.Start
	def := &ast.InputValueDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
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
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseInterfaceTypeDefinition parses interface Name @dirs { fields }.
func (p *Parser) parseInterfaceTypeDefinition() (*ast.InterfaceTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	def := &ast.InterfaceTypeDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = zeroOrMore(p, token.BRACE_L, p.parseFieldDefinition, token.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseUnionTypeDefinition parses union Name @dirs = A | B.
func (p *Parser) parseUnionTypeDefinition() (*ast.UnionTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	def := &ast.UnionTypeDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUALS); err != nil {
		return nil, err
	}
	if def.Types, err = pipeSeparated(p, p.parseNamedType); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseEnumTypeDefinition parses enum Name @dirs { VALUES }.
func (p *Parser) parseEnumTypeDefinition() (*ast.EnumTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	def := &ast.EnumTypeDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Values, err = oneOrMore(p, token.BRACE_L, p.parseEnumValueDefinition, token.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseEnumValueDefinition rejects true, false and null as value names.
func (p *Parser) parseEnumValueDefinition() (*ast.EnumValueDefinition, error) {
	start := p.tok.Start
	switch {
	case p.peekKeyword("true"), p.peekKeyword("false"), p.peekKeyword("null"):
		return nil, p.unexpected(p.tok)
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	dirs, err := p.parseDirectives(true)
	if err != nil {
		return nil, err
	}
	return &ast.EnumValueDefinition{Loc: p.loc(start), Name: name, Directives: dirs}, nil
}

// parseInputObjectTypeDefinition parses input Name @dirs { fields }.
func (p *Parser) parseInputObjectTypeDefinition() (*ast.InputObjectTypeDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	def := &ast.InputObjectTypeDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = zeroOrMore(p, token.BRACE_L, p.parseInputValueDefinition, token.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseTypeExtensionDefinition parses extend type Name { ... }.
// Only object types can be extended.
func (p *Parser) parseTypeExtensionDefinition() (*ast.TypeExtensionDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}
	if !p.peekKeyword("type") {
		return nil, p.unexpected(p.tok)
	}
	def, err := p.parseObjectTypeDefinition()
	if err != nil {
		return nil, err
	}
	return &ast.TypeExtensionDefinition{Loc: p.loc(start), Definition: def}, nil
}

// parseDirectiveDefinition parses directive @name(args) on A | B.
func (p *Parser) parseDirectiveDefinition() (*ast.DirectiveDefinition, error) {
	start := p.tok.Start
	if _, err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	def := &ast.DirectiveDefinition{}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = p.parseArgumentDefinitions(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if def.Locations, err = pipeSeparated(p, p.parseDirectiveLocation); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *Parser) parseDirectiveLocation() (*ast.Name, error) {
	tok := p.tok
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if !directiveLocations[name.Value] {
		return nil, p.unexpected(tok)
	}
	return name, nil
}

// pipeSeparated parses A | B | C with an optional leading pipe.
func pipeSeparated[T any](p *Parser, parseFn func() (T, error)) ([]T, error) {
	if _, err := p.skip(token.PIPE); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		n, err := parseFn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		more, err := p.skip(token.PIPE)
		if err != nil {
			return nil, err
		}
		if !more {
			return nodes, nil
		}
	}
}
