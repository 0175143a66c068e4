package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/gqlerror"
	"github.com/Protocol-Lattice/gqlfront/lexer"
	"github.com/Protocol-Lattice/gqlfront/source"
)

func parse(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, err := Parse(source.New(body, ""))
	require.NoError(t, err)
	return doc
}

func parseErr(t *testing.T, body string) *gqlerror.SyntaxError {
	t.Helper()
	_, err := Parse(source.New(body, ""))
	require.Error(t, err)
	var syntaxErr *gqlerror.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "expected *gqlerror.SyntaxError, got %T", err)
	return syntaxErr
}

func TestOperationDefinitionImplicitQuery(t *testing.T) {
	p := New(lexer.New(source.New(`{ hello }`, "")))
	doc, err := p.ParseDocument()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Definitions) != 1 {
		t.Fatal("expected one definition for implicit query")
	}
	op, ok := doc.Definitions[0].(*ast.OperationDefinition)
	if !ok {
		t.Fatal("expected operation definition")
	}
	if op.Operation != ast.Query {
		t.Errorf("expected operation to be 'query', got %q", op.Operation)
	}
	if op.Name != nil {
		t.Errorf("expected anonymous operation, got %q", op.Name.Value)
	}
}

func TestParseShorthandQueryTree(t *testing.T) {
	doc := parse(t, `{ hero { name } }`)

	want := &ast.Document{
		Loc: ast.Loc{Start: 0, End: 17},
		Definitions: []ast.Definition{
			&ast.OperationDefinition{
				Loc:       ast.Loc{Start: 0, End: 17},
				Operation: ast.Query,
				SelectionSet: &ast.SelectionSet{
					Loc: ast.Loc{Start: 0, End: 17},
					Selections: []ast.Selection{
						&ast.Field{
							Loc:  ast.Loc{Start: 2, End: 15},
							Name: &ast.Name{Loc: ast.Loc{Start: 2, End: 6}, Value: "hero"},
							SelectionSet: &ast.SelectionSet{
								Loc: ast.Loc{Start: 7, End: 15},
								Selections: []ast.Selection{
									&ast.Field{
										Loc:  ast.Loc{Start: 9, End: 13},
										Name: &ast.Name{Loc: ast.Loc{Start: 9, End: 13}, Value: "name"},
									},
								},
							},
						},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperationWithNameAndVariables(t *testing.T) {
	doc := parse(t, `query Hero($id: ID!, $episodes: [Episode!]! = [NEWHOPE, EMPIRE]) @live {
  hero(id: $id) { name }
}`)
	op := doc.Operation("Hero")
	require.NotNil(t, op)
	assert.Equal(t, ast.Query, op.Operation)
	require.Len(t, op.VariableDefinitions, 2)

	id := op.VariableDefinitions[0]
	assert.Equal(t, "id", id.Variable.Name.Value)
	nonNull, ok := id.Type.(*ast.NonNullType)
	require.True(t, ok, "expected NonNullType, got %T", id.Type)
	assert.Equal(t, "ID", nonNull.Type.(*ast.NamedType).Name.Value)
	assert.Nil(t, id.DefaultValue)

	episodes := op.VariableDefinitions[1]
	assert.Equal(t, "Episode", ast.NamedTypeOf(episodes.Type).Name.Value)
	list, ok := episodes.DefaultValue.(*ast.ListValue)
	require.True(t, ok, "expected ListValue, got %T", episodes.DefaultValue)
	require.Len(t, list.Values, 2)
	assert.Equal(t, "EMPIRE", list.Values[1].(*ast.EnumValue).Value)

	require.Len(t, op.Directives, 1)
	assert.Equal(t, "live", op.Directives[0].Name.Value)

	hero := op.SelectionSet.Selections[0].(*ast.Field)
	v, ok := hero.ArgumentValue("id").(*ast.Variable)
	require.True(t, ok)
	assert.Equal(t, "id", v.Name.Value)
}

func TestParseOperationTypes(t *testing.T) {
	doc := parse(t, `query A { a } mutation B { b } subscription C { c }`)
	ops := doc.Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, ast.Query, ops[0].Operation)
	assert.Equal(t, ast.Mutation, ops[1].Operation)
	assert.Equal(t, ast.Subscription, ops[2].Operation)
	assert.Nil(t, doc.Operation(""), "ambiguous without a name")
	assert.Equal(t, "B", doc.Operation("B").Name.Value)
}

func TestParseAliasArgumentsAndDirectives(t *testing.T) {
	doc := parse(t, `{ smallPic: profilePic(size: 64, scale: 1.5) @include(if: $big) }`)
	field := doc.Operations()[0].SelectionSet.Selections[0].(*ast.Field)

	assert.Equal(t, "smallPic", field.Alias.Value)
	assert.Equal(t, "profilePic", field.Name.Value)
	assert.Equal(t, "smallPic", field.ResponseKey())
	assert.Nil(t, field.SelectionSet)

	require.Len(t, field.Arguments, 2)
	assert.Equal(t, "64", field.ArgumentValue("size").(*ast.IntValue).Value)
	assert.Equal(t, "1.5", field.ArgumentValue("scale").(*ast.FloatValue).Value)
	assert.Nil(t, field.ArgumentValue("missing"))

	require.Len(t, field.Directives, 1)
	cond := field.Directives[0].Argument("if")
	require.NotNil(t, cond)
	assert.IsType(t, &ast.Variable{}, cond.Value)
}

func TestParseFragments(t *testing.T) {
	doc := parse(t, `
query { node { ...UserParts @skip(if: false) ... on User { id } ... @include(if: true) { name } } }
fragment UserParts on User @cached { name }
`)
	sels := doc.Operations()[0].SelectionSet.Selections[0].(*ast.Field).SelectionSet.Selections
	require.Len(t, sels, 3)

	spread, ok := sels[0].(*ast.FragmentSpread)
	require.True(t, ok, "expected FragmentSpread, got %T", sels[0])
	assert.Equal(t, "UserParts", spread.Name.Value)
	require.Len(t, spread.Directives, 1)

	typed, ok := sels[1].(*ast.InlineFragment)
	require.True(t, ok, "expected InlineFragment, got %T", sels[1])
	assert.Equal(t, "User", typed.TypeCondition.Name.Value)

	untyped, ok := sels[2].(*ast.InlineFragment)
	require.True(t, ok, "expected InlineFragment, got %T", sels[2])
	assert.Nil(t, untyped.TypeCondition)
	require.Len(t, untyped.Directives, 1)

	frag := doc.Fragment("UserParts")
	require.NotNil(t, frag)
	assert.Equal(t, "User", frag.TypeCondition.Name.Value)
	assert.Equal(t, "cached", frag.Directives[0].Name.Value)
	assert.Len(t, doc.Fragments(), 1)
	assert.Nil(t, doc.Fragment("Missing"))
}

func TestParseDefinitionsKeepSourceOrder(t *testing.T) {
	doc := parse(t, `fragment A on T { a } { b } fragment B on T { c } query Q { d }`)
	var kinds []ast.Kind
	for _, def := range doc.Definitions {
		kinds = append(kinds, def.Kind())
	}
	assert.Equal(t, []ast.Kind{
		ast.KindFragmentDefinition,
		ast.KindOperationDefinition,
		ast.KindFragmentDefinition,
		ast.KindOperationDefinition,
	}, kinds)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue(source.New(`[1, -2.5e3, "x\ty", true, false, RED, {a: $v, b: []}]`, ""))
	require.NoError(t, err)
	list, ok := v.(*ast.ListValue)
	require.True(t, ok, "expected ListValue, got %T", v)
	require.Len(t, list.Values, 7)

	assert.Equal(t, &ast.IntValue{Loc: ast.Loc{Start: 1, End: 2}, Value: "1"}, list.Values[0])
	assert.Equal(t, "-2.5e3", list.Values[1].(*ast.FloatValue).Value)
	assert.Equal(t, "x\ty", list.Values[2].(*ast.StringValue).Value)
	assert.True(t, list.Values[3].(*ast.BooleanValue).Value)
	assert.False(t, list.Values[4].(*ast.BooleanValue).Value)
	assert.Equal(t, "RED", list.Values[5].(*ast.EnumValue).Value)

	obj := list.Values[6].(*ast.ObjectValue)
	require.Len(t, obj.Fields, 2)
	assert.Equal(t, "a", obj.Fields[0].Name.Value)
	assert.IsType(t, &ast.Variable{}, obj.Fields[0].Value)
	assert.Empty(t, obj.Fields[1].Value.(*ast.ListValue).Values)
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		body string
		msg  string
	}{
		{"null", `Unexpected Name "null".`},
		{"1 2", `Expected <EOF>, found Int "2".`},
		{"{a 1}", `Expected ":", found Int "1".`},
		{"[1", `Unexpected <EOF>.`},
		{"", `Unexpected <EOF>.`},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			_, err := ParseValue(source.New(tt.body, ""))
			var syntaxErr *gqlerror.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "expected *gqlerror.SyntaxError, got %v", err)
			assert.Equal(t, tt.msg, syntaxErr.Message)
		})
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType(source.New(`[String!]!`, ""))
	require.NoError(t, err)

	want := &ast.NonNullType{
		Loc: ast.Loc{Start: 0, End: 10},
		Type: &ast.ListType{
			Loc: ast.Loc{Start: 0, End: 9},
			Type: &ast.NonNullType{
				Loc: ast.Loc{Start: 1, End: 8},
				Type: &ast.NamedType{
					Loc:  ast.Loc{Start: 1, End: 7},
					Name: &ast.Name{Loc: ast.Loc{Start: 1, End: 7}, Value: "String"},
				},
			},
		},
	}
	if diff := cmp.Diff(want, typ); diff != "" {
		t.Errorf("type mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseType(source.New(`[String`, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Expected "]", found <EOF>.`)
}

func TestParseErrorLocation(t *testing.T) {
	err := parseErr(t, "{\n  hero(\n}")

	assert.Equal(t, `Expected Name, found "}".`, err.Message)
	assert.Equal(t, 10, err.Offset)
	assert.Equal(t, 3, err.Line)
	assert.Equal(t, 1, err.Column)
	assert.Equal(t, "2:   hero(\n3: }\n   ^", err.Snippet)
	assert.Equal(t, `Syntax Error GraphQL request (3:1) Expected Name, found "}".`, err.Headline())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"empty document", "", `Unexpected <EOF>.`},
		{"only comments", "# nothing here\n", `Unexpected <EOF>.`},
		{"unclosed selection set", "{", `Expected Name, found <EOF>.`},
		{"empty selection set", "{}", `Expected Name, found "}".`},
		{"unknown definition", "notAnOperation Foo { field }", `Unexpected Name "notAnOperation".`},
		{"on as fragment name", "fragment on on User { id }", `Unexpected Name "on".`},
		{"missing type condition", "fragment F x User { id }", `Expected "on", found Name "x".`},
		{"null argument", "{ a(x: null) }", `Unexpected Name "null".`},
		{"variable in default value", "query Q($v: Int = $w) { a }", `Unexpected "$".`},
		{"directive on variable definition", "query Q($v: Int @dir) { a }", `Expected "$", found "@".`},
		{"missing selection set", "query Q", `Expected "{", found <EOF>.`},
		{"spread without name", "{ ... }", `Expected "{", found "}".`},
		{"empty arguments", "{ a() }", `Expected Name, found ")".`},
		{"lexer error surfaces", "{ a(x: 01) }", `Invalid number, unexpected digit after 0: "1".`},
		{"bad operation keyword in schema", "schema { read: Query }", `Unexpected Name "read".`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.body)
			assert.Equal(t, tt.msg, err.Message)
		})
	}
}

func TestParseFirstTokenError(t *testing.T) {
	p := New(lexer.New(source.New("\"unterminated", "")))
	_, err := p.ParseDocument()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}

func TestParseNestingLimit(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		offset int // -1 when the document parses
	}{
		{"selection sets at limit", "{ a { b { c } } }", -1},
		{"selection sets over limit", "{ a { b { c { d } } } }", 12},
		{"list values at limit", "{ a(x: [[1]]) }", -1},
		{"list values over limit", "{ a(x: [[[1]]]) }", 9},
		{"object values at limit", "{ a(x: {b: {c: 1}}) }", -1},
		{"object values over limit", "{ a(x: {b: {c: {d: 1}}}) }", 15},
		{"list types at limit", "query ($v: [[[Int]]]) { a }", -1},
		{"list types over limit", "query ($v: [[[[Int]]]]) { a }", 15},
		{"siblings do not accumulate", "{ a { b { c } } d { e { f } } } { g { h { i } } }", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(source.New(tt.body, ""), WithMaxDepth(3))
			if tt.offset < 0 {
				require.NoError(t, err)
				return
			}
			var syntaxErr *gqlerror.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "got %v", err)
			assert.Equal(t, "Document nesting exceeds the limit of 3.", syntaxErr.Message)
			assert.Equal(t, tt.offset, syntaxErr.Offset)
		})
	}
}

func TestParseDeepInputFailsInsteadOfOverflowing(t *testing.T) {
	const n = 2_000_000
	tests := map[string]string{
		"list value":    "{ a(x: " + strings.Repeat("[", n) + strings.Repeat("]", n) + ") }",
		"object value":  "{ a(x: " + strings.Repeat("{a: ", n) + "1" + strings.Repeat("}", n) + ") }",
		"selection set": strings.Repeat("{ a ", n) + strings.Repeat("}", n),
		"list type":     "query ($v: " + strings.Repeat("[", n) + "Int" + strings.Repeat("]", n) + ") { a }",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			err := parseErr(t, body)
			assert.Equal(t, "Document nesting exceeds the limit of 500.", err.Message)
		})
	}

	_, err := ParseValue(source.New(strings.Repeat("[", n), ""))
	require.Error(t, err)
	_, err = ParseType(source.New(strings.Repeat("[", 10)+"Int"+strings.Repeat("]", 10), ""), WithMaxDepth(5))
	require.Error(t, err)
}
