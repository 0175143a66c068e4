package visitor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/parser"
	"github.com/Protocol-Lattice/gqlfront/source"
)

func mustParse(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(source.New(body, ""))
	require.NoError(t, err)
	return doc
}

type nameRecorder struct {
	Base
	names []string
}

func (r *nameRecorder) EnterName(n *ast.Name) *ast.Name {
	r.names = append(r.names, n.Value)
	return nil
}

func TestWalkVisitsChildrenInSourceOrder(t *testing.T) {
	doc := mustParse(t, `query Q($v: Int) { f(x: $v) @d { ...F } } fragment F on T { g }`)
	r := &nameRecorder{}
	_, err := Walk(r, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q", "v", "Int", "f", "x", "v", "d", "F", "F", "T", "g"}, r.names)
}

type fieldTracer struct {
	Base
	events []string
}

func (tr *fieldTracer) EnterField(f *ast.Field) *ast.Field {
	tr.events = append(tr.events, "enter "+f.Name.Value)
	return nil
}

func (tr *fieldTracer) LeaveField(f *ast.Field) {
	tr.events = append(tr.events, "leave "+f.Name.Value)
}

func TestWalkEnterAndLeaveNest(t *testing.T) {
	doc := mustParse(t, `{ a { b } c }`)
	tr := &fieldTracer{}
	_, err := Walk(tr, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"enter a", "enter b", "leave b", "leave a", "enter c", "leave c"}, tr.events)
}

func TestWalkWithoutChangesReturnsInput(t *testing.T) {
	doc := mustParse(t, `query Q($v: [Int!] = [1]) { a(x: {y: $v}) { ... on T { b } } }`)
	out, err := Walk(Base{}, doc)
	require.NoError(t, err)
	assert.Same(t, doc, out)
}

type renamer struct {
	Base
	from, to string
	left     []string
}

func (r *renamer) EnterField(f *ast.Field) *ast.Field {
	if f.Name.Value != r.from {
		return nil
	}
	cp := *f
	cp.Name = &ast.Name{Loc: f.Name.Loc, Value: r.to}
	return &cp
}

func (r *renamer) LeaveField(f *ast.Field) {
	r.left = append(r.left, f.Name.Value)
}

func TestWalkSubstitutesWithoutMutatingInput(t *testing.T) {
	doc := mustParse(t, `{ user { secret name } other }`)
	r := &renamer{from: "secret", to: "redacted"}

	out, err := Walk(r, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"redacted", "name", "user", "other"}, r.left)

	origOp := doc.Definitions[0].(*ast.OperationDefinition)
	origUser := origOp.SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "secret", origUser.SelectionSet.Selections[0].(*ast.Field).Name.Value)

	require.NotSame(t, doc, out)
	op := out.Definitions[0].(*ast.OperationDefinition)
	assert.NotSame(t, origOp, op)
	user := op.SelectionSet.Selections[0].(*ast.Field)
	assert.NotSame(t, origUser, user)
	assert.Equal(t, "redacted", user.SelectionSet.Selections[0].(*ast.Field).Name.Value)

	// Untouched subtrees are shared.
	assert.Same(t, origUser.SelectionSet.Selections[1], user.SelectionSet.Selections[1])
	assert.Same(t, origOp.SelectionSet.Selections[1], op.SelectionSet.Selections[1])
}

type intDoubler struct{ Base }

func (intDoubler) EnterIntValue(v *ast.IntValue) *ast.IntValue {
	n, _ := v.Int64()
	return &ast.IntValue{Loc: v.Loc, Value: fmt.Sprint(n * 2)}
}

func TestWalkSubstitutesValues(t *testing.T) {
	doc := mustParse(t, `{ a(list: [1, 2], obj: {n: 3}) }`)
	out, err := Walk(intDoubler{}, doc)
	require.NoError(t, err)

	field := out.Operations()[0].SelectionSet.Selections[0].(*ast.Field)
	list := field.ArgumentValue("list").(*ast.ListValue)
	assert.Equal(t, "2", list.Values[0].(*ast.IntValue).Value)
	assert.Equal(t, "4", list.Values[1].(*ast.IntValue).Value)
	obj := field.ArgumentValue("obj").(*ast.ObjectValue)
	assert.Equal(t, "6", obj.Fields[0].Value.(*ast.IntValue).Value)

	orig := doc.Operations()[0].SelectionSet.Selections[0].(*ast.Field)
	assert.Equal(t, "1", orig.ArgumentValue("list").(*ast.ListValue).Values[0].(*ast.IntValue).Value)
}

type typeSystemCounter struct {
	Base
	kinds []ast.Kind
}

func (c *typeSystemCounter) EnterTypeSystemDefinition(d ast.TypeSystemDefinition) ast.TypeSystemDefinition {
	c.kinds = append(c.kinds, d.Kind())
	return nil
}

func (c *typeSystemCounter) EnterName(n *ast.Name) *ast.Name {
	c.kinds = append(c.kinds, n.Kind())
	return nil
}

func TestWalkReportsTypeSystemDefinitionsWhole(t *testing.T) {
	doc := mustParse(t, `type Query { a: Int } { a } enum E { X }`)
	c := &typeSystemCounter{}
	_, err := Walk(c, doc)
	require.NoError(t, err)
	assert.Equal(t, []ast.Kind{ast.KindObjectTypeDefinition, ast.KindName, ast.KindEnumTypeDefinition}, c.kinds)
}

type alienNode struct{}

func (alienNode) Kind() ast.Kind     { return "Alien" }
func (alienNode) Location() ast.Loc { return ast.Loc{} }

func TestWalkUnknownNode(t *testing.T) {
	_, err := WalkNode(Base{}, alienNode{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNode))
	assert.Contains(t, err.Error(), "visitor.alienNode")

	doc := &ast.Document{Definitions: []ast.Definition{
		&ast.OperationDefinition{
			Operation:    ast.Query,
			SelectionSet: &ast.SelectionSet{Selections: []ast.Selection{nil}},
		},
	}}
	_, err = Walk(Base{}, doc)
	assert.True(t, errors.Is(err, ErrUnknownNode))
}

func TestWalkNodeOnSubtree(t *testing.T) {
	v, err := parser.ParseValue(source.New(`{a: [1, 2]}`, ""))
	require.NoError(t, err)
	out, err := WalkNode(intDoubler{}, v)
	require.NoError(t, err)
	list := out.(*ast.ObjectValue).Fields[0].Value.(*ast.ListValue)
	assert.Equal(t, "4", list.Values[1].(*ast.IntValue).Value)
}

// spanChecker asserts that every node lies inside its parent's span.
type spanChecker struct {
	Base
	t     *testing.T
	stack []ast.Node
}

func (c *spanChecker) push(n ast.Node) {
	if len(c.stack) > 0 {
		parent := c.stack[len(c.stack)-1]
		assert.True(c.t, parent.Location().Contains(n.Location()),
			"%s %v not inside %s %v", n.Kind(), n.Location(), parent.Kind(), parent.Location())
	}
	assert.GreaterOrEqual(c.t, n.Location().End, n.Location().Start)
	c.stack = append(c.stack, n)
}

func (c *spanChecker) pop() { c.stack = c.stack[:len(c.stack)-1] }

func (c *spanChecker) EnterDocument(n *ast.Document) *ast.Document { c.push(n); return nil }
func (c *spanChecker) LeaveDocument(*ast.Document)                 { c.pop() }
func (c *spanChecker) EnterOperationDefinition(n *ast.OperationDefinition) *ast.OperationDefinition {
	c.push(n)
	return nil
}
func (c *spanChecker) LeaveOperationDefinition(*ast.OperationDefinition) { c.pop() }
func (c *spanChecker) EnterVariableDefinition(n *ast.VariableDefinition) *ast.VariableDefinition {
	c.push(n)
	return nil
}
func (c *spanChecker) LeaveVariableDefinition(*ast.VariableDefinition)       { c.pop() }
func (c *spanChecker) EnterVariable(n *ast.Variable) *ast.Variable           { c.push(n); return nil }
func (c *spanChecker) LeaveVariable(*ast.Variable)                           { c.pop() }
func (c *spanChecker) EnterSelectionSet(n *ast.SelectionSet) *ast.SelectionSet { c.push(n); return nil }
func (c *spanChecker) LeaveSelectionSet(*ast.SelectionSet)                   { c.pop() }
func (c *spanChecker) EnterField(n *ast.Field) *ast.Field                    { c.push(n); return nil }
func (c *spanChecker) LeaveField(*ast.Field)                                 { c.pop() }
func (c *spanChecker) EnterArgument(n *ast.Argument) *ast.Argument           { c.push(n); return nil }
func (c *spanChecker) LeaveArgument(*ast.Argument)                           { c.pop() }
func (c *spanChecker) EnterDirective(n *ast.Directive) *ast.Directive        { c.push(n); return nil }
func (c *spanChecker) LeaveDirective(*ast.Directive)                         { c.pop() }
func (c *spanChecker) EnterFragmentSpread(n *ast.FragmentSpread) *ast.FragmentSpread {
	c.push(n)
	return nil
}
func (c *spanChecker) LeaveFragmentSpread(*ast.FragmentSpread) { c.pop() }
func (c *spanChecker) EnterInlineFragment(n *ast.InlineFragment) *ast.InlineFragment {
	c.push(n)
	return nil
}
func (c *spanChecker) LeaveInlineFragment(*ast.InlineFragment) { c.pop() }
func (c *spanChecker) EnterFragmentDefinition(n *ast.FragmentDefinition) *ast.FragmentDefinition {
	c.push(n)
	return nil
}
func (c *spanChecker) LeaveFragmentDefinition(*ast.FragmentDefinition)   { c.pop() }
func (c *spanChecker) EnterName(n *ast.Name) *ast.Name                   { c.push(n); return nil }
func (c *spanChecker) LeaveName(*ast.Name)                               { c.pop() }
func (c *spanChecker) EnterNamedType(n *ast.NamedType) *ast.NamedType    { c.push(n); return nil }
func (c *spanChecker) LeaveNamedType(*ast.NamedType)                     { c.pop() }
func (c *spanChecker) EnterListType(n *ast.ListType) *ast.ListType       { c.push(n); return nil }
func (c *spanChecker) LeaveListType(*ast.ListType)                       { c.pop() }
func (c *spanChecker) EnterNonNullType(n *ast.NonNullType) *ast.NonNullType { c.push(n); return nil }
func (c *spanChecker) LeaveNonNullType(*ast.NonNullType)                 { c.pop() }
func (c *spanChecker) EnterListValue(n *ast.ListValue) *ast.ListValue    { c.push(n); return nil }
func (c *spanChecker) LeaveListValue(*ast.ListValue)                     { c.pop() }
func (c *spanChecker) EnterObjectValue(n *ast.ObjectValue) *ast.ObjectValue { c.push(n); return nil }
func (c *spanChecker) LeaveObjectValue(*ast.ObjectValue)                 { c.pop() }
func (c *spanChecker) EnterObjectField(n *ast.ObjectField) *ast.ObjectField { c.push(n); return nil }
func (c *spanChecker) LeaveObjectField(*ast.ObjectField)                 { c.pop() }
func (c *spanChecker) EnterIntValue(n *ast.IntValue) *ast.IntValue       { c.push(n); return nil }
func (c *spanChecker) LeaveIntValue(*ast.IntValue)                       { c.pop() }
func (c *spanChecker) EnterStringValue(n *ast.StringValue) *ast.StringValue { c.push(n); return nil }
func (c *spanChecker) LeaveStringValue(*ast.StringValue)                 { c.pop() }

func TestParsedSpansNest(t *testing.T) {
	doc := mustParse(t, `
query Q($a: [Int!]! = [1], $b: In = {x: 1}) @d(k: $a) {
  alias: f(x: [1, 2], y: {z: "s"}) @skip(if: false) {
    ... on T { g }
    ...F
  }
}
fragment F on T @dir { h(n: 10) }
`)
	c := &spanChecker{t: t}
	_, err := Walk(c, doc)
	require.NoError(t, err)
	assert.Empty(t, c.stack)
}
