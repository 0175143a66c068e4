package visitor

import (
	"github.com/pkg/errors"

	"github.com/Protocol-Lattice/gqlfront/ast"
)

// Walk visits doc depth-first and returns the resulting document.
// When no hook substitutes a node the returned document is doc itself.
func Walk(v Visitor, doc *ast.Document) (*ast.Document, error) {
	w := &walker{v: v}
	return w.document(doc)
}

// WalkNode visits the subtree rooted at n, which may be any node kind.
func WalkNode(v Visitor, n ast.Node) (ast.Node, error) {
	w := &walker{v: v}
	return w.node(n)
}

type walker struct {
	v Visitor
}

func unknown(n interface{}) error {
	return errors.Wrapf(ErrUnknownNode, "%T", n)
}

func (w *walker) node(n ast.Node) (ast.Node, error) {
	switch n := n.(type) {
	case *ast.Document:
		return w.document(n)
	case ast.Definition:
		return w.definition(n)
	case *ast.VariableDefinition:
		return w.variableDefinition(n)
	case *ast.SelectionSet:
		return w.selectionSet(n)
	case ast.Selection:
		return w.selection(n)
	case *ast.Argument:
		return w.argument(n)
	case *ast.Directive:
		return w.directive(n)
	case ast.Value:
		return w.value(n)
	case *ast.ObjectField:
		return w.objectField(n)
	case ast.Type:
		return w.typeRef(n)
	case *ast.Name:
		return w.name(n)
	}
	return nil, unknown(n)
}

func (w *walker) document(n *ast.Document) (*ast.Document, error) {
	if r := w.v.EnterDocument(n); r != nil {
		n = r
	}
	defs, changed, err := walkList(n.Definitions, w.definition)
	if err != nil {
		return nil, err
	}
	if changed {
		cp := *n
		cp.Definitions = defs
		n = &cp
	}
	w.v.LeaveDocument(n)
	return n, nil
}

func (w *walker) definition(d ast.Definition) (ast.Definition, error) {
	switch n := d.(type) {
	case *ast.OperationDefinition:
		return w.operationDefinition(n)
	case *ast.FragmentDefinition:
		return w.fragmentDefinition(n)
	case ast.TypeSystemDefinition:
		if r := w.v.EnterTypeSystemDefinition(n); r != nil {
			n = r
		}
		w.v.LeaveTypeSystemDefinition(n)
		return n, nil
	}
	return nil, unknown(d)
}

func (w *walker) operationDefinition(n *ast.OperationDefinition) (*ast.OperationDefinition, error) {
	if r := w.v.EnterOperationDefinition(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	vars, varsChanged, err := walkList(n.VariableDefinitions, w.variableDefinition)
	if err != nil {
		return nil, err
	}
	dirs, dirsChanged, err := walkList(n.Directives, w.directive)
	if err != nil {
		return nil, err
	}
	ss, err := walkOptional(n.SelectionSet, w.selectionSet)
	if err != nil {
		return nil, err
	}
	if name != n.Name || varsChanged || dirsChanged || ss != n.SelectionSet {
		cp := *n
		cp.Name, cp.VariableDefinitions, cp.Directives, cp.SelectionSet = name, vars, dirs, ss
		n = &cp
	}
	w.v.LeaveOperationDefinition(n)
	return n, nil
}

func (w *walker) variableDefinition(n *ast.VariableDefinition) (*ast.VariableDefinition, error) {
	if r := w.v.EnterVariableDefinition(n); r != nil {
		n = r
	}
	variable, err := walkOptional(n.Variable, w.variable)
	if err != nil {
		return nil, err
	}
	typ, err := walkOptional(n.Type, w.typeRef)
	if err != nil {
		return nil, err
	}
	def, err := walkOptional(n.DefaultValue, w.value)
	if err != nil {
		return nil, err
	}
	if variable != n.Variable || typ != n.Type || def != n.DefaultValue {
		cp := *n
		cp.Variable, cp.Type, cp.DefaultValue = variable, typ, def
		n = &cp
	}
	w.v.LeaveVariableDefinition(n)
	return n, nil
}

func (w *walker) variable(n *ast.Variable) (*ast.Variable, error) {
	if r := w.v.EnterVariable(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	if name != n.Name {
		cp := *n
		cp.Name = name
		n = &cp
	}
	w.v.LeaveVariable(n)
	return n, nil
}

func (w *walker) selectionSet(n *ast.SelectionSet) (*ast.SelectionSet, error) {
	if r := w.v.EnterSelectionSet(n); r != nil {
		n = r
	}
	sels, changed, err := walkList(n.Selections, w.selection)
	if err != nil {
		return nil, err
	}
	if changed {
		cp := *n
		cp.Selections = sels
		n = &cp
	}
	w.v.LeaveSelectionSet(n)
	return n, nil
}

func (w *walker) selection(s ast.Selection) (ast.Selection, error) {
	switch n := s.(type) {
	case *ast.Field:
		return w.field(n)
	case *ast.FragmentSpread:
		return w.fragmentSpread(n)
	case *ast.InlineFragment:
		return w.inlineFragment(n)
	}
	return nil, unknown(s)
}

func (w *walker) field(n *ast.Field) (*ast.Field, error) {
	if r := w.v.EnterField(n); r != nil {
		n = r
	}
	alias, err := walkOptional(n.Alias, w.name)
	if err != nil {
		return nil, err
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	args, argsChanged, err := walkList(n.Arguments, w.argument)
	if err != nil {
		return nil, err
	}
	dirs, dirsChanged, err := walkList(n.Directives, w.directive)
	if err != nil {
		return nil, err
	}
	ss, err := walkOptional(n.SelectionSet, w.selectionSet)
	if err != nil {
		return nil, err
	}
	if alias != n.Alias || name != n.Name || argsChanged || dirsChanged || ss != n.SelectionSet {
		cp := *n
		cp.Alias, cp.Name, cp.Arguments, cp.Directives, cp.SelectionSet = alias, name, args, dirs, ss
		n = &cp
	}
	w.v.LeaveField(n)
	return n, nil
}

func (w *walker) argument(n *ast.Argument) (*ast.Argument, error) {
	if r := w.v.EnterArgument(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	value, err := walkOptional(n.Value, w.value)
	if err != nil {
		return nil, err
	}
	if name != n.Name || value != n.Value {
		cp := *n
		cp.Name, cp.Value = name, value
		n = &cp
	}
	w.v.LeaveArgument(n)
	return n, nil
}

func (w *walker) directive(n *ast.Directive) (*ast.Directive, error) {
	if r := w.v.EnterDirective(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	args, changed, err := walkList(n.Arguments, w.argument)
	if err != nil {
		return nil, err
	}
	if name != n.Name || changed {
		cp := *n
		cp.Name, cp.Arguments = name, args
		n = &cp
	}
	w.v.LeaveDirective(n)
	return n, nil
}

func (w *walker) fragmentSpread(n *ast.FragmentSpread) (*ast.FragmentSpread, error) {
	if r := w.v.EnterFragmentSpread(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	dirs, changed, err := walkList(n.Directives, w.directive)
	if err != nil {
		return nil, err
	}
	if name != n.Name || changed {
		cp := *n
		cp.Name, cp.Directives = name, dirs
		n = &cp
	}
	w.v.LeaveFragmentSpread(n)
	return n, nil
}

func (w *walker) inlineFragment(n *ast.InlineFragment) (*ast.InlineFragment, error) {
	if r := w.v.EnterInlineFragment(n); r != nil {
		n = r
	}
	cond, err := walkOptional(n.TypeCondition, w.namedType)
	if err != nil {
		return nil, err
	}
	dirs, changed, err := walkList(n.Directives, w.directive)
	if err != nil {
		return nil, err
	}
	ss, err := walkOptional(n.SelectionSet, w.selectionSet)
	if err != nil {
		return nil, err
	}
	if cond != n.TypeCondition || changed || ss != n.SelectionSet {
		cp := *n
		cp.TypeCondition, cp.Directives, cp.SelectionSet = cond, dirs, ss
		n = &cp
	}
	w.v.LeaveInlineFragment(n)
	return n, nil
}

func (w *walker) fragmentDefinition(n *ast.FragmentDefinition) (*ast.FragmentDefinition, error) {
	if r := w.v.EnterFragmentDefinition(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	cond, err := walkOptional(n.TypeCondition, w.namedType)
	if err != nil {
		return nil, err
	}
	dirs, changed, err := walkList(n.Directives, w.directive)
	if err != nil {
		return nil, err
	}
	ss, err := walkOptional(n.SelectionSet, w.selectionSet)
	if err != nil {
		return nil, err
	}
	if name != n.Name || cond != n.TypeCondition || changed || ss != n.SelectionSet {
		cp := *n
		cp.Name, cp.TypeCondition, cp.Directives, cp.SelectionSet = name, cond, dirs, ss
		n = &cp
	}
	w.v.LeaveFragmentDefinition(n)
	return n, nil
}

func (w *walker) name(n *ast.Name) (*ast.Name, error) {
	if r := w.v.EnterName(n); r != nil {
		n = r
	}
	w.v.LeaveName(n)
	return n, nil
}

func (w *walker) typeRef(t ast.Type) (ast.Type, error) {
	switch n := t.(type) {
	case *ast.NamedType:
		return w.namedType(n)
	case *ast.ListType:
		if r := w.v.EnterListType(n); r != nil {
			n = r
		}
		inner, err := walkOptional(n.Type, w.typeRef)
		if err != nil {
			return nil, err
		}
		if inner != n.Type {
			cp := *n
			cp.Type = inner
			n = &cp
		}
		w.v.LeaveListType(n)
		return n, nil
	case *ast.NonNullType:
		if r := w.v.EnterNonNullType(n); r != nil {
			n = r
		}
		inner, err := walkOptional(n.Type, w.typeRef)
		if err != nil {
			return nil, err
		}
		if inner != n.Type {
			cp := *n
			cp.Type = inner
			n = &cp
		}
		w.v.LeaveNonNullType(n)
		return n, nil
	}
	return nil, unknown(t)
}

func (w *walker) namedType(n *ast.NamedType) (*ast.NamedType, error) {
	if r := w.v.EnterNamedType(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	if name != n.Name {
		cp := *n
		cp.Name = name
		n = &cp
	}
	w.v.LeaveNamedType(n)
	return n, nil
}

func (w *walker) value(v ast.Value) (ast.Value, error) {
	switch n := v.(type) {
	case *ast.Variable:
		return w.variable(n)
	case *ast.IntValue:
		if r := w.v.EnterIntValue(n); r != nil {
			n = r
		}
		w.v.LeaveIntValue(n)
		return n, nil
	case *ast.FloatValue:
		if r := w.v.EnterFloatValue(n); r != nil {
			n = r
		}
		w.v.LeaveFloatValue(n)
		return n, nil
	case *ast.StringValue:
		if r := w.v.EnterStringValue(n); r != nil {
			n = r
		}
		w.v.LeaveStringValue(n)
		return n, nil
	case *ast.BooleanValue:
		if r := w.v.EnterBooleanValue(n); r != nil {
			n = r
		}
		w.v.LeaveBooleanValue(n)
		return n, nil
	case *ast.EnumValue:
		if r := w.v.EnterEnumValue(n); r != nil {
			n = r
		}
		w.v.LeaveEnumValue(n)
		return n, nil
	case *ast.ListValue:
		if r := w.v.EnterListValue(n); r != nil {
			n = r
		}
		values, changed, err := walkList(n.Values, w.value)
		if err != nil {
			return nil, err
		}
		if changed {
			cp := *n
			cp.Values = values
			n = &cp
		}
		w.v.LeaveListValue(n)
		return n, nil
	case *ast.ObjectValue:
		if r := w.v.EnterObjectValue(n); r != nil {
			n = r
		}
		fields, changed, err := walkList(n.Fields, w.objectField)
		if err != nil {
			return nil, err
		}
		if changed {
			cp := *n
			cp.Fields = fields
			n = &cp
		}
		w.v.LeaveObjectValue(n)
		return n, nil
	}
	return nil, unknown(v)
}

func (w *walker) objectField(n *ast.ObjectField) (*ast.ObjectField, error) {
	if r := w.v.EnterObjectField(n); r != nil {
		n = r
	}
	name, err := walkOptional(n.Name, w.name)
	if err != nil {
		return nil, err
	}
	value, err := walkOptional(n.Value, w.value)
	if err != nil {
		return nil, err
	}
	if name != n.Name || value != n.Value {
		cp := *n
		cp.Name, cp.Value = name, value
		n = &cp
	}
	w.v.LeaveObjectField(n)
	return n, nil
}

// walkOptional walks n unless it is nil.
func walkOptional[T comparable](n T, walk func(T) (T, error)) (T, error) {
	var zero T
	if n == zero {
		return n, nil
	}
	return walk(n)
}

// walkList walks every item and reports whether any was replaced.
// The input slice is copied before the first replacement is stored.
func walkList[T comparable](items []T, walk func(T) (T, error)) ([]T, bool, error) {
	out := items
	changed := false
	for i, item := range items {
		r, err := walk(item)
		if err != nil {
			return nil, false, err
		}
		if r == item {
			continue
		}
		if !changed {
			out = make([]T, len(items))
			copy(out, items)
			changed = true
		}
		out[i] = r
	}
	return out, changed, nil
}
