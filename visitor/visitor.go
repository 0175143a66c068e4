// Package visitor walks an AST in source order, calling Enter and Leave hooks
// for every node. Enter hooks may return a replacement node; the walk then
// continues into the replacement and rebuilds the ancestors as shallow copies,
// so the input tree is never modified.
package visitor

import (
	"github.com/pkg/errors"

	"github.com/Protocol-Lattice/gqlfront/ast"
)

// ErrUnknownNode is returned when the walk meets a node type it cannot dispatch.
var ErrUnknownNode = errors.New("unknown AST node")

// Visitor receives one Enter and one Leave call per node.
// Enter returns the node to continue with; nil keeps the original.
// Leave receives the node as it appears in the resulting tree.
// Type system definitions are reported as a whole and not descended into.
type Visitor interface {
	EnterDocument(*ast.Document) *ast.Document
	LeaveDocument(*ast.Document)
	EnterOperationDefinition(*ast.OperationDefinition) *ast.OperationDefinition
	LeaveOperationDefinition(*ast.OperationDefinition)
	EnterVariableDefinition(*ast.VariableDefinition) *ast.VariableDefinition
	LeaveVariableDefinition(*ast.VariableDefinition)
	EnterVariable(*ast.Variable) *ast.Variable
	LeaveVariable(*ast.Variable)
	EnterSelectionSet(*ast.SelectionSet) *ast.SelectionSet
	LeaveSelectionSet(*ast.SelectionSet)
	EnterField(*ast.Field) *ast.Field
	LeaveField(*ast.Field)
	EnterArgument(*ast.Argument) *ast.Argument
	LeaveArgument(*ast.Argument)
	EnterDirective(*ast.Directive) *ast.Directive
	LeaveDirective(*ast.Directive)
	EnterFragmentSpread(*ast.FragmentSpread) *ast.FragmentSpread
	LeaveFragmentSpread(*ast.FragmentSpread)
	EnterInlineFragment(*ast.InlineFragment) *ast.InlineFragment
	LeaveInlineFragment(*ast.InlineFragment)
	EnterFragmentDefinition(*ast.FragmentDefinition) *ast.FragmentDefinition
	LeaveFragmentDefinition(*ast.FragmentDefinition)
	EnterName(*ast.Name) *ast.Name
	LeaveName(*ast.Name)
	EnterNamedType(*ast.NamedType) *ast.NamedType
	LeaveNamedType(*ast.NamedType)
	EnterListType(*ast.ListType) *ast.ListType
	LeaveListType(*ast.ListType)
	EnterNonNullType(*ast.NonNullType) *ast.NonNullType
	LeaveNonNullType(*ast.NonNullType)
	EnterIntValue(*ast.IntValue) *ast.IntValue
	LeaveIntValue(*ast.IntValue)
	EnterFloatValue(*ast.FloatValue) *ast.FloatValue
	LeaveFloatValue(*ast.FloatValue)
	EnterStringValue(*ast.StringValue) *ast.StringValue
	LeaveStringValue(*ast.StringValue)
	EnterBooleanValue(*ast.BooleanValue) *ast.BooleanValue
	LeaveBooleanValue(*ast.BooleanValue)
	EnterEnumValue(*ast.EnumValue) *ast.EnumValue
	LeaveEnumValue(*ast.EnumValue)
	EnterListValue(*ast.ListValue) *ast.ListValue
	LeaveListValue(*ast.ListValue)
	EnterObjectValue(*ast.ObjectValue) *ast.ObjectValue
	LeaveObjectValue(*ast.ObjectValue)
	EnterObjectField(*ast.ObjectField) *ast.ObjectField
	LeaveObjectField(*ast.ObjectField)
	EnterTypeSystemDefinition(ast.TypeSystemDefinition) ast.TypeSystemDefinition
	LeaveTypeSystemDefinition(ast.TypeSystemDefinition)
}

// Base implements Visitor with hooks that do nothing.
// Embed it and override only the hooks you need.
type Base struct{}

var _ Visitor = Base{}

func (Base) EnterDocument(*ast.Document) *ast.Document { return nil }
func (Base) LeaveDocument(*ast.Document)               {}
func (Base) EnterOperationDefinition(*ast.OperationDefinition) *ast.OperationDefinition {
	return nil
}
func (Base) LeaveOperationDefinition(*ast.OperationDefinition) {}
func (Base) EnterVariableDefinition(*ast.VariableDefinition) *ast.VariableDefinition {
	return nil
}
func (Base) LeaveVariableDefinition(*ast.VariableDefinition)       {}
func (Base) EnterVariable(*ast.Variable) *ast.Variable             { return nil }
func (Base) LeaveVariable(*ast.Variable)                           {}
func (Base) EnterSelectionSet(*ast.SelectionSet) *ast.SelectionSet { return nil }
func (Base) LeaveSelectionSet(*ast.SelectionSet)                   {}
func (Base) EnterField(*ast.Field) *ast.Field                      { return nil }
func (Base) LeaveField(*ast.Field)                                 {}
func (Base) EnterArgument(*ast.Argument) *ast.Argument             { return nil }
func (Base) LeaveArgument(*ast.Argument)                           {}
func (Base) EnterDirective(*ast.Directive) *ast.Directive          { return nil }
func (Base) LeaveDirective(*ast.Directive)                         {}
func (Base) EnterFragmentSpread(*ast.FragmentSpread) *ast.FragmentSpread {
	return nil
}
func (Base) LeaveFragmentSpread(*ast.FragmentSpread)                     {}
func (Base) EnterInlineFragment(*ast.InlineFragment) *ast.InlineFragment { return nil }
func (Base) LeaveInlineFragment(*ast.InlineFragment)                     {}
func (Base) EnterFragmentDefinition(*ast.FragmentDefinition) *ast.FragmentDefinition {
	return nil
}
func (Base) LeaveFragmentDefinition(*ast.FragmentDefinition)    {}
func (Base) EnterName(*ast.Name) *ast.Name                      { return nil }
func (Base) LeaveName(*ast.Name)                                {}
func (Base) EnterNamedType(*ast.NamedType) *ast.NamedType       { return nil }
func (Base) LeaveNamedType(*ast.NamedType)                      {}
func (Base) EnterListType(*ast.ListType) *ast.ListType          { return nil }
func (Base) LeaveListType(*ast.ListType)                        {}
func (Base) EnterNonNullType(*ast.NonNullType) *ast.NonNullType { return nil }
func (Base) LeaveNonNullType(*ast.NonNullType)                  {}
func (Base) EnterIntValue(*ast.IntValue) *ast.IntValue          { return nil }
func (Base) LeaveIntValue(*ast.IntValue)                        {}
func (Base) EnterFloatValue(*ast.FloatValue) *ast.FloatValue    { return nil }
func (Base) LeaveFloatValue(*ast.FloatValue)                    {}
func (Base) EnterStringValue(*ast.StringValue) *ast.StringValue { return nil }
func (Base) LeaveStringValue(*ast.StringValue)                  {}
func (Base) EnterBooleanValue(*ast.BooleanValue) *ast.BooleanValue {
	return nil
}
func (Base) LeaveBooleanValue(*ast.BooleanValue)                {}
func (Base) EnterEnumValue(*ast.EnumValue) *ast.EnumValue       { return nil }
func (Base) LeaveEnumValue(*ast.EnumValue)                      {}
func (Base) EnterListValue(*ast.ListValue) *ast.ListValue       { return nil }
func (Base) LeaveListValue(*ast.ListValue)                      {}
func (Base) EnterObjectValue(*ast.ObjectValue) *ast.ObjectValue { return nil }
func (Base) LeaveObjectValue(*ast.ObjectValue)                  {}
func (Base) EnterObjectField(*ast.ObjectField) *ast.ObjectField { return nil }
func (Base) LeaveObjectField(*ast.ObjectField)                  {}
func (Base) EnterTypeSystemDefinition(ast.TypeSystemDefinition) ast.TypeSystemDefinition {
	return nil
}
func (Base) LeaveTypeSystemDefinition(ast.TypeSystemDefinition) {}
