package ast

// Operation is the type of an operation definition.
type Operation string

const (
	Query        Operation = "query"
	Mutation     Operation = "mutation"
	Subscription Operation = "subscription"
)

// OperationDefinition represents a GraphQL operation (query, mutation, or subscription).
type OperationDefinition struct {
	Loc
	Operation           Operation             // Defaults to Query for the shorthand form
	Name                *Name                 // Optional operation name
	VariableDefinitions []*VariableDefinition // Variable definitions for this operation
	Directives          []*Directive
	SelectionSet        *SelectionSet // The fields to select
}

func (*OperationDefinition) Kind() Kind { return KindOperationDefinition }
func (*OperationDefinition) isDefinition() {}

// VariableDefinition represents a variable definition in an operation.
type VariableDefinition struct {
	Loc
	Variable     *Variable
	Type         Type
	DefaultValue Value // nil when absent
}

func (*VariableDefinition) Kind() Kind { return KindVariableDefinition }

// SelectionSet represents a set of fields to select.
type SelectionSet struct {
	Loc
	Selections []Selection
}

func (*SelectionSet) Kind() Kind { return KindSelectionSet }

// Selection is an interface for all selections (fields and fragments).
type Selection interface {
	Node
	isSelection()
}

// Field represents a single field selection in a GraphQL query.
type Field struct {
	Loc
	Alias        *Name // nil when the field is not aliased
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet // Nested selections, nil for leaves
}

func (*Field) Kind() Kind { return KindField }
func (*Field) isSelection() {}

// ResponseKey returns the alias if present, else the field name.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.String()
}

// Argument returns the argument with the given name, or nil.
func (f *Field) Argument(name string) *Argument {
	for _, arg := range f.Arguments {
		if arg.Name.String() == name {
			return arg
		}
	}
	return nil
}

// ArgumentValue returns the value of the named argument, or nil.
func (f *Field) ArgumentValue(name string) Value {
	if arg := f.Argument(name); arg != nil {
		return arg.Value
	}
	return nil
}

// Argument represents an argument passed to a field or directive.
type Argument struct {
	Loc
	Name  *Name
	Value Value
}

func (*Argument) Kind() Kind { return KindArgument }

// FragmentSpread represents ...Name inside a selection set.
type FragmentSpread struct {
	Loc
	Name       *Name
	Directives []*Directive
}

func (*FragmentSpread) Kind() Kind { return KindFragmentSpread }
func (*FragmentSpread) isSelection() {}

// InlineFragment represents ... on Type { ... } inside a selection set.
type InlineFragment struct {
	Loc
	TypeCondition *NamedType // nil when omitted
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (*InlineFragment) Kind() Kind { return KindInlineFragment }
func (*InlineFragment) isSelection() {}

// FragmentDefinition represents fragment Name on Type { ... }.
type FragmentDefinition struct {
	Loc
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

func (*FragmentDefinition) Kind() Kind { return KindFragmentDefinition }
func (*FragmentDefinition) isDefinition() {}

// Directive represents @name(args) on a node.
type Directive struct {
	Loc
	Name      *Name
	Arguments []*Argument
}

func (*Directive) Kind() Kind { return KindDirective }

// Argument returns the directive argument with the given name, or nil.
func (d *Directive) Argument(name string) *Argument {
	for _, arg := range d.Arguments {
		if arg.Name.String() == name {
			return arg
		}
	}
	return nil
}
