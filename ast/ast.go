// Package ast defines the syntax tree produced by the parser.
//
// Nodes form a closed set. Every node reports its Kind and the byte span it
// covers in the normalized source. Trees are not modified after parsing;
// transformations build new nodes (see package visitor).
package ast

// Kind tags the concrete type of a node.
type Kind string

const (
	KindName                      Kind = "Name"
	KindDocument                  Kind = "Document"
	KindOperationDefinition       Kind = "OperationDefinition"
	KindVariableDefinition        Kind = "VariableDefinition"
	KindVariable                  Kind = "Variable"
	KindSelectionSet              Kind = "SelectionSet"
	KindField                     Kind = "Field"
	KindArgument                  Kind = "Argument"
	KindFragmentSpread            Kind = "FragmentSpread"
	KindInlineFragment            Kind = "InlineFragment"
	KindFragmentDefinition        Kind = "FragmentDefinition"
	KindIntValue                  Kind = "IntValue"
	KindFloatValue                Kind = "FloatValue"
	KindStringValue               Kind = "StringValue"
	KindBooleanValue              Kind = "BooleanValue"
	KindEnumValue                 Kind = "EnumValue"
	KindListValue                 Kind = "ListValue"
	KindObjectValue               Kind = "ObjectValue"
	KindObjectField               Kind = "ObjectField"
	KindDirective                 Kind = "Directive"
	KindNamedType                 Kind = "NamedType"
	KindListType                  Kind = "ListType"
	KindNonNullType               Kind = "NonNullType"
	KindSchemaDefinition          Kind = "SchemaDefinition"
	KindOperationTypeDefinition   Kind = "OperationTypeDefinition"
	KindScalarTypeDefinition      Kind = "ScalarTypeDefinition"
	KindObjectTypeDefinition      Kind = "ObjectTypeDefinition"
	KindFieldDefinition           Kind = "FieldDefinition"
	KindInputValueDefinition      Kind = "InputValueDefinition"
	KindInterfaceTypeDefinition   Kind = "InterfaceTypeDefinition"
	KindUnionTypeDefinition       Kind = "UnionTypeDefinition"
	KindEnumTypeDefinition        Kind = "EnumTypeDefinition"
	KindEnumValueDefinition       Kind = "EnumValueDefinition"
	KindInputObjectTypeDefinition Kind = "InputObjectTypeDefinition"
	KindTypeExtensionDefinition   Kind = "TypeExtensionDefinition"
	KindDirectiveDefinition       Kind = "DirectiveDefinition"
)

// Loc is the half-open byte span [Start, End) a node covers.
type Loc struct {
	Start int
	End   int
}

// Location returns the span itself so that embedding Loc satisfies Node.
func (l Loc) Location() Loc { return l }

// Contains reports whether other lies within l.
func (l Loc) Contains(other Loc) bool {
	return l.Start <= other.Start && other.End <= l.End
}

// Node is the base interface for all AST nodes.
type Node interface {
	Kind() Kind
	Location() Loc
}

// Name is an identifier together with its location.
type Name struct {
	Loc
	Value string
}

func (*Name) Kind() Kind { return KindName }

// String returns the identifier, or "" for a nil name.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	return n.Value
}

// Document represents a complete GraphQL document.
// It contains a list of definitions in source order.
type Document struct {
	Loc
	Definitions []Definition
}

func (*Document) Kind() Kind { return KindDocument }

// Operations returns the operation definitions in source order.
func (d *Document) Operations() []*OperationDefinition {
	var ops []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(*OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Operation returns the operation with the given name. An empty name selects
// the only operation of the document; it returns nil when that is ambiguous.
func (d *Document) Operation(name string) *OperationDefinition {
	ops := d.Operations()
	if name == "" {
		if len(ops) == 1 {
			return ops[0]
		}
		return nil
	}
	for _, op := range ops {
		if op.Name.String() == name {
			return op
		}
	}
	return nil
}

// Fragments returns the fragment definitions in source order.
func (d *Document) Fragments() []*FragmentDefinition {
	var frags []*FragmentDefinition
	for _, def := range d.Definitions {
		if frag, ok := def.(*FragmentDefinition); ok {
			frags = append(frags, frag)
		}
	}
	return frags
}

// Fragment returns the first fragment definition with the given name.
func (d *Document) Fragment(name string) *FragmentDefinition {
	for _, frag := range d.Fragments() {
		if frag.Name.String() == name {
			return frag
		}
	}
	return nil
}

// Definition is an interface for all top-level definitions in a GraphQL document.
type Definition interface {
	Node
	isDefinition()
}

// TypeSystemDefinition is implemented by the schema definition language nodes
// that may appear at the top level of a document.
type TypeSystemDefinition interface {
	Definition
	isTypeSystemDefinition()
}
