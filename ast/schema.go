package ast

// SchemaDefinition represents schema @dirs { query: Query ... }.
type SchemaDefinition struct {
	Loc
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
}

func (*SchemaDefinition) Kind() Kind              { return KindSchemaDefinition }
func (*SchemaDefinition) isDefinition()           {}
func (*SchemaDefinition) isTypeSystemDefinition() {}

// OperationTypeDefinition binds an operation to its root type inside schema { }.
type OperationTypeDefinition struct {
	Loc
	Operation Operation
	Type      *NamedType
}

func (*OperationTypeDefinition) Kind() Kind { return KindOperationTypeDefinition }

// ScalarTypeDefinition represents scalar Name @dirs.
type ScalarTypeDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
}

func (*ScalarTypeDefinition) Kind() Kind              { return KindScalarTypeDefinition }
func (*ScalarTypeDefinition) isDefinition()           {}
func (*ScalarTypeDefinition) isTypeSystemDefinition() {}

// ObjectTypeDefinition represents type Name implements A B @dirs { fields }.
type ObjectTypeDefinition struct {
	Loc
	Name       *Name
	Interfaces []*NamedType
	Directives []*Directive
	Fields     []*FieldDefinition
}

func (*ObjectTypeDefinition) Kind() Kind              { return KindObjectTypeDefinition }
func (*ObjectTypeDefinition) isDefinition()           {}
func (*ObjectTypeDefinition) isTypeSystemDefinition() {}

// FieldDefinition is a field of an object or interface type.
type FieldDefinition struct {
	Loc
	Name       *Name
	Arguments  []*InputValueDefinition
	Type       Type
	Directives []*Directive
}

func (*FieldDefinition) Kind() Kind { return KindFieldDefinition }

// Directive returns the first directive with the given name, or nil.
func (f *FieldDefinition) Directive(name string) *Directive {
	for _, d := range f.Directives {
		if d.Name.String() == name {
			return d
		}
	}
	return nil
}

// InputValueDefinition is an argument definition or an input object field.
type InputValueDefinition struct {
	Loc
	Name         *Name
	Type         Type
	DefaultValue Value // nil when absent
	Directives   []*Directive
}

func (*InputValueDefinition) Kind() Kind { return KindInputValueDefinition }

// InterfaceTypeDefinition represents interface Name @dirs { fields }.
type InterfaceTypeDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
	Fields     []*FieldDefinition
}

func (*InterfaceTypeDefinition) Kind() Kind              { return KindInterfaceTypeDefinition }
func (*InterfaceTypeDefinition) isDefinition()           {}
func (*InterfaceTypeDefinition) isTypeSystemDefinition() {}

// UnionTypeDefinition represents union Name @dirs = A | B.
type UnionTypeDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
	Types      []*NamedType
}

func (*UnionTypeDefinition) Kind() Kind              { return KindUnionTypeDefinition }
func (*UnionTypeDefinition) isDefinition()           {}
func (*UnionTypeDefinition) isTypeSystemDefinition() {}

// EnumTypeDefinition represents enum Name @dirs { VALUES }.
type EnumTypeDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
	Values     []*EnumValueDefinition
}

func (*EnumTypeDefinition) Kind() Kind              { return KindEnumTypeDefinition }
func (*EnumTypeDefinition) isDefinition()           {}
func (*EnumTypeDefinition) isTypeSystemDefinition() {}

// EnumValueDefinition is one value of an enum type.
type EnumValueDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
}

func (*EnumValueDefinition) Kind() Kind { return KindEnumValueDefinition }

// InputObjectTypeDefinition represents input Name @dirs { fields }.
type InputObjectTypeDefinition struct {
	Loc
	Name       *Name
	Directives []*Directive
	Fields     []*InputValueDefinition
}

func (*InputObjectTypeDefinition) Kind() Kind              { return KindInputObjectTypeDefinition }
func (*InputObjectTypeDefinition) isDefinition()           {}
func (*InputObjectTypeDefinition) isTypeSystemDefinition() {}

// TypeExtensionDefinition represents extend type Name { ... }.
type TypeExtensionDefinition struct {
	Loc
	Definition *ObjectTypeDefinition
}

func (*TypeExtensionDefinition) Kind() Kind              { return KindTypeExtensionDefinition }
func (*TypeExtensionDefinition) isDefinition()           {}
func (*TypeExtensionDefinition) isTypeSystemDefinition() {}

// DirectiveDefinition represents directive @name(args) on LOCATION | ...
type DirectiveDefinition struct {
	Loc
	Name      *Name
	Arguments []*InputValueDefinition
	Locations []*Name
}

func (*DirectiveDefinition) Kind() Kind              { return KindDirectiveDefinition }
func (*DirectiveDefinition) isDefinition()           {}
func (*DirectiveDefinition) isTypeSystemDefinition() {}
