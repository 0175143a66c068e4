package ast

// Type represents a GraphQL type reference (e.g., String, [Int!], User!).
type Type interface {
	Node
	isType()
}

// NamedType is a reference to a type by name.
type NamedType struct {
	Loc
	Name *Name
}

func (*NamedType) Kind() Kind { return KindNamedType }
func (*NamedType) isType()    {}

// ListType wraps an element type in [].
type ListType struct {
	Loc
	Type Type
}

func (*ListType) Kind() Kind { return KindListType }
func (*ListType) isType()    {}

// NonNullType marks the wrapped type with a trailing !.
type NonNullType struct {
	Loc
	Type Type // NamedType or ListType
}

func (*NonNullType) Kind() Kind { return KindNonNullType }
func (*NonNullType) isType()    {}

// NamedTypeOf strips list and non-null wrappers from t.
func NamedTypeOf(t Type) *NamedType {
	for {
		switch v := t.(type) {
		case *NamedType:
			return v
		case *ListType:
			t = v.Type
		case *NonNullType:
			t = v.Type
		default:
			return nil
		}
	}
}
