package complexity

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/Protocol-Lattice/gqlfront/ast"
)

// ImpactDirective is the SDL directive that sets a field's impact:
//
//	friends: [User!]! @complexity(impact: 10)
const ImpactDirective = "complexity"

// FieldInfo describes a field of a schema type.
type FieldInfo struct {
	TypeName string // Named return type with list and non-null wrappers removed
	// Impact returns the expected row count for a selection of the field.
	// It may be nil, or report false to fall back to the average impact.
	Impact func(*ast.Field) (float64, bool)
}

// TypeInfo resolves field return types while an operation is analyzed.
type TypeInfo interface {
	// RootTypeName returns the type that operations of kind op start from.
	RootTypeName(op ast.Operation) string
	// Field returns the field name of parentType.
	Field(parentType, name string) (FieldInfo, bool)
}

// SchemaTypeInfo is a TypeInfo built from SDL definitions.
type SchemaTypeInfo struct {
	roots  map[ast.Operation]string
	fields map[string]map[string]FieldInfo
}

var _ TypeInfo = (*SchemaTypeInfo)(nil)

// NewSchemaTypeInfo collects the object types, interfaces, type extensions and
// the schema definition of doc. Without a schema definition the root types are
// Query, Mutation and Subscription.
func NewSchemaTypeInfo(doc *ast.Document) (*SchemaTypeInfo, error) {
	ti := &SchemaTypeInfo{
		roots: map[ast.Operation]string{
			ast.Query:        "Query",
			ast.Mutation:     "Mutation",
			ast.Subscription: "Subscription",
		},
		fields: make(map[string]map[string]FieldInfo),
	}
	for _, def := range doc.Definitions {
		var err error
		switch d := def.(type) {
		case *ast.SchemaDefinition:
			for _, opType := range d.OperationTypes {
				ti.roots[opType.Operation] = opType.Type.Name.Value
			}
		case *ast.ObjectTypeDefinition:
			err = ti.addFields(d.Name.Value, d.Fields)
		case *ast.InterfaceTypeDefinition:
			err = ti.addFields(d.Name.Value, d.Fields)
		case *ast.TypeExtensionDefinition:
			err = ti.addFields(d.Definition.Name.Value, d.Definition.Fields)
		}
		if err != nil {
			return nil, err
		}
	}
	return ti, nil
}

func (ti *SchemaTypeInfo) addFields(typeName string, defs []*ast.FieldDefinition) error {
	fields, ok := ti.fields[typeName]
	if !ok {
		fields = make(map[string]FieldInfo, len(defs))
		ti.fields[typeName] = fields
	}
	for _, def := range defs {
		info := FieldInfo{TypeName: ast.NamedTypeOf(def.Type).Name.Value}
		if d := def.Directive(ImpactDirective); d != nil {
			impact, err := directiveImpact(d)
			if err != nil {
				return errors.Wrapf(err, "field %s.%s", typeName, def.Name.Value)
			}
			info.Impact = func(*ast.Field) (float64, bool) { return impact, true }
		}
		fields[def.Name.Value] = info
	}
	return nil
}

func directiveImpact(d *ast.Directive) (float64, error) {
	arg := d.Argument("impact")
	if arg == nil {
		return 0, errors.Errorf("@%s requires an impact argument", ImpactDirective)
	}
	var literal string
	switch v := arg.Value.(type) {
	case *ast.IntValue:
		literal = v.Value
	case *ast.FloatValue:
		literal = v.Value
	default:
		return 0, errors.Errorf("@%s impact must be a number", ImpactDirective)
	}
	impact, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "@%s impact", ImpactDirective)
	}
	return impact, nil
}

// RootTypeName implements TypeInfo.
func (ti *SchemaTypeInfo) RootTypeName(op ast.Operation) string {
	return ti.roots[op]
}

// Field implements TypeInfo.
func (ti *SchemaTypeInfo) Field(parentType, name string) (FieldInfo, bool) {
	info, ok := ti.fields[parentType][name]
	return info, ok
}
