package ast

import "strconv"

// Value is implemented by every literal and by Variable.
type Value interface {
	Node
	isValue()
}

// Variable represents a $name reference.
type Variable struct {
	Loc
	Name *Name
}

func (*Variable) Kind() Kind { return KindVariable }
func (*Variable) isValue()   {}

// IntValue keeps the literal text as written in the source.
type IntValue struct {
	Loc
	Value string
}

func (*IntValue) Kind() Kind { return KindIntValue }
func (*IntValue) isValue()   {}

// Int64 parses the literal. Literals above the int64 range report false.
func (v *IntValue) Int64() (int64, bool) {
	n, err := strconv.ParseInt(v.Value, 10, 64)
	return n, err == nil
}

// FloatValue keeps the literal text as written in the source.
type FloatValue struct {
	Loc
	Value string
}

func (*FloatValue) Kind() Kind { return KindFloatValue }
func (*FloatValue) isValue()   {}

// StringValue holds the decoded string.
type StringValue struct {
	Loc
	Value string
}

func (*StringValue) Kind() Kind { return KindStringValue }
func (*StringValue) isValue()   {}

// BooleanValue represents true or false.
type BooleanValue struct {
	Loc
	Value bool
}

func (*BooleanValue) Kind() Kind { return KindBooleanValue }
func (*BooleanValue) isValue()   {}

// EnumValue represents a bare name used as a value.
type EnumValue struct {
	Loc
	Value string
}

func (*EnumValue) Kind() Kind { return KindEnumValue }
func (*EnumValue) isValue()   {}

// ListValue represents [v1, v2, ...].
type ListValue struct {
	Loc
	Values []Value
}

func (*ListValue) Kind() Kind { return KindListValue }
func (*ListValue) isValue()   {}

// ObjectValue represents { name: value, ... }. Fields keep source order.
type ObjectValue struct {
	Loc
	Fields []*ObjectField
}

func (*ObjectValue) Kind() Kind { return KindObjectValue }
func (*ObjectValue) isValue()   {}

// ObjectField is one name: value pair of an ObjectValue.
type ObjectField struct {
	Loc
	Name  *Name
	Value Value
}

func (*ObjectField) Kind() Kind { return KindObjectField }
