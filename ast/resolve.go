package ast

import "strconv"

// ValueOf converts v to a plain Go value. Variables are looked up in
// variables and resolve to nil when absent. Int literals become int64, or
// float64 when they overflow, Float literals float64, enums and strings
// string, lists []interface{} and objects map[string]interface{}.
func ValueOf(v Value, variables map[string]interface{}) interface{} {
	switch v := v.(type) {
	case *Variable:
		return variables[v.Name.String()]
	case *IntValue:
		if n, ok := v.Int64(); ok {
			return n
		}
		f, _ := strconv.ParseFloat(v.Value, 64)
		return f
	case *FloatValue:
		f, _ := strconv.ParseFloat(v.Value, 64)
		return f
	case *StringValue:
		return v.Value
	case *BooleanValue:
		return v.Value
	case *EnumValue:
		return v.Value
	case *ListValue:
		list := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			list = append(list, ValueOf(item, variables))
		}
		return list
	case *ObjectValue:
		obj := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			obj[field.Name.String()] = ValueOf(field.Value, variables)
		}
		return obj
	}
	return nil
}

// ArgumentValues resolves every argument of f against variables.
func (f *Field) ArgumentValues(variables map[string]interface{}) map[string]interface{} {
	args := make(map[string]interface{}, len(f.Arguments))
	for _, arg := range f.Arguments {
		args[arg.Name.String()] = ValueOf(arg.Value, variables)
	}
	return args
}
