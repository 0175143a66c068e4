// Package printer renders AST nodes back to GraphQL source text.
//
// Output is canonical: two-space indentation, one selection per line, and
// comma separated arguments. Parsing the output yields a tree with the same
// shape as the input.
package printer

import (
	"fmt"
	"strings"

	"github.com/Protocol-Lattice/gqlfront/ast"
)

// Print returns the GraphQL text for n. Unknown node types print as "".
func Print(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Document:
		defs := make([]string, len(n.Definitions))
		for i, def := range n.Definitions {
			defs[i] = Print(def)
		}
		return strings.Join(defs, "\n\n") + "\n"
	case *ast.OperationDefinition:
		return printOperation(n)
	case *ast.VariableDefinition:
		return Print(n.Variable) + ": " + Print(n.Type) + wrap(" = ", printOptional(n.DefaultValue), "")
	case *ast.SelectionSet:
		sels := make([]string, len(n.Selections))
		for i, sel := range n.Selections {
			sels[i] = Print(sel)
		}
		return block(sels)
	case *ast.Field:
		head := Print(n.Name)
		if n.Alias != nil {
			head = Print(n.Alias) + ": " + head
		}
		return join([]string{
			head + wrap("(", printArguments(n.Arguments), ")"),
			printDirectives(n.Directives),
			printOptional(n.SelectionSet),
		}, " ")
	case *ast.Argument:
		return Print(n.Name) + ": " + Print(n.Value)
	case *ast.FragmentSpread:
		return join([]string{"..." + Print(n.Name), printDirectives(n.Directives)}, " ")
	case *ast.InlineFragment:
		return join([]string{
			"...",
			wrap("on ", printOptional(n.TypeCondition), ""),
			printDirectives(n.Directives),
			Print(n.SelectionSet),
		}, " ")
	case *ast.FragmentDefinition:
		return join([]string{
			"fragment " + Print(n.Name) + " on " + Print(n.TypeCondition),
			printDirectives(n.Directives),
			Print(n.SelectionSet),
		}, " ")
	case *ast.Directive:
		return "@" + Print(n.Name) + wrap("(", printArguments(n.Arguments), ")")
	case *ast.Name:
		return n.Value
	case *ast.Variable:
		return "$" + Print(n.Name)
	case *ast.IntValue:
		return n.Value
	case *ast.FloatValue:
		return n.Value
	case *ast.StringValue:
		return quote(n.Value)
	case *ast.BooleanValue:
		return fmt.Sprint(n.Value)
	case *ast.EnumValue:
		return n.Value
	case *ast.ListValue:
		values := make([]string, len(n.Values))
		for i, v := range n.Values {
			values[i] = Print(v)
		}
		return "[" + strings.Join(values, ", ") + "]"
	case *ast.ObjectValue:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = Print(f)
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case *ast.ObjectField:
		return Print(n.Name) + ": " + Print(n.Value)
	case *ast.NamedType:
		return Print(n.Name)
	case *ast.ListType:
		return "[" + Print(n.Type) + "]"
	case *ast.NonNullType:
		return Print(n.Type) + "!"
	}
	return printTypeSystem(n)
}

func printOperation(n *ast.OperationDefinition) string {
	// Anonymous queries without variables or directives use the shorthand form.
	if n.Operation == ast.Query && n.Name == nil && len(n.VariableDefinitions) == 0 && len(n.Directives) == 0 {
		return Print(n.SelectionSet)
	}
	vars := make([]string, len(n.VariableDefinitions))
	for i, v := range n.VariableDefinitions {
		vars[i] = Print(v)
	}
	return join([]string{
		string(n.Operation),
		printOptional(n.Name) + wrap("(", strings.Join(vars, ", "), ")"),
		printDirectives(n.Directives),
		Print(n.SelectionSet),
	}, " ")
}

func printTypeSystem(n ast.Node) string {
	switch n := n.(type) {
	case *ast.SchemaDefinition:
		ops := make([]string, len(n.OperationTypes))
		for i, op := range n.OperationTypes {
			ops[i] = Print(op)
		}
		return join([]string{"schema", printDirectives(n.Directives), block(ops)}, " ")
	case *ast.OperationTypeDefinition:
		return string(n.Operation) + ": " + Print(n.Type)
	case *ast.ScalarTypeDefinition:
		return join([]string{"scalar " + Print(n.Name), printDirectives(n.Directives)}, " ")
	case *ast.ObjectTypeDefinition:
		ifaces := make([]string, len(n.Interfaces))
		for i, iface := range n.Interfaces {
			ifaces[i] = Print(iface)
		}
		return join([]string{
			"type " + Print(n.Name),
			wrap("implements ", strings.Join(ifaces, " "), ""),
			printDirectives(n.Directives),
			printFieldDefinitions(n.Fields),
		}, " ")
	case *ast.FieldDefinition:
		return join([]string{
			Print(n.Name) + printArgumentDefinitions(n.Arguments) + ": " + Print(n.Type),
			printDirectives(n.Directives),
		}, " ")
	case *ast.InputValueDefinition:
		return join([]string{
			Print(n.Name) + ": " + Print(n.Type) + wrap(" = ", printOptional(n.DefaultValue), ""),
			printDirectives(n.Directives),
		}, " ")
	case *ast.InterfaceTypeDefinition:
		return join([]string{
			"interface " + Print(n.Name),
			printDirectives(n.Directives),
			printFieldDefinitions(n.Fields),
		}, " ")
	case *ast.UnionTypeDefinition:
		types := make([]string, len(n.Types))
		for i, t := range n.Types {
			types[i] = Print(t)
		}
		return join([]string{
			"union " + Print(n.Name),
			printDirectives(n.Directives),
			"= " + strings.Join(types, " | "),
		}, " ")
	case *ast.EnumTypeDefinition:
		values := make([]string, len(n.Values))
		for i, v := range n.Values {
			values[i] = Print(v)
		}
		return join([]string{"enum " + Print(n.Name), printDirectives(n.Directives), block(values)}, " ")
	case *ast.EnumValueDefinition:
		return join([]string{Print(n.Name), printDirectives(n.Directives)}, " ")
	case *ast.InputObjectTypeDefinition:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = Print(f)
		}
		return join([]string{"input " + Print(n.Name), printDirectives(n.Directives), block(fields)}, " ")
	case *ast.TypeExtensionDefinition:
		return "extend " + Print(n.Definition)
	case *ast.DirectiveDefinition:
		locs := make([]string, len(n.Locations))
		for i, loc := range n.Locations {
			locs[i] = Print(loc)
		}
		return "directive @" + Print(n.Name) + printArgumentDefinitions(n.Arguments) + " on " + strings.Join(locs, " | ")
	}
	return ""
}

func printFieldDefinitions(fields []*ast.FieldDefinition) string {
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = Print(f)
	}
	return block(lines)
}

func printArgumentDefinitions(args []*ast.InputValueDefinition) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Print(a)
	}
	return wrap("(", strings.Join(parts, ", "), ")")
}

func printArguments(args []*ast.Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Print(a)
	}
	return strings.Join(parts, ", ")
}

func printDirectives(dirs []*ast.Directive) string {
	parts := make([]string, len(dirs))
	for i, d := range dirs {
		parts[i] = Print(d)
	}
	return strings.Join(parts, " ")
}

// printOptional prints n, treating nil pointers stored in the interface as absent.
func printOptional[T ast.Node](n T) string {
	var zero T
	if any(n) == any(zero) {
		return ""
	}
	return Print(n)
}

// block renders lines inside braces, one per line, indented by two spaces.
// An empty block renders as {}.
func block(lines []string) string {
	if len(lines) == 0 {
		return "{}"
	}
	body := strings.Join(lines, "\n")
	return "{\n  " + strings.ReplaceAll(body, "\n", "\n  ") + "\n}"
}

// join concatenates the non-empty parts with sep.
func join(parts []string, sep string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// wrap surrounds s with start and end unless s is empty.
func wrap(start, s, end string) string {
	if s == "" {
		return ""
	}
	return start + s + end
}

// quote renders s as a GraphQL string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
