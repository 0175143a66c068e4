package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/parser"
	"github.com/Protocol-Lattice/gqlfront/printer"
	"github.com/Protocol-Lattice/gqlfront/source"
)

var parseJSON bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a document and print it in canonical form",
	Long: `Parse a GraphQL document, executable or SDL, and print it back in canonical
form. With --json a summary of the top level definitions is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print a JSON summary of the definitions")
}

// definitionSummary is the JSON form of one top level definition.
type definitionSummary struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

type documentSummary struct {
	Source      string              `json:"source"`
	Definitions []definitionSummary `json:"definitions"`
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	doc, err := parser.Parse(src, parser.WithMaxDepth(cfg.MaxNesting))
	if err != nil {
		return err
	}
	logger.Debug("document parsed", zap.String("source", src.Name), zap.Int("definitions", len(doc.Definitions)))

	out := cmd.OutOrStdout()
	if !parseJSON {
		fmt.Fprint(out, printer.Print(doc))
		return nil
	}

	data, err := json.MarshalIndent(summarize(src, doc), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func summarize(src *source.Source, doc *ast.Document) documentSummary {
	summary := documentSummary{Source: src.Name, Definitions: []definitionSummary{}}
	for _, def := range doc.Definitions {
		loc := def.Location()
		pos := src.LocationOf(loc.Start)
		summary.Definitions = append(summary.Definitions, definitionSummary{
			Kind:   string(def.Kind()),
			Name:   definitionName(def),
			Line:   pos.Line,
			Column: pos.Column,
			Start:  loc.Start,
			End:    loc.End,
		})
	}
	return summary
}

func definitionName(def ast.Definition) string {
	switch d := def.(type) {
	case *ast.OperationDefinition:
		return d.Name.String()
	case *ast.FragmentDefinition:
		return d.Name.String()
	case *ast.ScalarTypeDefinition:
		return d.Name.String()
	case *ast.ObjectTypeDefinition:
		return d.Name.String()
	case *ast.InterfaceTypeDefinition:
		return d.Name.String()
	case *ast.UnionTypeDefinition:
		return d.Name.String()
	case *ast.EnumTypeDefinition:
		return d.Name.String()
	case *ast.InputObjectTypeDefinition:
		return d.Name.String()
	case *ast.TypeExtensionDefinition:
		return d.Definition.Name.String()
	case *ast.DirectiveDefinition:
		return d.Name.String()
	}
	return ""
}
