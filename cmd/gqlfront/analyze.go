package main

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/gqlfront/ast"
	"github.com/Protocol-Lattice/gqlfront/complexity"
	"github.com/Protocol-Lattice/gqlfront/parser"
)

var (
	analyzeSchema    string
	analyzeOperation string
	analyzeBreakdown bool
	analyzeVariables string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Estimate the complexity of an operation",
	Long: `Score the operations of a GraphQL document. Fields with a selection set
multiply the expected row count of their children by the average impact,
or by the page size given through first, last or id arguments.

With --schema, field return types and @complexity(impact: N) directives of
the SDL file refine the estimate. The command fails when the result exceeds
the configured max_complexity or max_depth. --variables supplies the values
of $variables used as page sizes.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeSchema, "schema", "s", "", "SDL file with field types and impacts")
	analyzeCmd.Flags().StringVarP(&analyzeOperation, "operation", "o", "", "Operation to score (default: all)")
	analyzeCmd.Flags().BoolVar(&analyzeBreakdown, "breakdown", false, "Print the cost of every field and spread")
	analyzeCmd.Flags().StringVar(&analyzeVariables, "variables", "", "Request variables as a JSON object")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	doc, err := parser.Parse(src, parser.WithMaxDepth(cfg.MaxNesting))
	if err != nil {
		return err
	}

	opts := []complexity.Option{
		complexity.WithMaxRecursionCount(cfg.Complexity.MaxRecursionCount),
		complexity.WithLogger(logger),
	}
	if analyzeSchema != "" {
		ti, err := loadTypeInfo(cmd, analyzeSchema)
		if err != nil {
			return err
		}
		opts = append(opts, complexity.WithTypeInfo(ti))
	}

	analyzer, err := complexity.NewAnalyzer(cfg.Complexity.AverageImpact, opts...)
	if err != nil {
		return err
	}
	var variables map[string]interface{}
	if analyzeVariables != "" {
		if err := json.Unmarshal([]byte(analyzeVariables), &variables); err != nil {
			return fmt.Errorf("decoding --variables: %w", err)
		}
	}

	res, err := analyzer.AnalyzeWithVariables(doc, analyzeOperation, variables)
	if err != nil {
		return err
	}
	logger.Info("operation analyzed",
		zap.String("source", src.Name),
		zap.String("operation", analyzeOperation),
		zap.Float64("complexity", res.TotalComplexity),
		zap.Int("depth", res.MaxDepth),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Complexity: %g\n", res.TotalComplexity)
	fmt.Fprintf(out, "Total depth: %d\n", res.TotalQueryDepth)
	fmt.Fprintf(out, "Max depth: %d\n", res.MaxDepth)

	if analyzeBreakdown {
		for _, e := range breakdown(res) {
			loc := src.LocationOf(e.node.Location().Start)
			fmt.Fprintf(out, "  %d:%d\t%s\t%g\n", loc.Line, loc.Column, e.label, e.cost)
		}
	}

	return res.Check(cfg.Complexity.Limits())
}

func loadTypeInfo(cmd *cobra.Command, path string) (*complexity.SchemaTypeInfo, error) {
	src, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	schema, err := parser.Parse(src, parser.WithMaxDepth(cfg.MaxNesting))
	if err != nil {
		return nil, err
	}
	return complexity.NewSchemaTypeInfo(schema)
}

type breakdownEntry struct {
	node  ast.Node
	label string
	cost  float64
}

// breakdown lists the scored nodes in source order.
func breakdown(res *complexity.Result) []breakdownEntry {
	entries := make([]breakdownEntry, 0, len(res.ComplexityMap))
	for n, cost := range res.ComplexityMap {
		var label string
		switch n := n.(type) {
		case *ast.Field:
			label = n.ResponseKey()
		case *ast.FragmentSpread:
			label = "..." + n.Name.String()
		default:
			label = string(n.Kind())
		}
		entries = append(entries, breakdownEntry{node: n, label: label, cost: cost})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].node.Location().Start < entries[j].node.Location().Start
	})
	return entries
}
