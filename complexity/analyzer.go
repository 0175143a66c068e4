// Package complexity estimates how expensive a GraphQL operation is before it
// runs. Every field with a selection set multiplies the expected number of
// rows its children are resolved for, so the cost grows geometrically with
// nesting. Fragments are scored once per document and reused at every spread.
package complexity

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/gqlfront/ast"
)

const (
	// DefaultAverageImpact is the assumed number of rows a list field returns.
	DefaultAverageImpact = 2.0
	// DefaultMaxRecursionCount bounds the number of field and spread visits per analysis.
	DefaultMaxRecursionCount = 250
)

var (
	// ErrInvalidAverageImpact is returned by NewAnalyzer for an average impact of 1 or less.
	ErrInvalidAverageImpact = errors.New("average impact must be greater than 1")
	// ErrRecursionLimit reports a fragment cycle or too many field and spread visits.
	ErrRecursionLimit       = errors.New("recursion limit exceeded")
	// ErrUnknownFragment reports a spread of a fragment the document does not define.
	ErrUnknownFragment      = errors.New("unknown fragment")
	// ErrUnknownOperation reports an operation name the document does not define.
	ErrUnknownOperation     = errors.New("unknown operation")
)

// Result is the outcome of one analysis.
type Result struct {
	// ComplexityMap holds the cost recorded for each field and fragment spread
	// of the analyzed operations.
	ComplexityMap   map[ast.Node]float64
	TotalComplexity float64
	// TotalQueryDepth counts every field with a selection set, fragments included.
	TotalQueryDepth int
	// MaxDepth is the deepest level of fields with a selection set below the
	// root selection set. Root leaves alone give 0 and { a { b } } gives 1.
	MaxDepth int
}

// Analyzer scores documents. It holds configuration only and is safe for
// concurrent use.
type Analyzer struct {
	averageImpact     float64
	maxRecursionCount int
	typeInfo          TypeInfo
	logger            *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxRecursionCount sets the ceiling on field and spread visits.
func WithMaxRecursionCount(n int) Option {
	return func(a *Analyzer) {
		a.maxRecursionCount = n
	}
}

// WithTypeInfo resolves field return types and per-field impacts from a schema.
func WithTypeInfo(ti TypeInfo) Option {
	return func(a *Analyzer) {
		a.typeInfo = ti
	}
}

// WithLogger sets the logger used for debug instrumentation.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer returns an Analyzer using averageImpact as the default row
// multiplier. averageImpact must be greater than 1.
func NewAnalyzer(averageImpact float64, opts ...Option) (*Analyzer, error) {
	if !(averageImpact > 1) {
		return nil, errors.Wrapf(ErrInvalidAverageImpact, "got %v", averageImpact)
	}
	a := &Analyzer{
		averageImpact:     averageImpact,
		maxRecursionCount: DefaultMaxRecursionCount,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze scores every operation of doc.
func Analyze(doc *ast.Document, averageImpact float64, opts ...Option) (*Result, error) {
	a, err := NewAnalyzer(averageImpact, opts...)
	if err != nil {
		return nil, err
	}
	return a.Analyze(doc, "")
}

// Analyze scores the operation named operationName, or every operation of the
// document when the name is empty.
func (a *Analyzer) Analyze(doc *ast.Document, operationName string) (*Result, error) {
	return a.AnalyzeWithVariables(doc, operationName, nil)
}

// AnalyzeWithVariables is Analyze for a request that carries variables, so
// first and last arguments given as $variables count as page sizes too.
func (a *Analyzer) AnalyzeWithVariables(doc *ast.Document, operationName string, variables map[string]interface{}) (*Result, error) {
	ops := doc.Operations()
	if operationName != "" {
		op := doc.Operation(operationName)
		if op == nil {
			return nil, errors.Wrapf(ErrUnknownOperation, "%q", operationName)
		}
		ops = []*ast.OperationDefinition{op}
	}

	run := &analysis{
		Analyzer:  a,
		variables: variables,
		fragments: make(map[string]*ast.FragmentDefinition),
		scored:    make(map[string]fragmentComplexity),
		scoring:   make(map[string]bool),
	}
	for _, frag := range doc.Fragments() {
		if _, dup := run.fragments[frag.Name.Value]; !dup {
			run.fragments[frag.Name.Value] = frag
		}
	}

	// Fragments first, so every spread below is a lookup.
	for _, frag := range doc.Fragments() {
		if _, err := run.fragment(frag.Name.Value); err != nil {
			return nil, err
		}
	}

	t := &tally{nodes: make(map[ast.Node]float64)}
	for _, op := range ops {
		if err := run.selectionSet(op.SelectionSet, a.rootTypeName(op.Operation), a.averageImpact, 1, 0, t); err != nil {
			return nil, err
		}
	}
	return &Result{
		ComplexityMap:   t.nodes,
		TotalComplexity: t.complexity,
		TotalQueryDepth: t.depth,
		MaxDepth:        t.maxDepth,
	}, nil
}

func (a *Analyzer) rootTypeName(op ast.Operation) string {
	if a.typeInfo == nil {
		return ""
	}
	return a.typeInfo.RootTypeName(op)
}

func (a *Analyzer) lookupField(parentType, name string) FieldInfo {
	if a.typeInfo == nil || parentType == "" {
		return FieldInfo{}
	}
	info, _ := a.typeInfo.Field(parentType, name)
	return info
}

// impact returns the expected row count of f. An id argument selects a single
// row; first or last arguments give the page size.
func (r *analysis) impact(f *ast.Field, info FieldInfo) float64 {
	if f.Argument("id") != nil {
		return 1
	}
	for _, name := range []string{"first", "last"} {
		if v := f.ArgumentValue(name); v != nil {
			if n, ok := pageSize(ast.ValueOf(v, r.variables)); ok {
				return n
			}
		}
	}
	if info.Impact != nil {
		if impact, ok := info.Impact(f); ok {
			return impact
		}
	}
	return r.averageImpact
}

// pageSize accepts integers and the float64 numbers JSON decoding produces.
func pageSize(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, n == math.Trunc(n)
	}
	return 0, false
}

type fragmentComplexity struct {
	depth      int
	maxDepth   int
	complexity float64
}

// tally accumulates the cost of one operation set or one fragment.
type tally struct {
	complexity float64
	depth      int
	maxDepth   int
	nodes      map[ast.Node]float64 // nil while scoring fragments
}

func (t *tally) record(n ast.Node, impact float64) {
	t.complexity += impact
	if t.nodes != nil {
		t.nodes[n] += impact
	}
}

func (t *tally) reach(level int) {
	if level > t.maxDepth {
		t.maxDepth = level
	}
}

// analysis holds the state of a single Analyze call.
type analysis struct {
	*Analyzer
	variables map[string]interface{}
	fragments map[string]*ast.FragmentDefinition
	scored    map[string]fragmentComplexity
	scoring   map[string]bool // fragments on the current resolution path
	steps     int
}

func (r *analysis) step() error {
	r.steps++
	if r.steps > r.maxRecursionCount {
		return errors.Wrapf(ErrRecursionLimit, "more than %d fields and fragment spreads", r.maxRecursionCount)
	}
	return nil
}

// fragment returns the memoized cost of the named fragment, scoring it on
// first use.
func (r *analysis) fragment(name string) (fragmentComplexity, error) {
	if fc, ok := r.scored[name]; ok {
		return fc, nil
	}
	def, ok := r.fragments[name]
	if !ok {
		return fragmentComplexity{}, errors.Wrapf(ErrUnknownFragment, "%q", name)
	}
	if r.scoring[name] {
		return fragmentComplexity{}, errors.Wrapf(ErrRecursionLimit, "fragment %q spreads itself", name)
	}
	r.scoring[name] = true
	defer delete(r.scoring, name)

	t := &tally{}
	typeName := ""
	if def.TypeCondition != nil {
		typeName = def.TypeCondition.Name.Value
	}
	if err := r.selectionSet(def.SelectionSet, typeName, r.averageImpact, 1, 0, t); err != nil {
		return fragmentComplexity{}, err
	}
	fc := fragmentComplexity{depth: t.depth, maxDepth: t.maxDepth, complexity: t.complexity}
	r.scored[name] = fc
	r.logger.Debug("fragment scored",
		zap.String("fragment", name),
		zap.Int("depth", fc.depth),
		zap.Float64("complexity", fc.complexity),
	)
	return fc, nil
}

// selectionSet scores ss. subSelection is the number of rows the selections
// are resolved for, endNode the cost of a leaf at this level and level the
// nesting depth of ss.
func (r *analysis) selectionSet(ss *ast.SelectionSet, parentType string, subSelection, endNode float64, level int, t *tally) error {
	if ss == nil {
		return nil
	}
	for _, sel := range ss.Selections {
		var err error
		switch n := sel.(type) {
		case *ast.Field:
			err = r.field(n, parentType, subSelection, endNode, level, t)
		case *ast.InlineFragment:
			typeName := parentType
			if n.TypeCondition != nil {
				typeName = n.TypeCondition.Name.Value
			}
			err = r.selectionSet(n.SelectionSet, typeName, subSelection, endNode, level, t)
		case *ast.FragmentSpread:
			err = r.spread(n, subSelection, level, t)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *analysis) field(f *ast.Field, parentType string, subSelection, endNode float64, level int, t *tally) error {
	if err := r.step(); err != nil {
		return err
	}
	if f.SelectionSet == nil || len(f.SelectionSet.Selections) == 0 {
		t.record(f, endNode)
		return nil
	}

	info := r.lookupField(parentType, f.Name.Value)
	impact := r.impact(f, info)
	t.depth++
	t.reach(level + 1)
	endNode = impact / r.averageImpact * subSelection
	t.record(f, endNode)
	return r.selectionSet(f.SelectionSet, info.TypeName, subSelection*impact, endNode, level+1, t)
}

func (r *analysis) spread(s *ast.FragmentSpread, subSelection float64, level int, t *tally) error {
	if err := r.step(); err != nil {
		return err
	}
	fc, err := r.fragment(s.Name.Value)
	if err != nil {
		return err
	}
	t.record(s, subSelection/r.averageImpact*fc.complexity)
	t.depth += fc.depth
	t.reach(level + fc.maxDepth)
	return nil
}
