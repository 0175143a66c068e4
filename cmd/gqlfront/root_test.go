package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Protocol-Lattice/gqlfront/complexity"
	"github.com/Protocol-Lattice/gqlfront/config"
	"github.com/Protocol-Lattice/gqlfront/gqlerror"
)

// execute runs the root command with fresh flag values and returns what it
// wrote to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.ConfigPathEnv, "")

	verbose, configPath, envFile = false, "", ""
	parseJSON = false
	analyzeSchema, analyzeOperation, analyzeBreakdown, analyzeVariables = "", "", false, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLexCommand(t *testing.T) {
	out, err := execute(t, "{ a }", "lex", "-")
	require.NoError(t, err)

	assert.Equal(t, "1:1\t\"{\"\n1:3\tName \"a\"\n1:5\t\"}\"\n1:6\t<EOF>\n", out)
}

func TestParseCommand(t *testing.T) {
	path := writeFile(t, "query.graphql", "query Q{a}")

	out, err := execute(t, "", "parse", path)
	require.NoError(t, err)
	assert.Equal(t, "query Q {\n  a\n}\n", out)
}

func TestParseCommandJSON(t *testing.T) {
	path := writeFile(t, "query.graphql", "query Q{a}")

	out, err := execute(t, "", "parse", "--json", path)
	require.NoError(t, err)

	var summary documentSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, path, summary.Source)
	assert.Equal(t, []definitionSummary{
		{Kind: "OperationDefinition", Name: "Q", Line: 1, Column: 1, Start: 0, End: 10},
	}, summary.Definitions)
}

func TestParseCommandSyntaxError(t *testing.T) {
	_, err := execute(t, "{\n  hero(\n}", "parse", "-")
	require.Error(t, err)

	var syntaxErr *gqlerror.SyntaxError
	require.True(t, errors.As(err, &syntaxErr))

	var buf bytes.Buffer
	printError(&buf, err, newStyles(false))
	assert.Equal(t,
		"Syntax Error GraphQL request (3:1) Expected Name, found \"}\".\n\n2:   hero(\n3: }\n   ^\n",
		buf.String())
}

func TestPrintPlainError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("boom"), newStyles(false))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestMissingFile(t *testing.T) {
	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.graphql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.graphql")
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := execute(t, "{ hero { name } }", "analyze", "-")
	require.NoError(t, err)
	assert.Equal(t, "Complexity: 4\nTotal depth: 1\nMax depth: 1\n", out)
}

func TestAnalyzeCommandWithSchema(t *testing.T) {
	schema := writeFile(t, "schema.graphql", `
type Query { users: [User] @complexity(impact: 10) }
type User { name: String }
`)

	out, err := execute(t, "{ users { name } }", "analyze", "--schema", schema, "--breakdown", "-")
	require.NoError(t, err)
	assert.Equal(t,
		"Complexity: 20\nTotal depth: 1\nMax depth: 1\n  1:3\tusers\t10\n  1:11\tname\t10\n",
		out)
}

func TestAnalyzeCommandOperation(t *testing.T) {
	out, err := execute(t, "query A { a { b } } query B { c }", "analyze", "-o", "B", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Complexity: 1\n"), out)

	_, err = execute(t, "query A { a }", "analyze", "-o", "Nope", "-")
	assert.True(t, errors.Is(err, complexity.ErrUnknownOperation))
}

func TestAnalyzeCommandEnforcesLimits(t *testing.T) {
	t.Setenv("GQLFRONT_COMPLEXITY_MAX_COMPLEXITY", "3")

	out, err := execute(t, "{ hero { name } }", "analyze", "-")
	require.Error(t, err)
	assert.True(t, errors.Is(err, complexity.ErrComplexityLimit))
	assert.Contains(t, out, "Complexity: 4", "the result is printed before the limits are checked")
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("GQLFRONT_COMPLEXITY_AVERAGE_IMPACT", "1")

	_, err := execute(t, "{ a }", "analyze", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestAnalyzeCommandVariables(t *testing.T) {
	query := `query ($n: Int) { users(first: $n) { name } }`

	out, err := execute(t, query, "analyze", "--variables", `{"n": 10}`, "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Complexity: 20\n"), out)

	_, err = execute(t, query, "analyze", "--variables", `[1]`, "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding --variables")
}

func TestParseCommandNestingLimit(t *testing.T) {
	t.Setenv("GQLFRONT_MAX_NESTING", "2")

	_, err := execute(t, "{ a { b { c } } }", "parse", "-")
	var syntaxErr *gqlerror.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "got %v", err)
	assert.Equal(t, "Document nesting exceeds the limit of 2.", syntaxErr.Message)
	assert.Equal(t, 8, syntaxErr.Offset)
}
