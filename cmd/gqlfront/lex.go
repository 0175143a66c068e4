package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/gqlfront/lexer"
	"github.com/Protocol-Lattice/gqlfront/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex FILE",
	Short: "Print the tokens of a document",
	Long:  "Tokenize a GraphQL document and print one token per line with its line and column.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	l := lexer.New(src)
	count := 0
	for {
		tok, err := l.NextToken()
		if err != nil {
			return err
		}
		loc := src.LocationOf(tok.Start)
		fmt.Fprintf(out, "%d:%d\t%s\n", loc.Line, loc.Column, tok.Describe())
		if tok.Kind == token.EOF {
			break
		}
		count++
	}

	logger.Debug("document tokenized", zap.String("source", src.Name), zap.Int("tokens", count))
	return nil
}
