package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Protocol-Lattice/gqlfront/config"
	"github.com/Protocol-Lattice/gqlfront/logging"
	"github.com/Protocol-Lattice/gqlfront/source"
)

var (
	verbose    bool
	configPath string
	envFile    string

	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gqlfront",
	Short: "gqlfront - GraphQL lexer, parser and complexity analyzer",
	Long: `gqlfront reads GraphQL documents, reports syntax errors with the offending
source line, prints documents in canonical form and estimates how expensive
an operation is before it runs.

Every command reads a file argument, or standard input when the file is "-".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Extra .env file overriding the environment")

	// Add subcommands
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// setup loads the configuration and builds the logger shared by all commands.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var level zapcore.Level
	if verbose {
		level = zapcore.DebugLevel
	} else if level, err = c.Level(); err != nil {
		return err
	}

	cfg = c
	logger = logging.NewWriterLogger(cmd.ErrOrStderr(), !c.JSONLog, false, level)
	return nil
}

// readSource reads the document named by path. "-" reads standard input.
func readSource(cmd *cobra.Command, path string) (*source.Source, error) {
	if path == "-" {
		body, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return source.New(string(body), ""), nil
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return source.New(string(body), path), nil
}
