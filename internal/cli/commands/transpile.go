// Package commands implements the sqlbridge subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/config"
	"github.com/leapstack-labs/sqlbridge/pkg/transpile"
)

// NewTranspileCommand creates the transpile command.
func NewTranspileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transpile [file]",
		Short: "Parse SQL in one dialect and render it in another",
		Long: `Transpile reads SQL from a file (or stdin when no file is given),
parses it in the read dialect, and prints it rendered in the write dialect.

Statements are separated by semicolons. The first failing statement stops
the run; nothing is printed for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			cfg := config.Current()
			return transpileInput(cmd.OutOrStdout(), input, cfg.Read, cfg.Write)
		},
	}
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// transpileInput transpiles each semicolon-separated statement and prints
// one result per line.
func transpileInput(w io.Writer, input, read, write string) error {
	stmts := splitStatements(input)
	if len(stmts) == 0 {
		return fmt.Errorf("no SQL statements in input")
	}

	for _, sql := range stmts {
		out, err := transpile.Transpile(sql, read, write)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s;\n", out); err != nil {
			return err
		}
	}
	return nil
}

func splitStatements(input string) []string {
	var stmts []string
	for _, part := range strings.Split(input, ";") {
		if s := strings.TrimSpace(part); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
