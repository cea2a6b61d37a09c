package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbridge/internal/cli/config"
	"github.com/leapstack-labs/sqlbridge/pkg/dialect"
	"github.com/leapstack-labs/sqlbridge/pkg/transpile"
)

// NewShellCommand creates the shell command: an interactive loop that
// transpiles each entered statement.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive transpilation shell",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Current()
			return runShell(cmd, cfg.Read, cfg.Write)
		},
	}
}

func runShell(cmd *cobra.Command, read, write string) error {
	historyFile := filepath.Join(os.TempDir(), "sqlbridge_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sqlbridge> ",
		HistoryFile:     historyFile,
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "sqlbridge shell (%s -> %s)\n", read, write)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	var buffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buffer.Reset()
			rl.SetPrompt("sqlbridge> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			quit := handleDotCommand(cmd, line, &read, &write)
			if quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			buffer.WriteString(" ")
			rl.SetPrompt("      ...> ")
			continue
		}
		rl.SetPrompt("sqlbridge> ")

		sql := strings.TrimSuffix(buffer.String(), ";")
		buffer.Reset()

		result, err := transpile.Transpile(sql, read, write)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s;\n", result)
	}

	return nil
}

// handleDotCommand processes shell dot-commands. Returns true on quit.
func handleDotCommand(cmd *cobra.Command, line string, read, write *string) bool {
	out := cmd.OutOrStdout()
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		_, _ = fmt.Fprintln(out, "Commands:")
		_, _ = fmt.Fprintln(out, "  .read <dialect>   set the input dialect")
		_, _ = fmt.Fprintln(out, "  .write <dialect>  set the output dialect")
		_, _ = fmt.Fprintln(out, "  .dialects         list registered dialects")
		_, _ = fmt.Fprintln(out, "  .quit             exit the shell")
		_, _ = fmt.Fprintln(out, "Statements end with a semicolon.")

	case ".dialects":
		_, _ = fmt.Fprintln(out, strings.Join(dialect.List(), ", "))

	case ".read":
		setShellDialect(cmd, parts, read)

	case ".write":
		setShellDialect(cmd, parts, write)

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command %s (try .help)\n", parts[0])
	}
	return false
}

func setShellDialect(cmd *cobra.Command, parts []string, target *string) {
	if len(parts) != 2 {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Usage: %s <dialect>\n", parts[0])
		return
	}
	if _, err := dialect.MustGet(parts[1]); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	*target = strings.ToLower(parts[1])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s dialect set to %s\n", strings.TrimPrefix(parts[0], "."), *target)
}

func newShellCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".dialects"),
	}
	var dialectItems []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		dialectItems = append(dialectItems, readline.PcItem(name))
	}
	items = append(items,
		readline.PcItem(".read", dialectItems...),
		readline.PcItem(".write", dialectItems...),
	)
	return readline.NewPrefixCompleter(items...)
}
