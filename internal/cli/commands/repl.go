package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/echelon-labs/echelon/internal/parser"
	"github.com/echelon-labs/echelon/internal/rat"
)

// NewREPLCommand creates the interactive session command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"interactive"},
		Short:   "Enter equations interactively and solve them",
		Long: `Start an interactive session for building and solving linear systems.

Type one equation per line as comma-separated coefficients
(a1, a2, ..., an, c for a1 x1 + ... + an xn + c = 0), then .solve to
run the elimination. Type .help for the full command list.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg := GetConfig(cmd.Context())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "echelon> ",
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    replCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Echelon %s interactive session\n", cmd.Root().Version)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Enter one equation per line as a1, a2, ..., an, c. Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var rows [][]rat.Rational
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
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
			quit, next := handleDotCommand(cmd, line, rows)
			rows = next
			if quit {
				break
			}
			continue
		}

		parsed, err := parser.Read(strings.NewReader(line))
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		row := parsed[0]
		if len(rows) > 0 && len(rows[0]) != len(row) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: expected %d values per equation, got %d\n", len(rows[0]), len(row))
			continue
		}
		rows = append(rows, row)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "E%d added\n", len(rows))
	}

	return nil
}

// handleDotCommand runs one dot-command and returns the possibly
// updated system rows along with whether the session should end.
func handleDotCommand(cmd *cobra.Command, line string, rows [][]rat.Rational) (quit bool, next [][]rat.Rational) {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true, rows

	case ".help":
		printREPLHelp(out)
		return false, rows

	case ".solve":
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(errOut, "Nothing to solve: the system is empty")
			return false, rows
		}
		if err := solveAndRender(cmd, rows); err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(out)
		return false, rows

	case ".show":
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(out, "(the system is empty)")
			return false, rows
		}
		for i, row := range rows {
			tokens := make([]string, len(row))
			for j, v := range row {
				tokens[j] = v.String()
			}
			_, _ = fmt.Fprintf(out, "E%d: %s\n", i+1, strings.Join(tokens, ", "))
		}
		return false, rows

	case ".load":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(errOut, "Usage: .load <file>")
			return false, rows
		}
		loaded, err := parser.ReadFile(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(errOut, "Error: %v\n", err)
			return false, rows
		}
		_, _ = fmt.Fprintf(out, "Loaded %d equations from %s\n", len(loaded), parts[1])
		return false, loaded

	case ".reset":
		_, _ = fmt.Fprintln(out, "System cleared")
		return false, nil

	case ".clear":
		_, _ = fmt.Fprint(out, "\033[H\033[2J")
		return false, rows

	default:
		_, _ = fmt.Fprintf(errOut, "Unknown command: %s (type .help for commands)\n", command)
		return false, rows
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .solve          Solve the current system
  .show           Show the equations entered so far
  .load <file>    Replace the system with equations from a CSV file
  .reset          Discard the current system
  .clear          Clear the screen
  .help           Show this help message
  .quit / .exit   Exit the session

Tips:
  - Each equation is a1, a2, ..., an, c for a1 x1 + ... + an xn + c = 0
  - Coefficients may be integers, decimals, or fractions like 7/3
  - Use arrow keys to navigate the history
`
	_, _ = fmt.Fprintln(w, help)
}

// replCompleter completes the dot-commands.
func replCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".solve"),
		readline.PcItem(".show"),
		readline.PcItem(".load"),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
