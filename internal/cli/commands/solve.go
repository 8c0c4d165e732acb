package commands

import (
	"github.com/spf13/cobra"

	"github.com/echelon-labs/echelon/internal/cli/config"
	"github.com/echelon-labs/echelon/internal/cli/output"
	"github.com/echelon-labs/echelon/internal/parser"
	"github.com/echelon-labs/echelon/internal/rat"
	"github.com/echelon-labs/echelon/internal/report"
	"github.com/echelon-labs/echelon/internal/solver"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a linear system read from a CSV file",
		Long: `Solve a system of linear equations read from a CSV file.

Each row holds one equation a1 x1 + a2 x2 + ... + an xn + c = 0 as the
comma-separated values a1,...,an,c. Coefficients may be integers,
decimals, or fractions like 7/3; all arithmetic is exact.

Pass "-" (or no file) to read the system from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := readRows(cmd, args)
			if err != nil {
				return err
			}
			return solveAndRender(cmd, rows)
		},
	}
}

// readRows loads the coefficient rows named by the args, treating a
// missing argument or "-" as standard input.
func readRows(cmd *cobra.Command, args []string) ([][]rat.Rational, error) {
	if len(args) == 0 || args[0] == "-" {
		return parser.Read(cmd.InOrStdin())
	}
	return parser.ReadFile(args[0])
}

// solveAndRender runs the elimination and writes the trace and result
// in the configured mode. Shared with the interactive session.
func solveAndRender(cmd *cobra.Command, rows [][]rat.Rational) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	renderer := GetRenderer(ctx)
	logger := config.GetLogger(ctx)

	system, err := solver.New(rows)
	if err != nil {
		return err
	}
	logger.Debug("system constructed", "equations", system.Len(), "unknowns", system.Unknowns())

	recorder := solver.NewRecorder()
	var sink solver.Sink
	if !cfg.Silent || renderer.Mode() == output.ModeJSON {
		sink = recorder
	}
	result, err := system.Solve(sink)
	if err != nil {
		return err
	}

	r := report.New(renderer.Out(), report.Options{
		Mode:   renderer.Mode(),
		Styles: renderer.Styles(),
		Matrix: cfg.Matrix,
	})

	if renderer.Mode() == output.ModeJSON {
		events := recorder.Events()
		if cfg.Silent {
			events = nil
		}
		return r.JSON(events, result)
	}
	if cfg.Silent {
		return r.Solution(result)
	}
	return r.Narrate(recorder.Events())
}
