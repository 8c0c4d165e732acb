// Package report renders solver traces and results as human-readable
// narration, in the pedagogical voice of a worked example. The solver
// emits structured events; everything about wording and layout lives
// here.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/echelon-labs/echelon/internal/cli/output"
	"github.com/echelon-labs/echelon/internal/solver"
)

// Options controls rendering.
type Options struct {
	Mode   output.Mode
	Styles *output.Styles
	// Matrix renders system snapshots as coefficient tables instead of
	// algebraic lines.
	Matrix bool
}

// Reporter writes narration and solutions to a single destination.
type Reporter struct {
	w    io.Writer
	opts Options
}

// New returns a Reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	if opts.Styles == nil {
		opts.Styles = output.NewStyles(false)
	}
	return &Reporter{w: w, opts: opts}
}

// Narrate writes one sentence (and, where helpful, a system snapshot)
// per trace event, in order. The terminal Classified event is rendered
// through Solution.
func (r *Reporter) Narrate(events []solver.Event) error {
	for _, ev := range events {
		if err := r.narrateEvent(ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) narrateEvent(ev solver.Event) error {
	switch e := ev.(type) {
	case solver.InitialSystem:
		r.step("This is the system we'll start from:")
		r.system(e.Labels, e.Equations)

	case solver.VariablesRemoved:
		r.step("The system has been checked and there were some unknowns that were not used (always had their coefficient equal to zero), so they were excluded from the system: %s.", unknownList(e.Labels))
		if len(e.Remaining) > 0 {
			r.system(e.Remaining, e.Equations)
		}

	case solver.EquationRemoved:
		switch e.Reason {
		case solver.ReasonRedundant:
			r.step("E%d is equivalent to E%d, so only the earlier one has been kept.", e.ID, e.KeptID)
		case solver.ReasonAllZero:
			r.step("E%d reduced to 0 = 0 and imposes no constraint, so it has been removed.", e.ID)
		case solver.ReasonUnusedCleanup:
			r.step("E%d had no content left after the unused unknowns were excluded, so it has been removed.", e.ID)
		}

	case solver.Reordered:
		r.step("We order the equations in descending order of absolute value from row %d downwards based on the coefficient of x%d because we want it to be different from zero.", e.FromRow, e.Column)
		r.system(e.Labels, e.Equations)

	case solver.ColumnSkipped:
		r.step("All coefficients of x%d are already zero, so we move to the next unknown.", e.Column)

	case solver.EliminatedRow:
		r.step("From E%d we subtract %s * E%d.", e.FromID, e.Factor, e.PivotID)

	case solver.Normalized:
		r.step("We then divide E%d by its own coefficient of x%d (%s) in order to make it equal to 1 for convenience.", e.ID, e.Column, e.Divisor)

	case solver.FinalSystem:
		r.step("This is now our final system (with any zero equations deleted):")
		r.system(e.Labels, e.Equations)

	case solver.Classified:
		return r.Solution(e.Result)
	}
	return nil
}

// Solution writes the final classification.
func (r *Reporter) Solution(res solver.Result) error {
	styles := r.opts.Styles
	switch v := res.(type) {
	case solver.Unique:
		fmt.Fprintln(r.w, styles.Title.Render("This system has only one solution, which is:"))
		labels := make([]int, 0, len(v.Values))
		for label := range v.Values {
			labels = append(labels, label)
		}
		sort.Ints(labels)
		for _, label := range labels {
			fmt.Fprintln(r.w, styles.Result.Render(fmt.Sprintf("x%d = %s", label, v.Values[label])))
		}

	case solver.None:
		fmt.Fprintf(r.w, "From equation E%d: 0 = %s\n", v.EquationID, v.RHS)
		fmt.Fprintln(r.w, styles.Error.Render("Impossible: this system has no solution."))

	case solver.Infinite:
		if len(v.Pivots) == 0 && len(v.Free) == 0 {
			fmt.Fprintln(r.w, styles.Title.Render("The system is composed by only zeroes; any value of any unknown is a solution."))
			return nil
		}
		unknowns := len(v.Pivots) + len(v.Free)
		fmt.Fprintln(r.w, styles.Title.Render(fmt.Sprintf(
			"This system has %d unknowns in %d equations, so it has infinitely many solutions.",
			unknowns, len(v.Pivots))))
		for _, p := range v.Pivots {
			fmt.Fprintln(r.w, styles.Result.Render(formatPivot(p)))
		}
		for _, label := range v.Free {
			fmt.Fprintln(r.w, styles.Result.Render(fmt.Sprintf("x%d = any value", label)))
		}

	default:
		return fmt.Errorf("report: unknown result %T", res)
	}
	return nil
}

// formatPivot renders "x1 = 3 x3 - 2" style pivot expressions.
func formatPivot(p solver.PivotExpression) string {
	var b strings.Builder
	fmt.Fprintf(&b, "x%d =", p.Unknown)

	wrote := false
	for _, t := range p.Terms {
		c := t.Coefficient
		op := " + "
		if !wrote {
			op = " "
		}
		if c.Sign() < 0 {
			op = " - "
			if !wrote {
				op = " -"
			}
			c = c.Neg()
		}
		fmt.Fprintf(&b, "%s%s x%d", op, c, t.Unknown)
		wrote = true
	}

	c := p.Constant
	switch {
	case !wrote:
		fmt.Fprintf(&b, " %s", c)
	case !c.IsZero():
		if c.Sign() < 0 {
			fmt.Fprintf(&b, " - %s", c.Neg())
		} else {
			fmt.Fprintf(&b, " + %s", c)
		}
	}
	return b.String()
}

// step writes one narration sentence.
func (r *Reporter) step(format string, args ...any) {
	fmt.Fprintln(r.w, r.opts.Styles.Step.Render(fmt.Sprintf(format, args...)))
}

// system writes a snapshot of the equations, either as algebraic lines
// or as a coefficient table.
func (r *Reporter) system(labels []int, eqs []solver.EquationState) {
	if len(eqs) == 0 {
		fmt.Fprintln(r.w, r.opts.Styles.Muted.Render("(the system is empty)"))
		fmt.Fprintln(r.w)
		return
	}
	if r.opts.Matrix {
		r.matrix(labels, eqs)
		return
	}
	for _, eq := range eqs {
		fmt.Fprintf(r.w, "E%d: %s\n", eq.ID, eq.Equation.Format(labels))
	}
	fmt.Fprintln(r.w)
}

// matrix renders the coefficient matrix with go-pretty, using the
// markdown table form when the reporter is in markdown mode.
func (r *Reporter) matrix(labels []int, eqs []solver.EquationState) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, 0, len(labels)+2)
	header = append(header, "Eq")
	for _, label := range labels {
		header = append(header, fmt.Sprintf("x%d", label))
	}
	header = append(header, "c")
	t.AppendHeader(header)

	for _, eq := range eqs {
		row := make(table.Row, 0, len(labels)+2)
		row = append(row, fmt.Sprintf("E%d", eq.ID))
		for _, c := range eq.Equation.Coefficients() {
			row = append(row, c.String())
		}
		t.AppendRow(row)
	}

	if r.opts.Mode == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	fmt.Fprintln(r.w)
}

func unknownList(labels []int) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf("x%d", label)
	}
	return strings.Join(parts, ", ")
}
