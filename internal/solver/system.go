// Package solver reduces systems of linear equations to row echelon form
// using Gaussian elimination with partial pivoting, over exact rationals.
//
// A System is built once from raw coefficient rows, mutated in place by
// Solve, and ends in one of three classifications: a unique solution, no
// solution, or infinitely many solutions. Solve optionally reports every
// step through a trace Sink so a renderer can narrate the elimination;
// the trace is observational only and never affects the computation.
package solver

import (
	"fmt"

	"github.com/echelon-labs/echelon/internal/equation"
	"github.com/echelon-labs/echelon/internal/rat"
)

// SystemError reports a system that could not be constructed.
type SystemError struct {
	Message string
}

func (e *SystemError) Error() string { return "solver: " + e.Message }

// numbered pairs an equation with its stable id. Ids are assigned once,
// in input order, and survive reordering and removal.
type numbered struct {
	id int
	eq equation.Equation
}

// System is an ordered, mutable collection of numbered equations.
// It is owned by a single caller for the duration of a Solve; the type
// provides no internal synchronization.
type System struct {
	eqs   []numbered
	arity int
	// labels maps the current zero-based column index to the original
	// 1-based unknown label. Unused-variable removal shrinks it; labels
	// of surviving unknowns are never renumbered.
	labels []int

	solved bool
}

// New builds a system from raw coefficient rows. Each row holds the
// unknown coefficients followed by the constant term; all rows must
// share one arity of at least two.
func New(rows [][]rat.Rational) (*System, error) {
	if len(rows) == 0 {
		return nil, &SystemError{Message: "constructor requires at least one equation"}
	}
	arity := len(rows[0])
	eqs := make([]numbered, 0, len(rows))
	for i, row := range rows {
		if len(row) != arity {
			return nil, &SystemError{
				Message: fmt.Sprintf("equation %d has %d coefficients, want %d", i+1, len(row), arity),
			}
		}
		eq, err := equation.New(row...)
		if err != nil {
			return nil, fmt.Errorf("solver: equation %d: %w", i+1, err)
		}
		eqs = append(eqs, numbered{id: i + 1, eq: eq})
	}
	labels := make([]int, arity-1)
	for i := range labels {
		labels[i] = i + 1
	}
	return &System{eqs: eqs, arity: arity, labels: labels}, nil
}

// NewFromEquations builds a system from already constructed equations.
func NewFromEquations(eqs ...equation.Equation) (*System, error) {
	rows := make([][]rat.Rational, len(eqs))
	for i, eq := range eqs {
		rows[i] = eq.Coefficients()
	}
	return New(rows)
}

// Len returns the current number of equations.
func (s *System) Len() int { return len(s.eqs) }

// Unknowns returns the current number of unknown columns.
func (s *System) Unknowns() int { return len(s.labels) }

// Labels returns the original 1-based labels of the surviving unknowns,
// in column order.
func (s *System) Labels() []int {
	out := make([]int, len(s.labels))
	copy(out, s.labels)
	return out
}

// Equations returns a snapshot of the current equations in row order.
func (s *System) Equations() []EquationState {
	return s.snapshot()
}

func (s *System) snapshot() []EquationState {
	out := make([]EquationState, len(s.eqs))
	for i, n := range s.eqs {
		out[i] = EquationState{ID: n.id, Equation: n.eq}
	}
	return out
}

// String renders the system one equation per line, in the form
// "E1: 2 x1 + 1 x2 - 1 = 0", preserving original unknown labels.
func (s *System) String() string {
	var out []byte
	for _, n := range s.eqs {
		out = append(out, fmt.Sprintf("E%d: %s\n", n.id, n.eq.Format(s.labels))...)
	}
	return string(out)
}
