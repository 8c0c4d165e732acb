package solver

import (
	"github.com/echelon-labs/echelon/internal/rat"
)

// Result is the terminal classification of a solve. The set of
// implementations is closed: Unique, None, and Infinite.
type Result interface {
	result()
}

// Unique holds the single solution of a determined system. Keys are the
// original 1-based unknown labels.
type Unique struct {
	Values map[int]rat.Rational
}

// None marks an inconsistent system. EquationID names the contradictory
// equation and RHS its displayed right-hand side: a row of the form
// 0·x + c = 0 is reported as 0 = -c.
type None struct {
	EquationID int
	RHS        rat.Rational
}

// Term is one free-unknown contribution inside a pivot expression.
type Term struct {
	Unknown     int // original 1-based label of the free unknown
	Coefficient rat.Rational
}

// PivotExpression expresses a pivot unknown in terms of free unknowns:
// x_Unknown = sum(Terms) + Constant.
type PivotExpression struct {
	Unknown  int // original 1-based label of the pivot unknown
	Terms    []Term
	Constant rat.Rational
}

// Infinite marks an underdetermined system. Every pivot unknown gets an
// expression over the free unknowns; Free lists the unknowns whose value
// is an independent parameter, by original label.
type Infinite struct {
	Pivots []PivotExpression
	Free   []int
}

func (Unique) result()   {}
func (None) result()     {}
func (Infinite) result() {}
