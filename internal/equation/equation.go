// Package equation models linear equations with exact rational coefficients.
//
// An equation a1 x1 + a2 x2 + ... + an xn + c = 0 is stored as an ordered,
// immutable coefficient vector whose last entry is the constant term c.
// Two equations are considered equivalent when one is a nonzero scalar
// multiple of the other: both describe the same hyperplane.
package equation

import (
	"fmt"
	"strings"

	"github.com/echelon-labs/echelon/internal/rat"
)

// ArityError reports an equation built with fewer than two coefficients.
type ArityError struct {
	Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("equation: need at least 2 coefficients (one unknown plus a constant), got %d", e.Got)
}

// MismatchError reports a binary operation on equations of different arity.
type MismatchError struct {
	Left, Right int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("equation: mismatched arity %d vs %d", e.Left, e.Right)
}

// Equation is an immutable linear equation. The zero value is not valid;
// use New.
type Equation struct {
	coeffs []rat.Rational
}

// New builds an equation from n unknown coefficients followed by the
// constant term. At least two coefficients are required.
func New(coeffs ...rat.Rational) (Equation, error) {
	if len(coeffs) < 2 {
		return Equation{}, &ArityError{Got: len(coeffs)}
	}
	own := make([]rat.Rational, len(coeffs))
	copy(own, coeffs)
	return Equation{coeffs: own}, nil
}

// MustNew is New for coefficient lists known to be valid; it panics
// otherwise. Intended for tests.
func MustNew(coeffs ...rat.Rational) Equation {
	eq, err := New(coeffs...)
	if err != nil {
		panic(err)
	}
	return eq
}

// Len returns the total number of coefficients, constant included.
func (e Equation) Len() int { return len(e.coeffs) }

// Unknowns returns the number of unknown coefficients.
func (e Equation) Unknowns() int { return len(e.coeffs) - 1 }

// Coefficient returns the coefficient at zero-based column i; column
// Unknowns() is the constant term.
func (e Equation) Coefficient(i int) rat.Rational { return e.coeffs[i] }

// Constant returns the constant term.
func (e Equation) Constant() rat.Rational { return e.coeffs[len(e.coeffs)-1] }

// Coefficients returns a copy of all coefficients in order, constant last.
func (e Equation) Coefficients() []rat.Rational {
	out := make([]rat.Rational, len(e.coeffs))
	copy(out, e.coeffs)
	return out
}

// Add returns the elementwise sum of e and o.
func (e Equation) Add(o Equation) (Equation, error) {
	if len(e.coeffs) != len(o.coeffs) {
		return Equation{}, &MismatchError{Left: len(e.coeffs), Right: len(o.coeffs)}
	}
	sum := make([]rat.Rational, len(e.coeffs))
	for i := range e.coeffs {
		sum[i] = e.coeffs[i].Add(o.coeffs[i])
	}
	return Equation{coeffs: sum}, nil
}

// Sub returns the elementwise difference of e and o.
func (e Equation) Sub(o Equation) (Equation, error) {
	if len(e.coeffs) != len(o.coeffs) {
		return Equation{}, &MismatchError{Left: len(e.coeffs), Right: len(o.coeffs)}
	}
	diff := make([]rat.Rational, len(e.coeffs))
	for i := range e.coeffs {
		diff[i] = e.coeffs[i].Sub(o.coeffs[i])
	}
	return Equation{coeffs: diff}, nil
}

// Scale returns e with every coefficient multiplied by the scalar.
// A zero scalar is permitted and produces the all-zero equation.
func (e Equation) Scale(by rat.Rational) Equation {
	scaled := make([]rat.Rational, len(e.coeffs))
	for i := range e.coeffs {
		scaled[i] = e.coeffs[i].Mul(by)
	}
	return Equation{coeffs: scaled}
}

// Div returns e with every coefficient divided by the scalar.
// Returns rat.ErrDivisionByZero when the scalar is zero.
func (e Equation) Div(by rat.Rational) (Equation, error) {
	if by.IsZero() {
		return Equation{}, rat.ErrDivisionByZero
	}
	divided := make([]rat.Rational, len(e.coeffs))
	for i := range e.coeffs {
		q, err := e.coeffs[i].Div(by)
		if err != nil {
			return Equation{}, err
		}
		divided[i] = q
	}
	return Equation{coeffs: divided}, nil
}

// IsZero reports whether every coefficient, constant included, is zero.
// Such an equation reads 0 = 0 and imposes no constraint.
func (e Equation) IsZero() bool {
	for _, c := range e.coeffs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Equivalent reports whether o is a nonzero scalar multiple of e,
// including the case where both are identically zero.
//
// The scalar is fixed at the first column where either equation is
// nonzero; every remaining pair must then be consistent with it.
func (e Equation) Equivalent(o Equation) (bool, error) {
	if len(e.coeffs) != len(o.coeffs) {
		return false, &MismatchError{Left: len(e.coeffs), Right: len(o.coeffs)}
	}

	pos := -1
	for i := range e.coeffs {
		if !e.coeffs[i].IsZero() || !o.coeffs[i].IsZero() {
			pos = i
			break
		}
	}
	if pos < 0 {
		// Both identically zero.
		return true, nil
	}
	if e.coeffs[pos].IsZero() {
		// o is nonzero here but e is not; no scalar can relate them.
		return false, nil
	}
	factor, err := o.coeffs[pos].Div(e.coeffs[pos])
	if err != nil {
		return false, err
	}
	if factor.IsZero() {
		return false, nil
	}

	for i := range e.coeffs {
		if e.coeffs[i].IsZero() && o.coeffs[i].IsZero() {
			continue
		}
		if !o.coeffs[i].Equal(e.coeffs[i].Mul(factor)) {
			return false, nil
		}
	}
	return true, nil
}

// Without returns a copy of e with the given zero-based unknown columns
// removed. The constant term always stays. The result may be left with
// no unknowns at all; callers removing columns system-wide are expected
// to deal with the degenerate constant-only form.
func (e Equation) Without(columns ...int) Equation {
	drop := make(map[int]bool, len(columns))
	for _, c := range columns {
		drop[c] = true
	}
	kept := make([]rat.Rational, 0, len(e.coeffs))
	for i, c := range e.coeffs {
		if i < len(e.coeffs)-1 && drop[i] {
			continue
		}
		kept = append(kept, c)
	}
	return Equation{coeffs: kept}
}

// String renders the equation algebraically with contiguous unknown
// labels, e.g. "2 x1 - 3 x2 + 5 = 0". It exists for debugging and
// %v-style test output only; column labels stop being contiguous once a
// system has dropped unused unknowns, so anything user-facing must go
// through Format with the system's label slice.
func (e Equation) String() string {
	labels := make([]int, e.Unknowns())
	for i := range labels {
		labels[i] = i + 1
	}
	return e.Format(labels)
}

// Format renders the equation using the supplied original 1-based label
// for each unknown column. len(labels) must equal Unknowns().
func (e Equation) Format(labels []int) string {
	var b strings.Builder
	sign := ""
	for i := 0; i < e.Unknowns(); i++ {
		c := e.coeffs[i]
		if c.Sign() < 0 {
			sign = "-"
			c = c.Neg()
		}
		if sign != "" {
			b.WriteString(sign)
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s x%d ", c, labels[i])
		sign = "+"
	}
	if sign == "" {
		// No unknowns survived: the equation is just "c = 0".
		fmt.Fprintf(&b, "%s = 0", e.Constant())
		return b.String()
	}
	constant := e.Constant()
	if constant.Sign() < 0 {
		sign = "-"
		constant = constant.Neg()
	}
	fmt.Fprintf(&b, "%s %s = 0", sign, constant)
	return b.String()
}
