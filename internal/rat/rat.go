// Package rat provides exact arbitrary-precision rational numbers.
//
// Rational is an immutable value type: every operation returns a new,
// fully reduced value with a positive denominator. No floating-point
// arithmetic is ever involved, so results are exact regardless of how
// many operations are chained.
package rat

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

// ErrDivisionByZero is returned when a zero denominator is constructed
// or a division by the zero rational is attempted.
var ErrDivisionByZero = fmt.Errorf("rat: division by zero")

// LiteralError reports a string that could not be parsed as a rational.
type LiteralError struct {
	Literal string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("rat: invalid literal %q", e.Literal)
}

// Rational is an exact rational number p/q with q > 0 and gcd(|p|, q) = 1.
// The zero value is the rational 0.
type Rational struct {
	val *big.Rat
}

var (
	ratZero = big.NewRat(0, 1)
	ratOne  = big.NewRat(1, 1)
)

// rat returns the underlying big.Rat, treating the zero value as 0.
// Callers must not mutate the result.
func (r Rational) rat() *big.Rat {
	if r.val == nil {
		return ratZero
	}
	return r.val
}

// Zero returns the rational 0.
func Zero() Rational { return Rational{} }

// One returns the rational 1.
func One() Rational { return FromInt(1) }

// FromInt returns the rational n/1.
func FromInt(n int64) Rational {
	return Rational{val: new(big.Rat).SetInt64(n)}
}

// New returns the reduced rational p/q. The sign is normalized onto the
// numerator. Returns ErrDivisionByZero when q is zero.
func New(p, q int64) (Rational, error) {
	if q == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return Rational{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}, nil
}

// Integer, decimal, and p/q literals. Exponents are deliberately not
// accepted: input tokens are decimal expansions, never float notation.
var (
	integerPattern  = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern  = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+$`)
	fractionPattern = regexp.MustCompile(`^[+-]?[0-9]+/[+-]?[0-9]+$`)
)

// Parse converts a string to a Rational. Accepted forms are integer
// literals ("7"), decimal literals ("-2.8", converted exactly by scaling
// by a power of ten), and fractions of two integers ("3/4").
// Returns a *LiteralError for anything else and ErrDivisionByZero for a
// zero denominator.
func Parse(s string) (Rational, error) {
	s = strings.TrimSpace(s)
	switch {
	case fractionPattern.MatchString(s):
		idx := strings.IndexByte(s, '/')
		num, ok := new(big.Int).SetString(s[:idx], 10)
		if !ok {
			return Rational{}, &LiteralError{Literal: s}
		}
		den, ok := new(big.Int).SetString(s[idx+1:], 10)
		if !ok {
			return Rational{}, &LiteralError{Literal: s}
		}
		if den.Sign() == 0 {
			return Rational{}, ErrDivisionByZero
		}
		return Rational{val: new(big.Rat).SetFrac(num, den)}, nil

	case integerPattern.MatchString(s), decimalPattern.MatchString(s):
		// big.Rat parses decimal expansions exactly: "2.5" becomes 5/2
		// with no intermediate float.
		v, ok := new(big.Rat).SetString(s)
		if !ok {
			return Rational{}, &LiteralError{Literal: s}
		}
		return Rational{val: v}, nil

	default:
		return Rational{}, &LiteralError{Literal: s}
	}
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
// Intended for tests and fixed tables.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("rat: MustParse(%q): %v", s, err))
	}
	return r
}

// Num returns the reduced numerator. The sign of the rational lives here.
func (r Rational) Num() *big.Int { return new(big.Int).Set(r.rat().Num()) }

// Den returns the reduced denominator, always positive.
func (r Rational) Den() *big.Int { return new(big.Int).Set(r.rat().Denom()) }

// Add returns r + o.
func (r Rational) Add(o Rational) Rational {
	return Rational{val: new(big.Rat).Add(r.rat(), o.rat())}
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return Rational{val: new(big.Rat).Sub(r.rat(), o.rat())}
}

// Mul returns r * o.
func (r Rational) Mul(o Rational) Rational {
	return Rational{val: new(big.Rat).Mul(r.rat(), o.rat())}
}

// Div returns r / o, or ErrDivisionByZero when o is zero.
func (r Rational) Div(o Rational) (Rational, error) {
	if o.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return Rational{val: new(big.Rat).Quo(r.rat(), o.rat())}, nil
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{val: new(big.Rat).Neg(r.rat())}
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	return Rational{val: new(big.Rat).Abs(r.rat())}
}

// Sign returns -1, 0, or +1 depending on the sign of r.
func (r Rational) Sign() int { return r.rat().Sign() }

// IsZero reports whether r is 0.
func (r Rational) IsZero() bool { return r.rat().Sign() == 0 }

// IsOne reports whether r is 1.
func (r Rational) IsOne() bool { return r.rat().Cmp(ratOne) == 0 }

// Cmp compares r and o by cross multiplication, returning -1, 0, or +1.
// Denominators are always positive, so no sign correction is needed.
func (r Rational) Cmp(o Rational) int { return r.rat().Cmp(o.rat()) }

// Equal reports whether r and o denote the same rational.
func (r Rational) Equal(o Rational) bool { return r.Cmp(o) == 0 }

// String renders r as "p/q", or just "p" when the denominator is 1.
// Parse(r.String()) always reproduces an equal Rational.
func (r Rational) String() string {
	v := r.rat()
	if v.IsInt() {
		return v.Num().String()
	}
	return v.RatString()
}
