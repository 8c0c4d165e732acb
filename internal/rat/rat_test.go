package rat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Normalizes(t *testing.T) {
	tests := []struct {
		name string
		p, q int64
		want string
	}{
		{"reduced", 2, 3, "2/3"},
		{"reducible", 4, 6, "2/3"},
		{"negative denominator", 3, -6, "-1/2"},
		{"both negative", -3, -6, "1/2"},
		{"integer result", 8, 4, "2"},
		{"zero numerator", 0, 5, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.p, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
			assert.Positive(t, r.Den().Sign(), "denominator must stay positive")
		})
	}
}

func TestNew_ZeroDenominator(t *testing.T) {
	_, err := New(1, 0)
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestScalarMultipleEquality(t *testing.T) {
	// Rational(a,b) == Rational(k*a, k*b) for every nonzero k.
	for _, k := range []int64{1, -1, 2, -3, 7, 100} {
		a, err := New(5, 8)
		require.NoError(t, err)
		b, err := New(5*k, 8*k)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "5/8 should equal %d/%d", 5*k, 8*k)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7", "7"},
		{"-12", "-12"},
		{"+4", "4"},
		{"2.5", "5/2"},
		{"-2.8", "-14/5"},
		{"0.125", "1/8"},
		{"3/4", "3/4"},
		{"4/6", "2/3"},
		{"-3/6", "-1/2"},
		{"3/-6", "-1/2"},
		{" 5/10 ", "1/2"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1/2/3", "2.5/3", "1e3", "--4", "3."} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			var lerr *LiteralError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, in, lerr.Literal)
		})
	}
}

func TestParse_ZeroDenominator(t *testing.T) {
	_, err := Parse("3/0")
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestString_RoundTrip(t *testing.T) {
	values := []Rational{
		Zero(),
		One(),
		FromInt(-42),
		MustParse("22/7"),
		MustParse("-2.8"),
		MustParse("355/113"),
	}
	for _, v := range values {
		got, err := Parse(v.String())
		require.NoError(t, err)
		assert.True(t, v.Equal(got), "round trip of %s", v)
	}
}

func TestArithmetic(t *testing.T) {
	half := MustParse("1/2")
	third := MustParse("1/3")

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Sub(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())

	q, err := half.Div(third)
	require.NoError(t, err)
	assert.Equal(t, "3/2", q.String())
}

func TestDiv_ByZero(t *testing.T) {
	_, err := One().Div(Zero())
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestRingLaws(t *testing.T) {
	a := MustParse("3/7")
	b := MustParse("-5/2")
	c := MustParse("11/4")

	assert.True(t, a.Add(b).Equal(b.Add(a)), "commutativity of addition")
	assert.True(t, a.Add(b).Add(c).Equal(a.Add(b.Add(c))), "associativity of addition")
	assert.True(t, a.Mul(b.Add(c)).Equal(a.Mul(b).Add(a.Mul(c))), "distributivity")
	assert.True(t, a.Sub(b).Equal(a.Add(FromInt(-1).Mul(b))), "subtraction as negated addition")

	q, err := a.Div(b)
	require.NoError(t, err)
	assert.True(t, q.Mul(b).Equal(a), "(a/b)*b == a")
}

func TestCmp(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1/2", "1/3", 1},
		{"1/3", "1/2", -1},
		{"2/4", "1/2", 0},
		{"-1/2", "1/2", -1},
		{"-1/2", "-1/3", -1},
		{"0", "0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.a).Cmp(MustParse(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestZeroValueUsable(t *testing.T) {
	var r Rational
	assert.True(t, r.IsZero())
	assert.Equal(t, "0", r.String())
	assert.True(t, r.Add(One()).Equal(One()))
}

func TestNegAbsSign(t *testing.T) {
	r := MustParse("-3/4")
	assert.Equal(t, "3/4", r.Neg().String())
	assert.Equal(t, "3/4", r.Abs().String())
	assert.Equal(t, -1, r.Sign())
	assert.Equal(t, 1, r.Neg().Sign())
	assert.Equal(t, 0, Zero().Sign())
}
