package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echelon-labs/echelon/internal/cli/output"
	"github.com/echelon-labs/echelon/internal/rat"
	"github.com/echelon-labs/echelon/internal/solver"
)

func row(tokens ...string) []rat.Rational {
	out := make([]rat.Rational, len(tokens))
	for i, tok := range tokens {
		out[i] = rat.MustParse(tok)
	}
	return out
}

func solve(t *testing.T, rows ...[]rat.Rational) ([]solver.Event, solver.Result) {
	t.Helper()
	s, err := solver.New(rows)
	require.NoError(t, err)
	rec := solver.NewRecorder()
	res, err := s.Solve(rec)
	require.NoError(t, err)
	return rec.Events(), res
}

func TestNarrate_Unique(t *testing.T) {
	events, _ := solve(t,
		row("1", "2", "-1", "-1"),
		row("0", "1", "2", "-1"),
		row("1", "2", "0", "0"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeText})
	require.NoError(t, r.Narrate(events))

	got := buf.String()
	assert.Contains(t, got, "This is the system we'll start from:")
	assert.Contains(t, got, "E1: 1 x1 + 2 x2 - 1 x3 - 1 = 0")
	assert.Contains(t, got, "descending order of absolute value")
	assert.Contains(t, got, "This is now our final system")
	assert.Contains(t, got, "This system has only one solution, which is:")
	assert.Contains(t, got, "x1 = -6")
	assert.Contains(t, got, "x2 = 3")
	assert.Contains(t, got, "x3 = -1")
}

func TestNarrate_None(t *testing.T) {
	events, _ := solve(t,
		row("-2", "3", "-1"),
		row("1", "-2", "5"),
		row("-1", "1", "-3"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeText})
	require.NoError(t, r.Narrate(events))

	got := buf.String()
	assert.Contains(t, got, "From equation E3: 0 = 7")
	assert.Contains(t, got, "Impossible: this system has no solution.")
}

func TestSolution_Infinite(t *testing.T) {
	_, res := solve(t,
		row("-1", "0", "3", "-2"),
		row("2", "1", "1", "-1"),
		row("1", "1", "4", "-3"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeText})
	require.NoError(t, r.Solution(res))

	got := buf.String()
	assert.Contains(t, got, "This system has 3 unknowns in 2 equations, so it has infinitely many solutions.")
	assert.Contains(t, got, "x1 = 3 x3 - 2")
	assert.Contains(t, got, "x2 = -7 x3 + 5")
	assert.Contains(t, got, "x3 = any value")
}

func TestSolution_DegenerateInfinite(t *testing.T) {
	_, res := solve(t,
		row("0", "0", "0"),
		row("0", "0", "0"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeText})
	require.NoError(t, r.Solution(res))

	assert.Contains(t, buf.String(), "any value of any unknown is a solution")
}

func TestFormatPivot(t *testing.T) {
	cases := []struct {
		name string
		p    solver.PivotExpression
		want string
	}{
		{
			name: "terms and constant",
			p: solver.PivotExpression{
				Unknown:  1,
				Terms:    []solver.Term{{Unknown: 3, Coefficient: rat.FromInt(3)}},
				Constant: rat.FromInt(-2),
			},
			want: "x1 = 3 x3 - 2",
		},
		{
			name: "leading negative term",
			p: solver.PivotExpression{
				Unknown:  2,
				Terms:    []solver.Term{{Unknown: 3, Coefficient: rat.FromInt(-7)}},
				Constant: rat.FromInt(5),
			},
			want: "x2 = -7 x3 + 5",
		},
		{
			name: "constant only",
			p: solver.PivotExpression{
				Unknown:  4,
				Constant: rat.MustParse("1/2"),
			},
			want: "x4 = 1/2",
		},
		{
			name: "zero constant with terms",
			p: solver.PivotExpression{
				Unknown:  1,
				Terms:    []solver.Term{{Unknown: 2, Coefficient: rat.FromInt(1)}},
				Constant: rat.FromInt(0),
			},
			want: "x1 = 1 x2",
		},
		{
			name: "zero constant alone",
			p: solver.PivotExpression{
				Unknown:  1,
				Constant: rat.FromInt(0),
			},
			want: "x1 = 0",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatPivot(tc.p))
		})
	}
}

func TestNarrate_Matrix(t *testing.T) {
	events, _ := solve(t,
		row("1", "2", "-1"),
		row("3", "4", "-2"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeText, Matrix: true})
	require.NoError(t, r.Narrate(events))

	got := buf.String()
	assert.Contains(t, got, "X1")
	assert.Contains(t, got, "E1")
	assert.NotContains(t, got, "E1: ", "snapshots render as tables, not algebraic lines")
}

func TestNarrate_MatrixMarkdown(t *testing.T) {
	events, _ := solve(t,
		row("1", "2", "-1"),
		row("3", "4", "-2"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeMarkdown, Matrix: true})
	require.NoError(t, r.Narrate(events))

	assert.Contains(t, buf.String(), "| E1 |")
}

func TestJSON_Unique(t *testing.T) {
	events, res := solve(t,
		row("1", "2", "-1", "-1"),
		row("0", "1", "2", "-1"),
		row("1", "2", "0", "0"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeJSON})
	require.NoError(t, r.JSON(events, res))

	var doc struct {
		Events []struct {
			Kind string `json:"kind"`
		} `json:"events"`
		Result struct {
			Kind   string            `json:"kind"`
			Values map[string]string `json:"values"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "unique", doc.Result.Kind)
	assert.Equal(t, "-6", doc.Result.Values["x1"])
	assert.Equal(t, "3", doc.Result.Values["x2"])
	assert.Equal(t, "-1", doc.Result.Values["x3"])

	require.NotEmpty(t, doc.Events)
	assert.Equal(t, "InitialSystem", doc.Events[0].Kind)
	for _, ev := range doc.Events {
		assert.NotEqual(t, "Classified", ev.Kind, "Classified folds into the result")
	}
}

func TestJSON_PreservesLabelsAfterVariableRemoval(t *testing.T) {
	events, res := solve(t,
		row("1", "0", "1", "-4"),
		row("1", "0", "-1", "-2"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeJSON})
	require.NoError(t, r.JSON(events, res))

	var doc struct {
		Events []struct {
			Kind   string `json:"kind"`
			Labels []int  `json:"labels"`
			Result string `json:"resultEquation"`
		} `json:"events"`
		Result struct {
			Values map[string]string `json:"values"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	// x2 is unused, so every display after its removal must keep the
	// surviving unknowns named x1 and x3.
	var checked int
	for _, ev := range doc.Events {
		if ev.Kind != "EliminatedRow" && ev.Kind != "Normalized" {
			continue
		}
		checked++
		assert.Equal(t, []int{1, 3}, ev.Labels)
		assert.Contains(t, ev.Result, "x3")
		assert.NotContains(t, ev.Result, "x2")
	}
	require.Equal(t, 4, checked)

	assert.Contains(t, buf.String(), `"1 x1 + 0 x3 - 3 = 0"`)
	assert.Contains(t, buf.String(), `"0 x1 + 1 x3 - 1 = 0"`)
	assert.Equal(t, "3", doc.Result.Values["x1"])
	assert.Equal(t, "1", doc.Result.Values["x3"])
	_, hasX2 := doc.Result.Values["x2"]
	assert.False(t, hasX2)
}

func TestJSON_None(t *testing.T) {
	events, res := solve(t,
		row("-2", "3", "-1"),
		row("1", "-2", "5"),
		row("-1", "1", "-3"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeJSON})
	require.NoError(t, r.JSON(events, res))

	var doc struct {
		Result struct {
			Kind       string `json:"kind"`
			EquationID int    `json:"equationId"`
			RHS        string `json:"rhs"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "none", doc.Result.Kind)
	assert.Equal(t, 3, doc.Result.EquationID)
	assert.Equal(t, "7", doc.Result.RHS)
}

func TestJSON_Infinite(t *testing.T) {
	events, res := solve(t,
		row("-1", "0", "3", "-2"),
		row("2", "1", "1", "-1"),
		row("1", "1", "4", "-3"),
	)

	var buf bytes.Buffer
	r := New(&buf, Options{Mode: output.ModeJSON})
	require.NoError(t, r.JSON(events, res))

	var doc struct {
		Result struct {
			Kind   string `json:"kind"`
			Pivots []struct {
				Unknown int    `json:"unknown"`
				Display string `json:"display"`
			} `json:"pivots"`
			Free []int `json:"free"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "infinite", doc.Result.Kind)
	assert.Equal(t, []int{3}, doc.Result.Free)
	require.Len(t, doc.Result.Pivots, 2)
	assert.Equal(t, "x1 = 3 x3 - 2", doc.Result.Pivots[0].Display)
	assert.Equal(t, "x2 = -7 x3 + 5", doc.Result.Pivots[1].Display)
}
