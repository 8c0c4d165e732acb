package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/echelon-labs/echelon/internal/solver"
)

// The JSON document is a stable machine-readable mirror of the
// narration: an ordered event list plus the terminal result. All
// rational values are encoded as their canonical "p/q" (or integer)
// strings so that exactness survives the encoding.

type jsonDocument struct {
	Events []jsonEvent `json:"events,omitempty"`
	Result *jsonResult `json:"result,omitempty"`
}

type jsonEquation struct {
	ID           int      `json:"id"`
	Coefficients []string `json:"coefficients"`
	Display      string   `json:"display"`
}

type jsonEvent struct {
	Kind       string         `json:"kind"`
	Column     int            `json:"column,omitempty"`
	FromRow    int            `json:"fromRow,omitempty"`
	EquationID int            `json:"equationId,omitempty"`
	PivotID    int            `json:"pivotId,omitempty"`
	KeptID     int            `json:"keptId,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	Factor     string         `json:"factor,omitempty"`
	Divisor    string         `json:"divisor,omitempty"`
	Labels     []int          `json:"labels,omitempty"`
	Removed    []int          `json:"removedLabels,omitempty"`
	Result     string         `json:"resultEquation,omitempty"`
	System     []jsonEquation `json:"system,omitempty"`
}

type jsonTerm struct {
	Unknown     int    `json:"unknown"`
	Coefficient string `json:"coefficient"`
}

type jsonPivot struct {
	Unknown  int        `json:"unknown"`
	Terms    []jsonTerm `json:"terms,omitempty"`
	Constant string     `json:"constant"`
	Display  string     `json:"display"`
}

type jsonResult struct {
	Kind       string            `json:"kind"`
	Values     map[string]string `json:"values,omitempty"`
	EquationID int               `json:"equationId,omitempty"`
	RHS        string            `json:"rhs,omitempty"`
	Pivots     []jsonPivot       `json:"pivots,omitempty"`
	Free       []int             `json:"free,omitempty"`
}

// JSON encodes the trace and result as a single indented document.
// The terminal Classified event is folded into the top-level result.
func (r *Reporter) JSON(events []solver.Event, res solver.Result) error {
	doc := jsonDocument{}
	for _, ev := range events {
		if c, ok := ev.(solver.Classified); ok {
			if res == nil {
				res = c.Result
			}
			continue
		}
		doc.Events = append(doc.Events, encodeEvent(ev))
	}
	if res != nil {
		enc, err := encodeResult(res)
		if err != nil {
			return err
		}
		doc.Result = enc
	}
	return writeJSON(r.w, doc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeEvent(ev solver.Event) jsonEvent {
	out := jsonEvent{Kind: string(ev.Kind())}
	switch e := ev.(type) {
	case solver.InitialSystem:
		out.Labels = e.Labels
		out.System = encodeSystem(e.Labels, e.Equations)
	case solver.VariablesRemoved:
		out.Removed = e.Labels
		out.Labels = e.Remaining
		out.System = encodeSystem(e.Remaining, e.Equations)
	case solver.EquationRemoved:
		out.EquationID = e.ID
		out.Reason = string(e.Reason)
		out.KeptID = e.KeptID
	case solver.Reordered:
		out.Column = e.Column
		out.FromRow = e.FromRow
		out.Labels = e.Labels
		out.System = encodeSystem(e.Labels, e.Equations)
	case solver.ColumnSkipped:
		out.Column = e.Column
	case solver.EliminatedRow:
		out.EquationID = e.FromID
		out.PivotID = e.PivotID
		out.Column = e.Column
		out.Labels = e.Labels
		out.Factor = e.Factor.String()
		out.Result = e.Result.Format(e.Labels)
	case solver.Normalized:
		out.EquationID = e.ID
		out.Column = e.Column
		out.Labels = e.Labels
		out.Divisor = e.Divisor.String()
		out.Result = e.Result.Format(e.Labels)
	case solver.FinalSystem:
		out.Labels = e.Labels
		out.System = encodeSystem(e.Labels, e.Equations)
	}
	return out
}

func encodeSystem(labels []int, eqs []solver.EquationState) []jsonEquation {
	out := make([]jsonEquation, 0, len(eqs))
	for _, eq := range eqs {
		coeffs := eq.Equation.Coefficients()
		strs := make([]string, len(coeffs))
		for i, c := range coeffs {
			strs[i] = c.String()
		}
		out = append(out, jsonEquation{
			ID:           eq.ID,
			Coefficients: strs,
			Display:      eq.Equation.Format(labels),
		})
	}
	return out
}

func encodeResult(res solver.Result) (*jsonResult, error) {
	switch v := res.(type) {
	case solver.Unique:
		values := make(map[string]string, len(v.Values))
		for label, val := range v.Values {
			values[fmt.Sprintf("x%d", label)] = val.String()
		}
		return &jsonResult{Kind: "unique", Values: values}, nil
	case solver.None:
		return &jsonResult{Kind: "none", EquationID: v.EquationID, RHS: v.RHS.String()}, nil
	case solver.Infinite:
		pivots := make([]jsonPivot, 0, len(v.Pivots))
		for _, p := range v.Pivots {
			terms := make([]jsonTerm, 0, len(p.Terms))
			for _, t := range p.Terms {
				terms = append(terms, jsonTerm{Unknown: t.Unknown, Coefficient: t.Coefficient.String()})
			}
			pivots = append(pivots, jsonPivot{
				Unknown:  p.Unknown,
				Terms:    terms,
				Constant: p.Constant.String(),
				Display:  formatPivot(p),
			})
		}
		free := append([]int(nil), v.Free...)
		sort.Ints(free)
		return &jsonResult{Kind: "infinite", Pivots: pivots, Free: free}, nil
	default:
		return nil, fmt.Errorf("report: unknown result %T", res)
	}
}
