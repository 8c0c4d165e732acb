package solver

import (
	"sort"

	"github.com/echelon-labs/echelon/internal/rat"
)

// Solve minimizes the system, runs forward elimination with partial
// pivoting, and classifies the solution set. When sink is non-nil every
// step is reported to it, in order, before Solve returns.
//
// Solve mutates the receiver. If it returns an error the system's state
// is unspecified and the caller must discard it; a system can be solved
// at most once.
func (s *System) Solve(sink Sink) (Result, error) {
	if s.solved {
		return nil, &SystemError{Message: "system already solved"}
	}
	s.solved = true

	emit := func(Event) {}
	if sink != nil {
		emit = sink.Emit
	}

	emit(InitialSystem{Labels: s.Labels(), Equations: s.snapshot()})

	if err := s.minimize(emit); err != nil {
		return nil, err
	}

	pivotCols, err := s.eliminate(emit)
	if err != nil {
		return nil, err
	}

	s.removeZeroRows(emit, ReasonAllZero)
	emit(FinalSystem{Labels: s.Labels(), Equations: s.snapshot()})

	res, err := s.classify(pivotCols)
	if err != nil {
		return nil, err
	}
	emit(Classified{Result: res})
	return res, nil
}

// minimize strips unused unknowns, redundant equations, and tautologies.
// Applying it twice yields the same system as applying it once.
func (s *System) minimize(emit func(Event)) error {
	s.removeUnusedVariables(emit)
	if err := s.removeRedundant(emit); err != nil {
		return err
	}
	s.removeZeroRows(emit, ReasonAllZero)
	return nil
}

// removeUnusedVariables drops every unknown column whose coefficient is
// zero in all equations. Surviving unknowns keep their original labels.
func (s *System) removeUnusedVariables(emit func(Event)) {
	var unusedCols []int
	for c := 0; c < len(s.labels); c++ {
		used := false
		for _, n := range s.eqs {
			if !n.eq.Coefficient(c).IsZero() {
				used = true
				break
			}
		}
		if !used {
			unusedCols = append(unusedCols, c)
		}
	}
	if len(unusedCols) == 0 {
		return
	}

	removedLabels := make([]int, len(unusedCols))
	for i, c := range unusedCols {
		removedLabels[i] = s.labels[c]
	}
	for i := range s.eqs {
		s.eqs[i].eq = s.eqs[i].eq.Without(unusedCols...)
	}
	kept := s.labels[:0]
	drop := make(map[int]bool, len(unusedCols))
	for _, c := range unusedCols {
		drop[c] = true
	}
	for c, label := range s.labels {
		if !drop[c] {
			kept = append(kept, label)
		}
	}
	s.labels = kept

	emit(VariablesRemoved{
		Labels:    removedLabels,
		Remaining: s.Labels(),
		Equations: s.snapshot(),
	})

	// When every unknown was unused the rows degenerate to bare
	// constants; the empty ones carry no content and go now.
	if len(s.labels) == 0 {
		s.removeZeroRows(emit, ReasonUnusedCleanup)
	}
}

// removeRedundant scans equations pairwise in id order and deletes the
// later member of every equivalent pair, keeping the first occurrence
// of each equivalence class.
func (s *System) removeRedundant(emit func(Event)) error {
	keptBy := make(map[int]int)
	for i := 0; i < len(s.eqs); i++ {
		if _, gone := keptBy[s.eqs[i].id]; gone {
			continue
		}
		for j := i + 1; j < len(s.eqs); j++ {
			if _, gone := keptBy[s.eqs[j].id]; gone {
				continue
			}
			equiv, err := s.eqs[i].eq.Equivalent(s.eqs[j].eq)
			if err != nil {
				return err
			}
			if equiv {
				keptBy[s.eqs[j].id] = s.eqs[i].id
			}
		}
	}
	if len(keptBy) == 0 {
		return nil
	}

	remaining := s.eqs[:0]
	for _, n := range s.eqs {
		if kept, gone := keptBy[n.id]; gone {
			emit(EquationRemoved{ID: n.id, Reason: ReasonRedundant, KeptID: kept})
			continue
		}
		remaining = append(remaining, n)
	}
	s.eqs = remaining
	return nil
}

// removeZeroRows deletes every equation that is identically zero.
func (s *System) removeZeroRows(emit func(Event), reason RemovalReason) {
	remaining := s.eqs[:0]
	for _, n := range s.eqs {
		if n.eq.IsZero() {
			emit(EquationRemoved{ID: n.id, Reason: reason})
			continue
		}
		remaining = append(remaining, n)
	}
	s.eqs = remaining
}

// eliminate reduces the system with partial pivoting. It returns the
// zero-based column index of each pivot, in pivot-row order.
func (s *System) eliminate(emit func(Event)) ([]int, error) {
	var pivotCols []int
	k := 0
	for c := 0; c < len(s.labels) && k < len(s.eqs); {
		s.sortByAbsCoeff(k, c)
		emit(Reordered{
			Column:    s.labels[c],
			FromRow:   k + 1,
			Labels:    s.Labels(),
			Equations: s.snapshot(),
		})

		// After the descending sort the largest magnitude sits at row k;
		// a zero there means the whole candidate column is zero and the
		// unknown becomes a free parameter.
		if s.eqs[k].eq.Coefficient(c).IsZero() {
			emit(ColumnSkipped{Column: s.labels[c]})
			c++
			continue
		}

		pivot := s.eqs[k].eq.Coefficient(c)
		for z := range s.eqs {
			if z == k {
				continue
			}
			factor, err := s.eqs[z].eq.Coefficient(c).Div(pivot)
			if err != nil {
				return nil, err
			}
			reduced, err := s.eqs[z].eq.Sub(s.eqs[k].eq.Scale(factor))
			if err != nil {
				return nil, err
			}
			s.eqs[z].eq = reduced
			emit(EliminatedRow{
				FromID:  s.eqs[z].id,
				PivotID: s.eqs[k].id,
				Factor:  factor,
				Column:  s.labels[c],
				Labels:  s.Labels(),
				Result:  reduced,
			})
		}

		normalized, err := s.eqs[k].eq.Div(pivot)
		if err != nil {
			return nil, err
		}
		s.eqs[k].eq = normalized
		emit(Normalized{
			ID:      s.eqs[k].id,
			Column:  s.labels[c],
			Labels:  s.Labels(),
			Divisor: pivot,
			Result:  normalized,
		})

		pivotCols = append(pivotCols, c)
		k++
		c++
	}
	return pivotCols, nil
}

// sortByAbsCoeff stably sorts rows from..last by descending absolute
// coefficient at column. Ties keep their prior relative order.
func (s *System) sortByAbsCoeff(from, column int) {
	tail := s.eqs[from:]
	sort.SliceStable(tail, func(i, j int) bool {
		return tail[i].eq.Coefficient(column).Abs().Cmp(tail[j].eq.Coefficient(column).Abs()) > 0
	})
}

// classify inspects the reduced system and produces the terminal result.
// Classification is structural: it never relies on arithmetic failures.
func (s *System) classify(pivotCols []int) (Result, error) {
	n := len(s.labels)
	r := len(s.eqs)

	// A row 0·x + c = 0 with c nonzero is a contradiction; report it as
	// 0 = -c.
	for _, nb := range s.eqs {
		zeroUnknowns := true
		for c := 0; c < nb.eq.Unknowns(); c++ {
			if !nb.eq.Coefficient(c).IsZero() {
				zeroUnknowns = false
				break
			}
		}
		if zeroUnknowns && !nb.eq.Constant().IsZero() {
			return None{EquationID: nb.id, RHS: nb.eq.Constant().Neg()}, nil
		}
	}

	if r == 0 {
		// No constraint survived: every remaining unknown is free.
		return Infinite{Free: s.Labels()}, nil
	}

	if r != len(pivotCols) {
		return nil, &SystemError{Message: "pivot bookkeeping out of step with surviving rows"}
	}

	isPivot := make(map[int]bool, len(pivotCols))
	for _, c := range pivotCols {
		isPivot[c] = true
	}

	if r < n {
		var free []int
		for c, label := range s.labels {
			if !isPivot[c] {
				free = append(free, label)
			}
		}
		pivots := make([]PivotExpression, 0, r)
		for i, nb := range s.eqs {
			pc := pivotCols[i]
			expr := PivotExpression{
				Unknown:  s.labels[pc],
				Constant: nb.eq.Constant().Neg(),
			}
			for c := 0; c < nb.eq.Unknowns(); c++ {
				if c == pc || nb.eq.Coefficient(c).IsZero() {
					continue
				}
				expr.Terms = append(expr.Terms, Term{
					Unknown:     s.labels[c],
					Coefficient: nb.eq.Coefficient(c).Neg(),
				})
			}
			pivots = append(pivots, expr)
		}
		return Infinite{Pivots: pivots, Free: free}, nil
	}

	// r == n: one unit pivot per column, each row reads x_i + c = 0.
	values := make(map[int]rat.Rational, r)
	for i, nb := range s.eqs {
		values[s.labels[pivotCols[i]]] = nb.eq.Constant().Neg()
	}
	return Unique{Values: values}, nil
}
