package solver

import (
	"github.com/echelon-labs/echelon/internal/equation"
	"github.com/echelon-labs/echelon/internal/rat"
)

// EventKind is the stable discriminator for trace events.
type EventKind string

const (
	KindInitialSystem    EventKind = "InitialSystem"
	KindVariablesRemoved EventKind = "VariablesRemoved"
	KindEquationRemoved  EventKind = "EquationRemoved"
	KindReordered        EventKind = "Reordered"
	KindColumnSkipped    EventKind = "ColumnSkipped"
	KindEliminatedRow    EventKind = "EliminatedRow"
	KindNormalized       EventKind = "Normalized"
	KindFinalSystem      EventKind = "FinalSystem"
	KindClassified       EventKind = "Classified"
)

// RemovalReason states why an equation was dropped from the system.
type RemovalReason string

const (
	// ReasonRedundant marks an equation equivalent to an earlier one.
	ReasonRedundant RemovalReason = "redundant"
	// ReasonAllZero marks a tautology (0 = 0).
	ReasonAllZero RemovalReason = "all-zero"
	// ReasonUnusedCleanup marks an equation left without content after
	// unused-variable removal stripped every unknown column.
	ReasonUnusedCleanup RemovalReason = "unused-variable-cleanup"
)

// Event is one step of the solver's reasoning. The set of implementations
// is closed; renderers switch over the concrete types.
type Event interface {
	Kind() EventKind
}

// EquationState is a snapshot of one equation at the time of an event.
type EquationState struct {
	ID       int
	Equation equation.Equation
}

// InitialSystem records the system as constructed, before any phase runs.
type InitialSystem struct {
	Labels    []int
	Equations []EquationState
}

// VariablesRemoved records unknowns whose coefficient was zero in every
// equation. Labels are the original 1-based unknown labels; remaining
// unknowns keep their original labels.
type VariablesRemoved struct {
	Labels    []int
	Remaining []int
	Equations []EquationState
}

// EquationRemoved records the removal of one equation during
// minimization or post-elimination cleanup.
type EquationRemoved struct {
	ID     int
	Reason RemovalReason
	// KeptID is the id of the earlier equivalent equation when
	// Reason is ReasonRedundant, and zero otherwise.
	KeptID int
}

// Reordered records the stable pivot sort of rows FromRow..last by
// descending absolute coefficient at Column.
type Reordered struct {
	Column    int // original unknown label
	FromRow   int // 1-based physical row position
	Labels    []int
	Equations []EquationState
}

// ColumnSkipped records a column whose candidate rows all carry a zero
// coefficient; its unknown becomes a free parameter.
type ColumnSkipped struct {
	Column int // original unknown label
}

// EliminatedRow records one row update during elimination:
// row FromID becomes FromID - Factor * PivotID. Labels carries the
// original 1-based label of each surviving column so renderers can
// display Result without renumbering.
type EliminatedRow struct {
	FromID  int
	PivotID int
	Factor  rat.Rational
	Column  int // original unknown label being eliminated
	Labels  []int
	Result  equation.Equation
}

// Normalized records the division of a pivot row by its own pivot
// coefficient so that it becomes exactly 1. Labels carries the original
// 1-based label of each surviving column.
type Normalized struct {
	ID      int
	Column  int // original unknown label of the pivot
	Labels  []int
	Divisor rat.Rational
	Result  equation.Equation
}

// FinalSystem records the system after elimination and cleanup,
// immediately before classification.
type FinalSystem struct {
	Labels    []int
	Equations []EquationState
}

// Classified records the terminal result of the solve.
type Classified struct {
	Result Result
}

func (InitialSystem) Kind() EventKind    { return KindInitialSystem }
func (VariablesRemoved) Kind() EventKind { return KindVariablesRemoved }
func (EquationRemoved) Kind() EventKind  { return KindEquationRemoved }
func (Reordered) Kind() EventKind        { return KindReordered }
func (ColumnSkipped) Kind() EventKind    { return KindColumnSkipped }
func (EliminatedRow) Kind() EventKind    { return KindEliminatedRow }
func (Normalized) Kind() EventKind       { return KindNormalized }
func (FinalSystem) Kind() EventKind      { return KindFinalSystem }
func (Classified) Kind() EventKind       { return KindClassified }

// Sink receives trace events synchronously, in elimination order.
// Emission is a pure side channel: attaching no sink (or a no-op sink)
// never changes the computed result.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Emit calls f(ev).
func (f SinkFunc) Emit(ev Event) { f(ev) }

// Recorder is a Sink that stores events in order of emission.
type Recorder struct {
	events []Event
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Emit appends the event to the recording.
func (r *Recorder) Emit(ev Event) { r.events = append(r.events, ev) }

// Events returns the recorded events in chronological order.
func (r *Recorder) Events() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
