// Package parser reads systems of linear equations from CSV input.
//
// Each record is one equation: the unknown coefficients in order,
// followed by the constant term. Tokens are rational literals (integer,
// decimal, or "p/q"); the package produces the coefficient rows the
// solver consumes and knows nothing about elimination itself.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/echelon-labs/echelon/internal/rat"
)

// ErrEmptyInput is returned when the input contains no records.
var ErrEmptyInput = errors.New("parser: input contains no equations")

// RowError reports a record that could not be turned into an equation.
// Row and Column are 1-based.
type RowError struct {
	Row    int
	Column int
	Err    error
}

func (e *RowError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("parser: row %d, column %d: %v", e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("parser: row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Read parses CSV records from r into coefficient rows. All records
// must have the same number of fields, and every record needs at least
// two (one unknown plus the constant term).
func Read(r io.Reader) ([][]rat.Rational, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	var rows [][]rat.Rational
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// The csv reader already reports positions for structural
			// problems such as ragged rows.
			return nil, fmt.Errorf("parser: %w", err)
		}
		if len(record) < 2 {
			return nil, &RowError{Row: line, Err: errors.New("an equation needs at least one unknown and a constant term")}
		}
		row := make([]rat.Rational, len(record))
		for i, tok := range record {
			v, err := rat.Parse(tok)
			if err != nil {
				return nil, &RowError{Row: line, Column: i + 1, Err: err}
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

// ReadFile parses the CSV file at path into coefficient rows.
func ReadFile(path string) ([][]rat.Rational, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("parser: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
