// Package quality implements the dataset quality heuristics engine: it
// profiles an in-memory table, evaluates threshold-based quality flags and
// aggregates them into a bounded score with an accept/reject decision.
//
// The engine is pure: no I/O, no logging, no shared mutable state. Loading
// tables and serving results belong to the callers (cmd, internal/server).
package quality

// Column is a named, ordered sequence of cell values. The empty string is
// the missing-value sentinel.
type Column struct {
	Name   string
	Values []string
}

// Table is an ordered sequence of columns of equal length. It is treated as
// immutable once handed to the engine.
type Table struct {
	Columns []Column
}

func isMissing(v string) bool {
	return v == ""
}

// FromRows builds a Table from a header row and data records, e.g. as
// produced by encoding/csv. Records whose length disagrees with the header
// make the table malformed.
func FromRows(header []string, records [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, &MalformedTableError{Reason: "table has no columns"}
	}

	cols := make([]Column, len(header))
	for i, name := range header {
		cols[i] = Column{Name: name, Values: make([]string, 0, len(records))}
	}
	for _, rec := range records {
		if len(rec) != len(header) {
			return nil, &MalformedTableError{Reason: "record length does not match header"}
		}
		for i, v := range rec {
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	return &Table{Columns: cols}, nil
}

// NumRows returns the row count, defined by the first column.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

func (t *Table) validate() error {
	if len(t.Columns) == 0 {
		return &MalformedTableError{Reason: "table has no columns"}
	}
	n := len(t.Columns[0].Values)
	for _, c := range t.Columns[1:] {
		if len(c.Values) != n {
			return &MalformedTableError{Reason: "columns have inconsistent lengths"}
		}
	}
	return nil
}
