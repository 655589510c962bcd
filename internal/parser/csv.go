// Package parser loads CSV data into the engine's table model. Keeping the
// read path here means the quality engine itself never touches files or
// request bodies.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/dataqa-labs/tablecheck/internal/quality"
)

// ReadTable reads CSV from r, taking the first record as the header row.
// Empty cells become missing values. encoding/csv already rejects records
// whose field count differs from the header.
func ReadTable(r io.Reader) (*quality.Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make([]quality.Column, len(header))
	for i, name := range header {
		cols[i].Name = name
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		for i, v := range record {
			cols[i].Values = append(cols[i].Values, v)
		}
	}

	return &quality.Table{Columns: cols}, nil
}
