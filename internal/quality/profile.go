package quality

import (
	"strconv"
	"strings"
)

// ColumnKind classifies a column as numeric or categorical.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// ColumnProfile holds the per-column statistics the flag evaluator works on.
type ColumnProfile struct {
	Name       string
	Kind       ColumnKind
	Rows       int
	Missing    int // cells equal to the missing sentinel
	Unique     int // distinct non-missing values
	Zero       int // values equal to 0, numeric columns only
	MostCommon int // frequency of the single most frequent non-missing value
	Constant   bool
}

// TableProfile is the profile of a whole table, built once and read-only.
type TableProfile struct {
	NRows         int
	NCols         int
	Columns       []ColumnProfile
	DuplicateRows int // rows that exactly repeat an earlier row
}

// BuildProfile computes a TableProfile in a single pass over the table.
// It returns a *MalformedTableError if the table has no columns or its
// columns have inconsistent lengths.
func BuildProfile(t *Table) (*TableProfile, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	p := &TableProfile{
		NRows:   t.NumRows(),
		NCols:   t.NumCols(),
		Columns: make([]ColumnProfile, 0, t.NumCols()),
	}
	for _, c := range t.Columns {
		p.Columns = append(p.Columns, profileColumn(c))
	}
	p.DuplicateRows = countDuplicateRows(t)
	return p, nil
}

// profileColumn classifies and counts one column. A column is numeric only
// if every non-missing value parses as a number; a single non-numeric token
// forces categorical. A column with no non-missing values at all is
// categorical, since nothing confirmed a numeric reading.
func profileColumn(c Column) ColumnProfile {
	p := ColumnProfile{Name: c.Name, Rows: len(c.Values)}

	counts := make(map[string]int)
	numeric := true
	parsedAny := false
	zeros := 0

	for _, v := range c.Values {
		if isMissing(v) {
			p.Missing++
			continue
		}
		counts[v]++
		if !numeric {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			continue
		}
		parsedAny = true
		if f == 0 {
			zeros++
		}
	}

	p.Kind = KindCategorical
	if numeric && parsedAny {
		p.Kind = KindNumeric
		p.Zero = zeros
	}

	p.Unique = len(counts)
	for _, n := range counts {
		if n > p.MostCommon {
			p.MostCommon = n
		}
	}
	p.Constant = p.MostCommon > 0 && p.MostCommon == p.Rows-p.Missing
	return p
}

// countDuplicateRows counts rows equal to an earlier row by full-row
// equality. Missing cells compare equal to missing cells.
func countDuplicateRows(t *Table) int {
	nRows := t.NumRows()
	if nRows == 0 {
		return 0
	}

	seen := make(map[string]struct{}, nRows)
	cells := make([]string, t.NumCols())
	dups := 0
	for r := 0; r < nRows; r++ {
		for i, c := range t.Columns {
			cells[i] = c.Values[r]
		}
		key := strings.Join(cells, "\x1f")
		if _, ok := seen[key]; ok {
			dups++
			continue
		}
		seen[key] = struct{}{}
	}
	return dups
}
