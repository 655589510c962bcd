package quality

import "time"

// Shape is the row/column count of the profiled dataset.
type Shape struct {
	NRows int `json:"n_rows"`
	NCols int `json:"n_cols"`
}

// Report is the full evaluation result handed back to transport layers.
// It is produced fresh per call and never mutated afterwards.
type Report struct {
	OKForModel   bool    `json:"ok_for_model"`
	QualityScore float64 `json:"quality_score"`
	Message      string  `json:"message"`
	Flags        Flags   `json:"flags"`
	DatasetShape Shape   `json:"dataset_shape"`
	LatencyMS    float64 `json:"latency_ms"`
}

// Aggregate is a caller-supplied coarse summary of a dataset, used when the
// raw table is unavailable.
type Aggregate struct {
	NRows           int     `json:"n_rows"`
	NCols           int     `json:"n_cols"`
	MaxMissingShare float64 `json:"max_missing_share"`
	NumericCols     int     `json:"numeric_cols"`
	CategoricalCols int     `json:"categorical_cols"`
}

func (a Aggregate) validate() error {
	switch {
	case a.NRows < 0:
		return &InvalidAggregateError{Field: "n_rows", Reason: "must not be negative"}
	case a.NCols < 0:
		return &InvalidAggregateError{Field: "n_cols", Reason: "must not be negative"}
	case a.NumericCols < 0:
		return &InvalidAggregateError{Field: "numeric_cols", Reason: "must not be negative"}
	case a.CategoricalCols < 0:
		return &InvalidAggregateError{Field: "categorical_cols", Reason: "must not be negative"}
	case a.MaxMissingShare < 0 || a.MaxMissingShare > 1:
		return &InvalidAggregateError{Field: "max_missing_share", Reason: "must be in [0,1]"}
	}
	return nil
}

// Engine evaluates tables and aggregates against one threshold policy.
// It holds no mutable state, so a single Engine serves concurrent callers.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given threshold policy.
func NewEngine(th Thresholds) *Engine {
	return &Engine{thresholds: th}
}

// Thresholds returns the engine's policy.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// EvaluateTable runs the full pipeline over a table: profile, flags, score.
// The reported shape comes from the table itself and latency covers the
// whole pipeline. Returns a *MalformedTableError on structural problems.
func (e *Engine) EvaluateTable(t *Table) (*Report, error) {
	start := time.Now()

	p, err := BuildProfile(t)
	if err != nil {
		return nil, err
	}
	f := EvaluateFlags(p, e.thresholds)
	v := scoreFlags(f)

	return &Report{
		OKForModel:   v.OK,
		QualityScore: v.Score,
		Message:      v.Message,
		Flags:        f,
		DatasetShape: Shape{NRows: p.NRows, NCols: p.NCols},
		LatencyMS:    float64(time.Since(start)) / float64(time.Millisecond),
	}, nil
}

// EvaluateAggregate scores a coarse aggregate record. Only the five shape
// flags (too_few_rows, too_many_columns, too_many_missing,
// no_numeric_columns, no_categorical_columns) can be computed from an
// aggregate; the four column-level flags are always false here, not
// because the data is clean but because per-column profiles do not exist.
// Returns a *InvalidAggregateError on out-of-range fields.
func (e *Engine) EvaluateAggregate(a Aggregate) (*Report, error) {
	start := time.Now()

	if err := a.validate(); err != nil {
		return nil, err
	}
	th := e.thresholds
	f := Flags{
		TooFewRows:           a.NRows < th.MinRows,
		TooManyColumns:       a.NCols > th.MaxColumns,
		TooManyMissing:       a.NRows > 0 && a.MaxMissingShare > th.MaxMissingShare,
		NoNumericColumns:     a.NumericCols == 0,
		NoCategoricalColumns: a.CategoricalCols == 0,
	}
	v := scoreFlags(f)

	return &Report{
		OKForModel:   v.OK,
		QualityScore: v.Score,
		Message:      v.Message,
		Flags:        f,
		DatasetShape: Shape{NRows: a.NRows, NCols: a.NCols},
		LatencyMS:    float64(time.Since(start)) / float64(time.Millisecond),
	}, nil
}
