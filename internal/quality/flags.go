package quality

// Thresholds are the named tuning knobs behind every quality flag. They are
// read-only once the engine is constructed, so concurrent evaluations can
// share them safely.
type Thresholds struct {
	MinRows              int     `koanf:"min_rows" json:"min_rows"`
	MaxColumns           int     `koanf:"max_columns" json:"max_columns"`
	MaxMissingShare      float64 `koanf:"max_missing_share" json:"max_missing_share"`
	MaxCategoricalUnique int     `koanf:"max_categorical_unique" json:"max_categorical_unique"`
	HighCardinalityShare float64 `koanf:"high_cardinality_share" json:"high_cardinality_share"`
	MaxDuplicateRowShare float64 `koanf:"max_duplicate_row_share" json:"max_duplicate_row_share"`
	MaxZeroShare         float64 `koanf:"max_zero_share" json:"max_zero_share"`
}

// DefaultThresholds returns the stock heuristic policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinRows:              100,
		MaxColumns:           100,
		MaxMissingShare:      0.5,
		MaxCategoricalUnique: 50,
		HighCardinalityShare: 0.5,
		MaxDuplicateRowShare: 0.7,
		MaxZeroShare:         0.5,
	}
}

// Flag names as they appear in serialized reports.
const (
	FlagTooFewRows                     = "too_few_rows"
	FlagTooManyColumns                 = "too_many_columns"
	FlagTooManyMissing                 = "too_many_missing"
	FlagNoNumericColumns               = "no_numeric_columns"
	FlagNoCategoricalColumns           = "no_categorical_columns"
	FlagHasConstantColumns             = "has_constant_columns"
	FlagHasHighCardinalityCategoricals = "has_high_cardinality_categoricals"
	FlagHighDuplicateValuesRatio       = "high_duplicate_values_ratio"
	FlagHasManyZeroValues              = "has_many_zero_values"
)

// FlagOrder is the display order used by report renderers.
var FlagOrder = []string{
	FlagTooFewRows,
	FlagTooManyColumns,
	FlagTooManyMissing,
	FlagNoNumericColumns,
	FlagNoCategoricalColumns,
	FlagHasConstantColumns,
	FlagHasHighCardinalityCategoricals,
	FlagHighDuplicateValuesRatio,
	FlagHasManyZeroValues,
}

// Flags is the closed set of boolean quality signals. Every key is always
// present; signals that cannot be computed for a given input stay false.
type Flags struct {
	TooFewRows                     bool `json:"too_few_rows"`
	TooManyColumns                 bool `json:"too_many_columns"`
	TooManyMissing                 bool `json:"too_many_missing"`
	NoNumericColumns               bool `json:"no_numeric_columns"`
	NoCategoricalColumns           bool `json:"no_categorical_columns"`
	HasConstantColumns             bool `json:"has_constant_columns"`
	HasHighCardinalityCategoricals bool `json:"has_high_cardinality_categoricals"`
	HighDuplicateValuesRatio       bool `json:"high_duplicate_values_ratio"`
	HasManyZeroValues              bool `json:"has_many_zero_values"`
}

// Map returns the flags keyed by their serialized names.
func (f Flags) Map() map[string]bool {
	return map[string]bool{
		FlagTooFewRows:                     f.TooFewRows,
		FlagTooManyColumns:                 f.TooManyColumns,
		FlagTooManyMissing:                 f.TooManyMissing,
		FlagNoNumericColumns:               f.NoNumericColumns,
		FlagNoCategoricalColumns:           f.NoCategoricalColumns,
		FlagHasConstantColumns:             f.HasConstantColumns,
		FlagHasHighCardinalityCategoricals: f.HasHighCardinalityCategoricals,
		FlagHighDuplicateValuesRatio:       f.HighDuplicateValuesRatio,
		FlagHasManyZeroValues:              f.HasManyZeroValues,
	}
}

// EvaluateFlags applies the threshold rules to a profile. Rules are
// independent of each other. When the table has zero rows every ratio-based
// flag stays false because the ratio cannot be computed; too_few_rows still
// fires.
func EvaluateFlags(p *TableProfile, th Thresholds) Flags {
	f := Flags{
		TooFewRows:     p.NRows < th.MinRows,
		TooManyColumns: p.NCols > th.MaxColumns,
	}

	numeric, categorical := 0, 0
	for _, c := range p.Columns {
		if c.Kind == KindNumeric {
			numeric++
		} else {
			categorical++
		}
		if c.Constant {
			f.HasConstantColumns = true
		}
		if c.Kind == KindCategorical && c.Unique > th.MaxCategoricalUnique {
			f.HasHighCardinalityCategoricals = true
		}
	}
	f.NoNumericColumns = numeric == 0
	f.NoCategoricalColumns = categorical == 0

	if p.NRows == 0 {
		return f
	}

	rows := float64(p.NRows)
	for _, c := range p.Columns {
		if float64(c.Missing)/rows > th.MaxMissingShare {
			f.TooManyMissing = true
		}
		if c.Kind == KindCategorical && float64(c.Unique) > th.HighCardinalityShare*rows {
			f.HasHighCardinalityCategoricals = true
		}
		if c.Kind == KindNumeric && float64(c.Zero)/rows > th.MaxZeroShare {
			f.HasManyZeroValues = true
		}
	}
	if float64(p.DuplicateRows)/rows > th.MaxDuplicateRowShare {
		f.HighDuplicateValuesRatio = true
	}
	return f
}
