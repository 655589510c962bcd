package quality

// Scoring policy. Hard flags indicate the dataset is fundamentally short on
// data; any one of them rejects the dataset outright. Soft flags only chip
// away at the score.
const (
	hardPenalty = 0.30
	softPenalty = 0.10
	acceptScore = 0.50
)

const (
	msgSufficient  = "Dataset passes quality heuristics and looks sufficient for model training."
	msgHardFailure = "Insufficient data for model training; see flags for details."
	msgSoftFailure = "Dataset accumulates too many quality issues for model training; see flags for details."
)

type verdict struct {
	Score   float64
	OK      bool
	Message string
}

// scoreFlags aggregates flags into a score in [0,1]: start at 1.0, subtract
// a per-flag penalty by tier, clamp. The result is monotonically
// non-increasing in the number of raised flags, and all-false scores 1.0.
func scoreFlags(f Flags) verdict {
	score := 1.0
	hardFired := false

	for _, hard := range []bool{f.TooFewRows, f.TooManyMissing} {
		if hard {
			score -= hardPenalty
			hardFired = true
		}
	}
	for _, soft := range []bool{
		f.TooManyColumns,
		f.NoNumericColumns,
		f.NoCategoricalColumns,
		f.HasConstantColumns,
		f.HasHighCardinalityCategoricals,
		f.HighDuplicateValuesRatio,
		f.HasManyZeroValues,
	} {
		if soft {
			score -= softPenalty
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	ok := !hardFired && score >= acceptScore
	msg := msgSufficient
	if !ok {
		if hardFired {
			msg = msgHardFailure
		} else {
			msg = msgSoftFailure
		}
	}
	return verdict{Score: score, OK: ok, Message: msg}
}
