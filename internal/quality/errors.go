package quality

// MalformedTableError reports a structural problem in a supplied table:
// ragged columns or a table with no columns at all. An empty but
// structurally valid table is not malformed, it is just low quality.
type MalformedTableError struct {
	Reason string
}

func (e *MalformedTableError) Error() string {
	return "malformed table: " + e.Reason
}

// InvalidAggregateError reports a caller-supplied aggregate record with
// missing or out-of-range fields.
type InvalidAggregateError struct {
	Field  string
	Reason string
}

func (e *InvalidAggregateError) Error() string {
	return "invalid aggregate: " + e.Field + " " + e.Reason
}
