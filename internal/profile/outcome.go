package profile

// OutcomeKind classifies how an extraction subtask settled.
type OutcomeKind int

// Outcome kinds. Empty and Failed both collapse to the sentinel in the
// aggregated profile; the distinction stays visible here for logging and
// tests.
const (
	OutcomeValue OutcomeKind = iota
	OutcomeEmpty
	OutcomeFailed
)

// Outcome is the settled result of one extraction subtask.
type Outcome struct {
	Kind OutcomeKind
	Raw  string
	Err  error
}

// Value wraps a non-empty extraction result.
func Value(raw string) Outcome {
	return Outcome{Kind: OutcomeValue, Raw: raw}
}

// Empty marks an extraction call that returned nothing.
func Empty() Outcome {
	return Outcome{Kind: OutcomeEmpty}
}

// Failed marks an extraction call that errored.
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Err: err}
}

// Settled reports the raw string a dependent subtask should observe: the
// extracted value, or the sentinel when the subtask settled empty or failed.
func (o Outcome) Settled() string {
	if o.Kind == OutcomeValue {
		return o.Raw
	}
	return Sentinel
}
