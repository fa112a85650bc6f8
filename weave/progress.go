package weave

// Progress describes the state of a run after an accepted line.
type Progress struct {
	// LinesDone counts the accepted lines so far.
	LinesDone int
	// Total is the requested line count of the run.
	Total int
	// Recent holds the most recent path entries, at most one cadence
	// worth.
	Recent []int
	// Score is the improvement score of the most recent line.
	Score float64
}

// A Sink receives progress events. Report runs synchronously between
// iterations: the next iteration does not start until it returns, so
// a sink may safely snapshot and render the session. Sinks performing
// checkpoint I/O must absorb failures themselves; a failed checkpoint
// never aborts a run.
type Sink interface {
	Report(Progress)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Progress)

func (f SinkFunc) Report(p Progress) { f(p) }
