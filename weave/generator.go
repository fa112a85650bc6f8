package weave

import (
	"context"
	"errors"
	"fmt"
)

// Params controls a single generation run.
type Params struct {
	// MaxLines is the number of lines to attempt; must be positive.
	MaxLines int
	// LineDarkness is the brightness removed per committed line; must
	// be positive.
	LineDarkness float32
	// MinScore rejects candidates scoring below it.
	MinScore float64
	// ProgressEvery is the sink cadence in lines; when zero or
	// negative only the final line is reported.
	ProgressEvery int
}

// A Generator produces a thread path for its session. Only the greedy
// strategy exists today; the interface leaves room for alternatives
// without touching callers.
type Generator interface {
	Generate(ctx context.Context, p Params, sink Sink) ([]int, error)
}

// ParamError reports an invalid generation parameter. It is returned
// before any iteration runs, leaving the session untouched.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("weave: invalid %s: %s", e.Param, e.Reason)
}

// ErrNoProgress is reported when a run ends without a single accepted
// line. No iteration failed, but the output is unusable.
var ErrNoProgress = errors.New("weave: no line improved the image")
