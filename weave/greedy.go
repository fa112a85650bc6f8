package weave

import (
	"context"
	"runtime"
	"sync"

	"threadart.org/internal/logging"
)

// maxStall is the number of consecutive iterations without an
// accepted line before the engine gives up. Fixed; it does not scale
// with the nail count.
const maxStall = 3

// Greedy selects, at every step, the candidate line with the highest
// immediate improvement of the residual image. It is a local
// heuristic: committed lines are never reconsidered.
type Greedy struct {
	session *Session
	workers int
}

// NewGreedy returns a greedy generator for the session.
func NewGreedy(s *Session) *Greedy {
	return &Greedy{
		session: s,
		workers: runtime.GOMAXPROCS(0),
	}
}

// Generate runs the greedy loop and returns the generated path; the
// session retains the path for snapshots. Returns a ParamError for
// invalid parameters, before any iteration. On cancellation the
// partial path is returned together with the context error; it is
// valid, renderable output. A run whose path never grew beyond the
// starting nail reports ErrNoProgress.
func (g *Greedy) Generate(ctx context.Context, p Params, sink Sink) ([]int, error) {
	if p.MaxLines <= 0 {
		return nil, &ParamError{Param: "line count", Reason: "must be positive"}
	}
	if p.LineDarkness <= 0 {
		return nil, &ParamError{Param: "line darkness", Reason: "must be positive"}
	}
	if sink == nil {
		sink = SinkFunc(func(Progress) {})
	}
	log := logging.Logger()
	log.Info("weave: starting greedy generation",
		"lines", p.MaxLines, "darkness", p.LineDarkness, "min_score", p.MinScore)

	s := g.session
	s.resetPath()
	current := 0
	stalled := 0
	done := 0
	for iter := 0; iter < p.MaxLines; iter++ {
		select {
		case <-ctx.Done():
			return s.Path(), ctx.Err()
		default:
		}
		next, score, ok := g.bestNext(current, p.MinScore)
		if !ok {
			stalled++
			if stalled >= maxStall {
				log.Info("weave: stalled, no candidate meets the minimum score",
					"lines", len(s.Path())-1)
				break
			}
			continue
		}
		stalled = 0
		s.commit(current, next, p.LineDarkness)
		current = next
		done++
		if (p.ProgressEvery > 0 && done%p.ProgressEvery == 0) || iter == p.MaxLines-1 {
			recent := p.ProgressEvery
			if recent <= 0 {
				recent = 1
			}
			sink.Report(Progress{
				LinesDone: done,
				Total:     p.MaxLines,
				Recent:    s.recent(recent),
				Score:     score,
			})
		}
	}

	path := s.Path()
	if len(path) <= 1 {
		return path, ErrNoProgress
	}
	log.Info("weave: generation complete", "lines", len(path)-1)
	return path, nil
}

// bestNext scores every candidate nail in parallel and picks the best
// one at or above minScore. Equal scores keep the lowest nail index
// so runs are reproducible.
func (g *Greedy) bestNext(current int, minScore float64) (int, float64, bool) {
	s := g.session
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.nails)
	scores := make([]float64, n)
	chunk := (n + g.workers - 1) / g.workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for cand := lo; cand < hi; cand++ {
				if cand == current {
					continue
				}
				scores[cand] = Score(s.cache.Get(current, cand), s.residual, s.emphasis, s.protection, s.weight)
			}
		}(lo, hi)
	}
	wg.Wait()

	best, bestScore := -1, 0.0
	for cand, sc := range scores {
		if cand == current || sc < minScore {
			continue
		}
		if best < 0 || sc > bestScore {
			best, bestScore = cand, sc
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestScore, true
}
