package weave

import (
	"image"
	"slices"
	"sync"

	"threadart.org/internal/logging"
	"threadart.org/linecache"
	"threadart.org/mask"
	"threadart.org/pix"
)

// Session owns the shared state of a generation run: the immutable
// target image, masks, nail layout and line cache, plus the mutable
// residual image and path. The engine is the only writer; anything
// running alongside it (live renderers, checkpoint sinks) reads
// through Snapshot or the copying accessors.
type Session struct {
	cfg   Config
	nails []image.Point
	cache *linecache.Cache

	// target and the masks are immutable after construction. residual
	// and path are guarded by mu: scoring holds the read lock, the
	// commit step the write lock.
	mu         sync.RWMutex
	target     *pix.Grid
	residual   *pix.Grid
	emphasis   *pix.Grid
	protection *pix.Grid
	weight     float64
	path       []int
}

// NewSession preprocesses src and prepares all shared state. oracle
// may be nil, selecting the built-in dark region detector; cache may
// be nil, selecting a fresh build for the config's ring. A failing
// oracle degrades to the neutral emphasis mask; only an invalid
// config fails session construction.
func NewSession(src image.Image, cfg Config, oracle mask.Detector, cache *linecache.Cache) (*Session, error) {
	if cfg.Size <= 0 {
		return nil, &ParamError{Param: "canvas size", Reason: "must be positive"}
	}
	if cfg.Nails < 2 {
		return nil, &ParamError{Param: "nail count", Reason: "need at least two nails"}
	}
	log := logging.Logger()

	target := pix.Fit(src, cfg.Size)
	ring := cfg.Ring()
	if cache == nil || cache.Fingerprint() != ring.Fingerprint() {
		if cache != nil {
			log.Warn("weave: supplied line cache does not match the ring, rebuilding")
		}
		cache = linecache.New(ring)
	}

	emphasis := mask.Neutral(cfg.Size, cfg.Size)
	if cfg.Emphasis {
		if oracle == nil {
			oracle = mask.DarkRegions{}
		}
		regions, err := oracle.Detect(target)
		if err != nil {
			log.Warn("weave: region detection failed, emphasis disabled", "err", err)
		} else {
			emphasis = mask.Emphasis(target, regions)
			log.Info("weave: emphasis mask ready", "regions", len(regions))
		}
	}

	protection := mask.NoProtection(cfg.Size, cfg.Size)
	var weight float64
	if cfg.Protection {
		protection = mask.Protection(target, cfg.ProtectionThreshold)
		weight = cfg.ProtectionWeight
	}

	return &Session{
		cfg:        cfg,
		nails:      ring.Layout(),
		cache:      cache,
		target:     target,
		residual:   pix.Invert(target),
		emphasis:   emphasis,
		protection: protection,
		weight:     weight,
		path:       []int{0},
	}, nil
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Nails returns a copy of the nail coordinates.
func (s *Session) Nails() []image.Point {
	return slices.Clone(s.nails)
}

// Path returns a copy of the current path.
func (s *Session) Path() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.path)
}

// Snapshot returns a consistent copy of the nail coordinates and the
// path, for renderers running while the engine is active.
func (s *Session) Snapshot() ([]image.Point, []int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.nails), slices.Clone(s.path)
}

// Residual returns a copy of the residual image, for visualization
// and debugging.
func (s *Session) Residual() *pix.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.residual.Clone()
}

func (s *Session) resetPath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = append(s.path[:0], 0)
}

// commit applies an accepted line. The residual update and the path
// append happen under the write lock as one unit so snapshots never
// observe one without the other.
func (s *Session) commit(from, to int, darkness float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	Darken(s.residual, s.cache.Get(from, to), darkness)
	s.path = append(s.path, to)
}

// recent returns a copy of the last n path entries.
func (s *Session) recent(n int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.path) {
		n = len(s.path)
	}
	return slices.Clone(s.path[len(s.path)-n:])
}
