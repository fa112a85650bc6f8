package weave

import (
	"log/slog"

	"threadart.org/internal/logging"
)

// SetLogger configures the logger used by weave and the other
// threadart packages. By default they produce no output. Pass nil to
// restore the silent default. Safe for concurrent use.
//
// Levels used:
//   - [slog.LevelInfo]: run lifecycle (start, stall, completion)
//   - [slog.LevelWarn]: non-fatal degradations (failed region
//     detection, unusable persisted caches, checkpoint errors)
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}
