// Package weave generates string art: an ordered sequence of nail
// indices whose connecting thread lines approximate a target image.
// The greedy engine repeatedly picks the line that removes the most
// remaining darkness from a residual image, weighted by feature
// emphasis and negative space protection masks.
package weave

import (
	"image"
	"image/color"

	"threadart.org/frame"
)

// Config collects the session options recognized by the generator.
type Config struct {
	// Nails is the number of pegs around the circular frame.
	Nails int
	// Size is the square canvas size in pixels.
	Size int
	// MaxLines bounds the number of lines to generate.
	MaxLines int
	// LineDarkness is the brightness removed from every pixel of a
	// committed line.
	LineDarkness float32
	// MinScore rejects candidate lines below this improvement score.
	MinScore float64
	// ProgressEvery is the progress event cadence in lines.
	ProgressEvery int
	// Emphasis enables the feature emphasis mask.
	Emphasis bool
	// Protection enables the negative space mask with the given
	// penalty weight and brightness threshold.
	Protection          bool
	ProtectionWeight    float64
	ProtectionThreshold float32
	// LineColor is the thread color used by renderers.
	LineColor color.RGBA
}

// DefaultConfig returns the standard portrait settings: two nails per
// degree on a 500 pixel canvas.
func DefaultConfig() Config {
	return Config{
		Nails:               720,
		Size:                500,
		MaxLines:            5000,
		LineDarkness:        25,
		MinScore:            10,
		ProgressEvery:       20,
		Emphasis:            true,
		Protection:          false,
		ProtectionWeight:    0.5,
		ProtectionThreshold: 200,
		LineColor:           color.RGBA{A: 255},
	}
}

// Ring returns the nail ring implied by the canvas size. The nails
// sit on a circle inset slightly from the canvas edge.
func (c Config) Ring() frame.Ring {
	return frame.Ring{
		N:      c.Nails,
		Center: image.Pt(c.Size/2, c.Size/2),
		Radius: c.Size/2 - 5,
	}
}

// Params returns the per-run generation parameters of the config.
func (c Config) Params() Params {
	return Params{
		MaxLines:      c.MaxLines,
		LineDarkness:  c.LineDarkness,
		MinScore:      c.MinScore,
		ProgressEvery: c.ProgressEvery,
	}
}
