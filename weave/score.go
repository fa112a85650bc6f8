package weave

import (
	"image"

	"threadart.org/pix"
)

// Score rates a candidate line. Every in-bounds pixel contributes its
// residual brightness scaled by the emphasis multiplier; the mean of
// the protection mask along the line, scaled by weight, is subtracted
// as a penalty. The result is floored at 0. A line with no in-bounds
// pixels scores 0.
func Score(pixels []image.Point, residual, emphasis, protection *pix.Grid, weight float64) float64 {
	var gain, penalty float64
	count := 0
	for _, p := range pixels {
		if !residual.In(p) {
			continue
		}
		count++
		gain += float64(residual.At(p.X, p.Y)) * float64(emphasis.At(p.X, p.Y))
		penalty += float64(protection.At(p.X, p.Y))
	}
	if count == 0 {
		return 0
	}
	score := gain/float64(count) - weight*penalty/float64(count)
	if score < 0 {
		return 0
	}
	return score
}

// Darken commits a line to the residual image: every in-bounds pixel
// loses darkness, clamped at 0. Repeated application drives the
// line's pixels to exactly 0 and never below.
func Darken(residual *pix.Grid, pixels []image.Point, darkness float32) {
	for _, p := range pixels {
		if !residual.In(p) {
			continue
		}
		v := residual.At(p.X, p.Y) - darkness
		if v < 0 {
			v = 0
		}
		residual.Set(p.X, p.Y, v)
	}
}
