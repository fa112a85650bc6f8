// Package bresenham implements a line stepper with the Bresenham
// algorithm.
package bresenham

import "image"

type Line struct {
	// d is the minor axis error, doubled.
	d int
	// dmajor, dminor is the line vector.
	dmajor, dminor int
	// swap is 0 if the major axis is x, 1 otherwise.
	swap uint8
}

// Reset the stepper with a signed distance. It returns the
// directions and the number of steps.
func (l *Line) Reset(dist image.Point) (uint8, uint8, int) {
	var dirx, diry uint8
	if dist.X < 0 {
		dirx = 1
		dist.X = -dist.X
	}
	if dist.Y < 0 {
		diry = 1
		dist.Y = -dist.Y
	}
	l.swap = 0
	if dist.Y > dist.X {
		l.swap = 1
		dist.X, dist.Y = dist.Y, dist.X
	}
	l.dmajor, l.dminor = dist.X, dist.Y
	l.d = 2*l.dminor - l.dmajor
	return dirx, diry, l.dmajor
}

func (l *Line) Step() (uint8, uint8) {
	var maj, min uint8 = 1, 0
	if l.d > 0 {
		min = 1
	}
	l.d -= 2 * l.dmajor * int(min)
	l.d += 2 * l.dminor
	return (maj &^ l.swap) | (min & l.swap),
		(maj & l.swap) | (min &^ l.swap)
}

// Points returns every pixel the segment from a to b passes through,
// both endpoints included exactly once. The walk always runs from the
// canonical endpoint, so Points(a, b) and Points(b, a) cover the same
// pixels, in reverse order of each other.
func Points(a, b image.Point) []image.Point {
	if a == b {
		return []image.Point{a}
	}
	flip := b.Y < a.Y || (b.Y == a.Y && b.X < a.X)
	if flip {
		a, b = b, a
	}
	var l Line
	dirx, diry, steps := l.Reset(b.Sub(a))
	pts := make([]image.Point, 0, steps+1)
	pts = append(pts, a)
	p := a
	for i := 0; i < steps; i++ {
		dx, dy := l.Step()
		if dx == 1 {
			if dirx == 1 {
				p.X--
			} else {
				p.X++
			}
		}
		if dy == 1 {
			if diry == 1 {
				p.Y--
			} else {
				p.Y++
			}
		}
		pts = append(pts, p)
	}
	if flip {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	return pts
}
