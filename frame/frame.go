// Package frame lays out the nails of a circular string art frame.
package frame

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"math"
)

// Ring describes N nails placed evenly on a circle.
type Ring struct {
	N      int
	Center image.Point
	Radius int
}

// Layout returns the nail coordinates. Nail 0 sits at angle 0 (to the
// right of the center), the remaining nails follow in angle order.
// The layout is the canonical nail identity: every other component
// refers to nails by their index into this slice.
func (r Ring) Layout() []image.Point {
	nails := make([]image.Point, r.N)
	for i := range nails {
		angle := 2 * math.Pi * float64(i) / float64(r.N)
		nails[i] = image.Point{
			X: r.Center.X + int(float64(r.Radius)*math.Cos(angle)),
			Y: r.Center.Y + int(float64(r.Radius)*math.Sin(angle)),
		}
	}
	return nails
}

// Fingerprint returns a stable digest of the ring geometry, used to
// key persisted line caches.
func (r Ring) Fingerprint() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("ring %d %d %d %d", r.N, r.Center.X, r.Center.Y, r.Radius)))
	return hex.EncodeToString(sum[:8])
}
