// Package pix provides float32 grayscale pixel grids and the
// preprocessing that turns a decoded image into the square target
// grid the generator works on.
package pix

import (
	"image"
	"image/color"
)

// Grid is a W×H grid of brightness values in [0, 255], stored
// row-major.
type Grid struct {
	W, H int
	Pix  []float32
}

// NewGrid returns a zero-filled grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float32, w*h)}
}

// Uniform returns a grid filled with v.
func Uniform(w, h int, v float32) *Grid {
	g := NewGrid(w, h)
	for i := range g.Pix {
		g.Pix[i] = v
	}
	return g
}

// Ones returns an all-ones grid, the neutral multiplier mask.
func Ones(w, h int) *Grid {
	return Uniform(w, h, 1)
}

func (g *Grid) At(x, y int) float32 {
	return g.Pix[y*g.W+x]
}

func (g *Grid) Set(x, y int, v float32) {
	g.Pix[y*g.W+x] = v
}

// In reports whether p is inside the grid.
func (g *Grid) In(p image.Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, Pix: make([]float32, len(g.Pix))}
	copy(c.Pix, g.Pix)
	return c
}

// Invert returns 255 - g, the remaining darkness budget of a target
// grid.
func Invert(g *Grid) *Grid {
	r := NewGrid(g.W, g.H)
	for i, v := range g.Pix {
		r.Pix[i] = 255 - v
	}
	return r
}

// FromGray converts a grayscale image into a grid.
func FromGray(img *image.Gray) *Grid {
	b := img.Bounds()
	g := NewGrid(b.Dx(), b.Dy())
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			g.Set(x, y, float32(img.GrayAt(b.Min.X+x, b.Min.Y+y).Y))
		}
	}
	return g
}

// Gray converts the grid back to a grayscale image, clamping values
// to [0, 255].
func (g *Grid) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := g.At(x, y)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return img
}
