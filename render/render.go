// Package render draws a generated thread path onto a canvas.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"threadart.org/bresenham"
)

// Options configures the canvas.
type Options struct {
	// Size is the square canvas size in pixels.
	Size int
	// Color is the thread color; nil means black.
	Color color.Color
	// StrokeWidth selects anti-aliased stroking when positive. At 0
	// the thread is drawn as single-pixel Bresenham lines, matching
	// the pixels the engine scored.
	StrokeWidth float32
}

// Image renders the path onto a fresh white canvas. Consecutive path
// entries are connected with straight lines, last write wins on
// overlaps. An empty or single-entry path yields the blank canvas.
func Image(nails []image.Point, path []int, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	if len(path) < 2 {
		return img
	}
	col := opts.Color
	if col == nil {
		col = color.Black
	}
	if opts.StrokeWidth > 0 {
		stroke(img, nails, path, col, opts.StrokeWidth)
		return img
	}
	b := img.Bounds()
	for k := 0; k+1 < len(path); k++ {
		for _, p := range bresenham.Points(nails[path[k]], nails[path[k+1]]) {
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
	return img
}

// stroke draws the whole path as one anti-aliased polyline.
func stroke(img *image.RGBA, nails []image.Point, path []int, col color.Color, width float32) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	dasher := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	dasher.SetStroke(fixed.Int26_6(width*64), 0,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	dasher.SetColor(col)
	start := nails[path[0]]
	dasher.Start(rasterx.ToFixedP(float64(start.X), float64(start.Y)))
	for _, n := range path[1:] {
		p := nails[n]
		dasher.Line(rasterx.ToFixedP(float64(p.X), float64(p.Y)))
	}
	dasher.Stop(false)
	dasher.Draw()
}
