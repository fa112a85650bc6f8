package pix

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

// Decode reads an image in any registered format. A decode failure is
// fatal to session construction, so the error is returned as-is for
// the caller to surface.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pix: decode: %w", err)
	}
	return img, nil
}

// Fit converts img to grayscale and fits it onto a size×size canvas:
// the image is scaled preserving aspect ratio and centered on a canvas
// filled with the image's most frequent pixel value, so portraits on
// plain backdrops blend into the frame instead of being letterboxed in
// black.
func Fit(img image.Image, size int) *Grid {
	gray := toGray(img)
	bg := mostCommon(gray)

	canvas := image.NewGray(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := min(float64(size)/float64(w), float64(size)/float64(h))
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	x0 := (size - nw) / 2
	y0 := (size - nh) / 2
	dst := image.Rect(x0, y0, x0+nw, y0+nh)
	xdraw.CatmullRom.Scale(canvas, dst, gray, b, xdraw.Src, nil)

	return FromGray(canvas)
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}

// mostCommon returns the most frequent pixel value of the image.
func mostCommon(img *image.Gray) color.Gray {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	best := 0
	for v, n := range hist {
		if n > hist[best] {
			best = v
		}
	}
	return color.Gray{Y: uint8(best)}
}
