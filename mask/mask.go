// Package mask derives per-pixel scoring weights from the target
// image. The emphasis mask boosts candidate lines through dark
// feature regions such as eyes; the protection mask penalizes lines
// crossing bright areas meant to stay blank. Both are computed once
// at session setup and are immutable during generation.
package mask

import (
	"image"
	"math"

	"threadart.org/pix"
)

// A Detector locates feature regions in the target image. It is the
// pluggable oracle behind the emphasis mask; a detection failure
// degrades to the neutral mask and must never abort a session.
type Detector interface {
	Detect(target *pix.Grid) ([]image.Rectangle, error)
}

// Neutral returns the all-ones multiplier grid, the no-op emphasis
// mask.
func Neutral(w, h int) *pix.Grid {
	return pix.Ones(w, h)
}

// NoProtection returns the all-zeros grid. Zero is the protection
// mask's neutral value: the scoring penalty is proportional to the
// mask, so an unprotected pixel must contribute nothing.
func NoProtection(w, h int) *pix.Grid {
	return pix.NewGrid(w, h)
}

// Emphasis builds the feature emphasis mask. For every detected
// region, pixels inside the region's elliptical footprint are
// weighted by their brightness relative to the region mean: well
// below the mean the multiplier grows with darkness up to 4x, well
// above it highlights are damped to 0.7, and everything else stays
// at 1.
func Emphasis(target *pix.Grid, regions []image.Rectangle) *pix.Grid {
	m := Neutral(target.W, target.H)
	bounds := image.Rect(0, 0, target.W, target.H)
	for _, region := range regions {
		r := region.Intersect(bounds)
		if r.Empty() {
			continue
		}
		var sum float64
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				sum += float64(target.At(x, y))
			}
		}
		mean := sum / float64(r.Dx()*r.Dy())
		if mean == 0 {
			continue
		}
		cx := float64(r.Min.X+r.Max.X) / 2
		cy := float64(r.Min.Y+r.Max.Y) / 2
		rx := float64(r.Dx()) / 2
		ry := float64(r.Dy()) / 2
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				dx := (float64(x) - cx) / rx
				dy := (float64(y) - cy) / ry
				if dx*dx+dy*dy > 1 {
					continue
				}
				v := float64(target.At(x, y))
				switch {
				case v < 0.8*mean:
					boost := 1 + 3*(1-v/mean)
					if boost > 4 {
						boost = 4
					}
					m.Set(x, y, float32(boost))
				case v > 1.2*mean:
					m.Set(x, y, 0.7)
				}
			}
		}
	}
	return m
}

const (
	closingRadius = 3
	falloffRadius = 5
)

// Protection builds the negative space mask. Connected regions of
// pixels at or above threshold covering at least 0.25% of the image
// are protected; after a morphological closing, every pixel within
// the falloff radius of a protected pixel gets a strength rising from
// 0.3 at the region itself to 1.0 at the falloff edge. Pixels beyond
// the falloff stay at 0.
func Protection(target *pix.Grid, threshold float32) *pix.Grid {
	w, h := target.W, target.H
	marked := detectRegions(target, threshold)
	marked = morph(marked, w, h, closingRadius, false)
	marked = morph(marked, w, h, closingRadius, true)
	return falloff(marked, w, h)
}

// detectRegions flood fills connected bright regions and keeps those
// covering at least 0.25% of the image.
func detectRegions(target *pix.Grid, threshold float32) []bool {
	w, h := target.W, target.H
	marked := make([]bool, w*h)
	visited := make([]bool, w*h)
	minRegion := w * h / 400
	var stack, region []int
	for start := range visited {
		if visited[start] || target.Pix[start] < threshold {
			continue
		}
		region = region[:0]
		stack = append(stack[:0], start)
		visited[start] = true
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			region = append(region, i)
			x, y := i%w, i/w
			for _, n := range [4]image.Point{{X: x - 1, Y: y}, {X: x + 1, Y: y}, {X: x, Y: y - 1}, {X: x, Y: y + 1}} {
				if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
					continue
				}
				j := n.Y*w + n.X
				if !visited[j] && target.Pix[j] >= threshold {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
		if len(region) >= minRegion {
			for _, i := range region {
				marked[i] = true
			}
		}
	}
	return marked
}

// morph applies a square-kernel dilation (all=false: set when any
// neighbor is set) or erosion (all=true: set only when all neighbors
// are set). The kernel is clipped at the image border.
func morph(src []bool, w, h, radius int, all bool) []bool {
	dst := make([]bool, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := all
		kernel:
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					if src[ny*w+nx] != all {
						v = !all
						break kernel
					}
				}
			}
			dst[y*w+x] = v
		}
	}
	return dst
}

// falloff converts the marked region into protection strengths: 0.3
// on the region itself, rising with the distance to the nearest
// protected pixel up to the falloff radius, 0 beyond it.
func falloff(marked []bool, w, h int) *pix.Grid {
	const r = falloffRadius
	dist := make([]float64, w*h)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !marked[y*w+x] {
				continue
			}
			for dy := -r; dy <= r; dy++ {
				for dx := -r; dx <= r; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					d := math.Sqrt(float64(dx*dx + dy*dy))
					if d <= r && d < dist[ny*w+nx] {
						dist[ny*w+nx] = d
					}
				}
			}
		}
	}
	m := pix.NewGrid(w, h)
	for i, d := range dist {
		if math.IsInf(d, 1) {
			continue
		}
		// Gaussian-shaped ramp: 0.3 at d=0, ~1.0 at the radius.
		m.Pix[i] = float32(0.3 + 0.7*(1-math.Exp(-d*d/8)))
	}
	return m
}
