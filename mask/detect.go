package mask

import (
	"image"
	"sort"

	"threadart.org/pix"
)

// DarkRegions is a heuristic Detector that looks for dark, roughly
// circular regions in the upper part of the image, where the eyes of
// a portrait usually sit. It is the default oracle when no external
// detector is supplied.
type DarkRegions struct{}

func (DarkRegions) Detect(target *pix.Grid) ([]image.Rectangle, error) {
	w := target.W
	searchH := int(float64(target.H) * 0.6)
	if searchH == 0 || w == 0 {
		return nil, nil
	}

	var sum float64
	for y := 0; y < searchH; y++ {
		for x := 0; x < w; x++ {
			sum += float64(target.At(x, y))
		}
	}
	darkThreshold := float32(sum / float64(searchH*w) * 0.7)

	const step = 10
	minSize := int(float64(min(w, target.H)) * 0.03)
	maxSize := int(float64(min(w, target.H)) * 0.15)

	var regions []image.Rectangle
	for y := step; y < searchH-step; y += step {
		for x := step; x < w-step; x += step {
			if target.At(x, y) >= darkThreshold {
				continue
			}
			r, ok := fitDarkDisc(target, x, y, darkThreshold, w, searchH)
			if !ok {
				continue
			}
			if r.Dx() < minSize || r.Dx() > maxSize || r.Dy() < minSize || r.Dy() > maxSize {
				continue
			}
			if overlapsAny(r, regions) {
				continue
			}
			regions = append(regions, r)
		}
	}

	// The two topmost candidates are the most eye-like.
	sort.Slice(regions, func(i, j int) bool { return regions[i].Min.Y < regions[j].Min.Y })
	if len(regions) > 2 {
		regions = regions[:2]
	}
	return regions, nil
}

// fitDarkDisc grows a disc around (cx, cy) and accepts the first
// radius whose disc is at least 40% dark.
func fitDarkDisc(target *pix.Grid, cx, cy int, threshold float32, w, h int) (image.Rectangle, bool) {
	for radius := 8; radius <= 40; radius++ {
		dark, total := 0, 0
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				x, y := cx+dx, cy+dy
				if x < 0 || x >= w || y < 0 || y >= h {
					continue
				}
				total++
				if target.At(x, y) < threshold {
					dark++
				}
			}
		}
		if total > 50 && float64(dark) > 0.4*float64(total) {
			r := image.Rect(cx-radius, cy-radius, cx+radius, cy+radius)
			return r.Intersect(image.Rect(0, 0, w, h)), true
		}
	}
	return image.Rectangle{}, false
}

// overlapsAny reports whether r overlaps any accepted region by more
// than 30% of its own area.
func overlapsAny(r image.Rectangle, regions []image.Rectangle) bool {
	area := r.Dx() * r.Dy()
	if area == 0 {
		return false
	}
	for _, o := range regions {
		i := r.Intersect(o)
		if i.Dx()*i.Dy()*10 > area*3 {
			return true
		}
	}
	return false
}
