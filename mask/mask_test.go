package mask

import (
	"image"
	"testing"

	"threadart.org/pix"
)

func TestNeutral(t *testing.T) {
	m := Neutral(4, 3)
	for i, v := range m.Pix {
		if v != 1 {
			t.Fatalf("pixel %d = %v, expected 1", i, v)
		}
	}
	z := NoProtection(4, 3)
	for i, v := range z.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %v, expected 0", i, v)
		}
	}
}

func TestEmphasisNoRegions(t *testing.T) {
	target := pix.Uniform(10, 10, 100)
	m := Emphasis(target, nil)
	for i, v := range m.Pix {
		if v != 1 {
			t.Fatalf("pixel %d = %v, expected neutral 1", i, v)
		}
	}
}

func TestEmphasisBoostAndDamp(t *testing.T) {
	// A 20x20 region over a mostly mid-gray patch with one very dark
	// and one very bright pixel near the center.
	target := pix.Uniform(40, 40, 100)
	target.Set(20, 20, 0)   // dark feature pixel
	target.Set(21, 20, 250) // highlight
	region := image.Rect(10, 10, 30, 30)
	m := Emphasis(target, []image.Rectangle{region})

	if v := m.At(20, 20); v <= 3.5 || v > 4 {
		t.Errorf("dark pixel multiplier = %v, expected close to 4", v)
	}
	if v := m.At(21, 20); v != 0.7 {
		t.Errorf("highlight multiplier = %v, expected 0.7", v)
	}
	// Mid-gray pixels inside the ellipse stay neutral.
	if v := m.At(19, 20); v != 1 {
		t.Errorf("mid pixel multiplier = %v, expected 1", v)
	}
	// Pixels outside the region are untouched.
	if v := m.At(5, 5); v != 1 {
		t.Errorf("outside pixel multiplier = %v, expected 1", v)
	}
	// Rectangle corners are outside the elliptical footprint.
	if v := m.At(10, 10); v != 1 {
		t.Errorf("corner pixel multiplier = %v, expected 1", v)
	}
}

func TestEmphasisMaxBoost(t *testing.T) {
	// The darkest possible pixel in a bright region gets the full 4x
	// boost.
	target := pix.Uniform(60, 60, 10)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			target.Set(x, y, 255)
		}
	}
	target.Set(30, 30, 0)
	m := Emphasis(target, []image.Rectangle{image.Rect(20, 20, 40, 40)})
	if v := m.At(30, 30); v != 4 {
		t.Errorf("boost = %v, expected the 4x cap", v)
	}
}

func TestProtectionSmallRegionIgnored(t *testing.T) {
	// A 2x2 bright spot is below the 0.25% area floor of a 100x100
	// image (25 pixels) and must not be protected.
	target := pix.Uniform(100, 100, 50)
	for y := 40; y < 42; y++ {
		for x := 40; x < 42; x++ {
			target.Set(x, y, 255)
		}
	}
	m := Protection(target, 200)
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %v, expected unprotected 0", i, v)
		}
	}
}

func TestProtectionLargeRegion(t *testing.T) {
	// A 30x30 bright block is protected; its interior sits at 0.3 and
	// far-away pixels stay at 0.
	target := pix.Uniform(100, 100, 50)
	for y := 30; y < 60; y++ {
		for x := 30; x < 60; x++ {
			target.Set(x, y, 255)
		}
	}
	m := Protection(target, 200)
	if v := m.At(45, 45); v != 0.3 {
		t.Errorf("region center = %v, expected 0.3", v)
	}
	if v := m.At(5, 5); v != 0 {
		t.Errorf("far pixel = %v, expected 0", v)
	}
	// Just outside the region the strength rises above the interior
	// value and decays to 0 beyond the falloff radius.
	outside := m.At(45, 63)
	if outside <= 0.3 || outside > 1 {
		t.Errorf("near-boundary strength = %v, expected in (0.3, 1]", outside)
	}
	if v := m.At(45, 70); v != 0 {
		t.Errorf("beyond falloff = %v, expected 0", v)
	}
}

func TestProtectionClosingFillsGaps(t *testing.T) {
	// A one-pixel dark seam through a large bright region closes up.
	target := pix.Uniform(100, 100, 255)
	for y := 0; y < 100; y++ {
		target.Set(50, y, 0)
	}
	m := Protection(target, 200)
	if v := m.At(50, 50); v == 0 {
		t.Error("seam pixel not closed by dilate/erode")
	}
}

func TestDarkRegionsDetect(t *testing.T) {
	// Dark disc of radius 10 at (60, 60) on a 200x200 bright image.
	target := pix.Uniform(200, 200, 255)
	for dy := -10; dy <= 10; dy++ {
		for dx := -10; dx <= 10; dx++ {
			if dx*dx+dy*dy <= 100 {
				target.Set(60+dx, 60+dy, 0)
			}
		}
	}
	regions, err := DarkRegions{}.Detect(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) == 0 {
		t.Fatal("no regions detected")
	}
	// The detector is heuristic: the accepted region may be centered
	// on any scan point inside the disc, so only require overlap.
	disc := image.Rect(50, 50, 70, 70)
	found := false
	for _, r := range regions {
		if r.Overlaps(disc) {
			found = true
		}
	}
	if !found {
		t.Errorf("no detected region overlaps the disc, got %v", regions)
	}
}

func TestDarkRegionsUniform(t *testing.T) {
	regions, err := DarkRegions{}.Detect(pix.Uniform(100, 100, 128))
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 0 {
		t.Errorf("uniform image produced regions: %v", regions)
	}
}
