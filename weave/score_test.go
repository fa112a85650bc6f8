package weave

import (
	"image"
	"testing"

	"threadart.org/mask"
	"threadart.org/pix"
)

func line(pts ...image.Point) []image.Point {
	return pts
}

func TestScoreNeutralMasks(t *testing.T) {
	residual := pix.NewGrid(10, 10)
	residual.Set(0, 0, 30)
	residual.Set(1, 0, 60)
	residual.Set(2, 0, 90)
	pts := line(image.Pt(0, 0), image.Pt(1, 0), image.Pt(2, 0))
	got := Score(pts, residual, mask.Neutral(10, 10), mask.NoProtection(10, 10), 0.5)
	if want := 60.0; got != want {
		t.Errorf("score = %v, expected the plain mean %v", got, want)
	}
}

func TestScoreSkipsOutOfBounds(t *testing.T) {
	residual := pix.Uniform(5, 5, 100)
	pts := line(image.Pt(-1, 0), image.Pt(0, 0), image.Pt(5, 5))
	got := Score(pts, residual, mask.Neutral(5, 5), mask.NoProtection(5, 5), 0)
	if got != 100 {
		t.Errorf("score = %v, expected 100 from the single in-bounds pixel", got)
	}
}

func TestScoreNoPixels(t *testing.T) {
	residual := pix.Uniform(5, 5, 100)
	if got := Score(nil, residual, mask.Neutral(5, 5), mask.NoProtection(5, 5), 0); got != 0 {
		t.Errorf("empty line scored %v", got)
	}
	outside := line(image.Pt(-1, -1), image.Pt(9, 9))
	if got := Score(outside, residual, mask.Neutral(5, 5), mask.NoProtection(5, 5), 0); got != 0 {
		t.Errorf("fully out-of-bounds line scored %v", got)
	}
}

func TestScoreEmphasisBoost(t *testing.T) {
	residual := pix.Uniform(5, 5, 100)
	emphasis := mask.Neutral(5, 5)
	emphasis.Set(0, 0, 2)
	pts := line(image.Pt(0, 0), image.Pt(1, 0))
	got := Score(pts, residual, emphasis, mask.NoProtection(5, 5), 0)
	if want := 150.0; got != want {
		t.Errorf("score = %v, expected %v", got, want)
	}
}

func TestScoreProtectionPenalty(t *testing.T) {
	residual := pix.Uniform(5, 5, 100)
	protection := pix.Uniform(5, 5, 1)
	pts := line(image.Pt(0, 0), image.Pt(1, 0))
	if got := Score(pts, residual, mask.Neutral(5, 5), protection, 30); got != 70 {
		t.Errorf("score = %v, expected 70", got)
	}
	// The penalty floors at zero, never negative.
	if got := Score(pts, residual, mask.Neutral(5, 5), protection, 500); got != 0 {
		t.Errorf("score = %v, expected floor at 0", got)
	}
}

func TestDarkenClamps(t *testing.T) {
	residual := pix.Uniform(5, 5, 60)
	pts := line(image.Pt(1, 1), image.Pt(2, 2), image.Pt(6, 6))
	Darken(residual, pts, 25)
	if v := residual.At(1, 1); v != 35 {
		t.Errorf("pixel = %v after one application, expected 35", v)
	}
	Darken(residual, pts, 25)
	if v := residual.At(1, 1); v != 10 {
		t.Errorf("pixel = %v after two applications, expected 10", v)
	}
	Darken(residual, pts, 25)
	if v := residual.At(1, 1); v != 0 {
		t.Errorf("pixel = %v, expected clamp at exactly 0", v)
	}
	// Further applications keep it at zero.
	Darken(residual, pts, 25)
	if v := residual.At(2, 2); v != 0 {
		t.Errorf("pixel = %v after extra application, expected 0", v)
	}
	// Untouched pixels keep their value.
	if v := residual.At(0, 0); v != 60 {
		t.Errorf("untouched pixel = %v, expected 60", v)
	}
}

func TestDarkenNeverIncreases(t *testing.T) {
	residual := pix.Uniform(4, 4, 10)
	pts := line(image.Pt(0, 0), image.Pt(3, 3))
	for _, d := range []float32{3, 0.5, 8, 100} {
		before := residual.Clone()
		Darken(residual, pts, d)
		for i := range residual.Pix {
			if residual.Pix[i] > before.Pix[i] {
				t.Fatalf("pixel %d grew from %v to %v", i, before.Pix[i], residual.Pix[i])
			}
			if residual.Pix[i] < 0 {
				t.Fatalf("pixel %d went negative: %v", i, residual.Pix[i])
			}
		}
	}
}
