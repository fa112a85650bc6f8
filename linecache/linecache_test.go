package linecache

import (
	"bytes"
	"image"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"threadart.org/bresenham"
	"threadart.org/frame"
)

func testRing(n int) frame.Ring {
	return frame.Ring{N: n, Center: image.Pt(50, 50), Radius: 45}
}

func TestCoverage(t *testing.T) {
	ring := testRing(16)
	nails := ring.Layout()
	c := New(ring)
	if c.Nails() != 16 {
		t.Fatalf("cache built for %d nails, expected 16", c.Nails())
	}
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			pts := c.Get(i, j)
			if len(pts) == 0 {
				t.Fatalf("no pixels for pair (%d, %d)", i, j)
			}
			want := bresenham.Points(nails[i], nails[j])
			if diff := cmp.Diff(want, pts); diff != "" {
				t.Errorf("pair (%d, %d) pixels mismatch (-want +got):\n%s", i, j, diff)
			}
		}
	}
}

func TestGetSymmetric(t *testing.T) {
	c := New(testRing(12))
	for i := 0; i < 12; i++ {
		for j := 0; j < 12; j++ {
			if i == j {
				continue
			}
			a, b := c.Get(i, j), c.Get(j, i)
			if len(a) != len(b) || &a[0] != &b[0] {
				t.Fatalf("Get(%d, %d) and Get(%d, %d) differ", i, j, j, i)
			}
		}
	}
}

func TestGetPanics(t *testing.T) {
	c := New(testRing(8))
	for _, pair := range [][2]int{{3, 3}, {-1, 2}, {0, 8}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Get(%d, %d) did not panic", pair[0], pair[1])
				}
			}()
			c.Get(pair[0], pair[1])
		}()
	}
}

func TestSaveLoad(t *testing.T) {
	ring := testRing(10)
	c := New(ring)
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(&buf, ring)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c.lines, loaded.lines); diff != "" {
		t.Errorf("loaded cache differs (-want +got):\n%s", diff)
	}
}

func TestLoadFingerprintMismatch(t *testing.T) {
	c := New(testRing(10))
	var buf bytes.Buffer
	if err := c.Save(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(&buf, testRing(12)); err != ErrFingerprint {
		t.Errorf("loading with a different ring returned %v, expected ErrFingerprint", err)
	}
}

func TestLoadOrBuild(t *testing.T) {
	ring := testRing(9)
	path := filepath.Join(t.TempDir(), "lines.cbor")
	first := LoadOrBuild(path, ring)
	second := LoadOrBuild(path, ring)
	if diff := cmp.Diff(first.lines, second.lines); diff != "" {
		t.Errorf("rebuilt cache differs from persisted cache (-want +got):\n%s", diff)
	}
	// A different geometry must trigger a rebuild, not a bogus reuse.
	other := LoadOrBuild(path, testRing(7))
	if other.Nails() != 7 {
		t.Errorf("rebuilt cache has %d nails, expected 7", other.Nails())
	}
}
