// Package linecache precomputes the pixels covered by the line
// between every pair of nails on a frame. The cache is built once per
// session and is read-only afterwards, so the greedy engine can score
// thousands of candidate lines without re-rasterizing.
package linecache

import (
	"image"
	"runtime"
	"sync"

	"threadart.org/bresenham"
	"threadart.org/frame"
)

// Cache maps unordered nail pairs to their rasterized pixels.
type Cache struct {
	n           int
	fingerprint string
	lines       [][]image.Point
}

// New rasterizes every nail pair of the ring. Rows of pairs are
// independent, so the build fans out over a bounded worker pool.
func New(ring frame.Ring) *Cache {
	nails := ring.Layout()
	n := len(nails)
	c := &Cache{
		n:           n,
		fingerprint: ring.Fingerprint(),
		lines:       make([][]image.Point, n*(n-1)/2),
	}
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := i + 1; j < n; j++ {
					// Workers write disjoint entries.
					c.lines[pairIndex(n, i, j)] = bresenham.Points(nails[i], nails[j])
				}
			}
		}()
	}
	for i := 0; i < n-1; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()
	return c
}

// Nails returns the number of nails the cache was built for.
func (c *Cache) Nails() int {
	return c.n
}

// Fingerprint returns the geometry fingerprint of the ring the cache
// was built for.
func (c *Cache) Fingerprint() string {
	return c.fingerprint
}

// Get returns the pixels of the line between nails i and j. The
// lookup is symmetric: Get(i, j) and Get(j, i) return the same slice.
// Get panics if i == j or either index is out of range; the cache
// always covers the full nail set, so a miss is a bug in the caller,
// not a runtime condition. Callers must not modify the returned
// slice.
func (c *Cache) Get(i, j int) []image.Point {
	if i == j {
		panic("linecache: query for a degenerate nail pair")
	}
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		panic("linecache: nail index out of range")
	}
	return c.lines[pairIndex(c.n, i, j)]
}

// pairIndex maps the unordered pair (i, j) to its slot in the
// triangular pair list.
func pairIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return i*(2*n-i-1)/2 + (j - i - 1)
}
