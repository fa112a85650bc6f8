package linecache

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"threadart.org/frame"
	"threadart.org/internal/logging"
)

// ErrFingerprint is reported when a persisted cache was built for a
// different nail geometry.
var ErrFingerprint = errors.New("linecache: geometry fingerprint mismatch")

type cacheFile struct {
	Fingerprint string          `cbor:"1,keyasint"`
	Nails       int             `cbor:"2,keyasint"`
	Lines       [][]image.Point `cbor:"3,keyasint"`
}

// Save writes the cache to w.
func (c *Cache) Save(w io.Writer) error {
	data, err := cbor.Marshal(cacheFile{
		Fingerprint: c.fingerprint,
		Nails:       c.n,
		Lines:       c.lines,
	})
	if err != nil {
		return fmt.Errorf("linecache: encode: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("linecache: write: %w", err)
	}
	return nil
}

// Load reads a cache previously written with Save and verifies it
// matches the ring geometry. A mismatch reports ErrFingerprint; the
// caller falls back to a fresh build.
func Load(r io.Reader, ring frame.Ring) (*Cache, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("linecache: read: %w", err)
	}
	var f cacheFile
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("linecache: decode: %w", err)
	}
	if f.Fingerprint != ring.Fingerprint() || f.Nails != ring.N {
		return nil, ErrFingerprint
	}
	if len(f.Lines) != f.Nails*(f.Nails-1)/2 {
		return nil, fmt.Errorf("linecache: decode: %d pair entries for %d nails", len(f.Lines), f.Nails)
	}
	return &Cache{n: f.Nails, fingerprint: f.Fingerprint, lines: f.Lines}, nil
}

// LoadOrBuild loads the cache stored at path if it matches the ring,
// and otherwise builds a fresh cache and saves it there. Load and
// save problems are logged and absorbed: the returned cache is always
// usable.
func LoadOrBuild(path string, ring frame.Ring) *Cache {
	if f, err := os.Open(path); err == nil {
		c, err := Load(f, ring)
		f.Close()
		if err == nil {
			return c
		}
		logging.Logger().Warn("linecache: ignoring persisted cache", "path", path, "err", err)
	}
	c := New(ring)
	f, err := os.Create(path)
	if err != nil {
		logging.Logger().Warn("linecache: cannot persist cache", "path", path, "err", err)
		return c
	}
	defer f.Close()
	if err := c.Save(f); err != nil {
		logging.Logger().Warn("linecache: cannot persist cache", "path", path, "err", err)
	}
	return c
}
