package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"
)

// WritePNG encodes the canvas as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// WritePath writes the path as one line of comma-separated nail
// indices, the interchange format understood by winding tools.
func WritePath(w io.Writer, path []int) error {
	bw := bufio.NewWriter(w)
	for i, n := range path {
		if i > 0 {
			if err := bw.WriteByte(','); err != nil {
				return fmt.Errorf("render: write path: %w", err)
			}
		}
		if _, err := bw.WriteString(strconv.Itoa(n)); err != nil {
			return fmt.Errorf("render: write path: %w", err)
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("render: write path: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: write path: %w", err)
	}
	return nil
}
