// Package output encodes rendered pixel grids as image files.
package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// WritePPM writes grid as a plain-text PPM (P3) image: a header followed by
// one "R G B" line per pixel in row-major order, top row first.
func WritePPM(w io.Writer, grid *renderer.Grid[renderer.Pixel]) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", grid.Width(), grid.Height()); err != nil {
		return fmt.Errorf("writing PPM header: %w", err)
	}

	for y := 0; y < grid.Height(); y++ {
		for _, p := range grid.Row(y) {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", p[0], p[1], p[2]); err != nil {
				return fmt.Errorf("writing PPM row %d: %w", y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing PPM: %w", err)
	}
	return nil
}
