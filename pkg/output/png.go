package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ToImage copies grid into an opaque RGBA image
func ToImage(grid *renderer.Grid[renderer.Pixel]) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width(), grid.Height()))
	for y := 0; y < grid.Height(); y++ {
		for x, p := range grid.Row(y) {
			img.SetRGBA(x, y, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
		}
	}
	return img
}

// WritePNG encodes grid as a PNG image
func WritePNG(w io.Writer, grid *renderer.Grid[renderer.Pixel]) error {
	if err := png.Encode(w, ToImage(grid)); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
