package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Format names an image encoding
type Format string

const (
	FormatPNG Format = "png"
	FormatPPM Format = "ppm"
)

// ErrUnknownFormat is returned for formats other than png and ppm
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatPNG, FormatPPM:
		return Format(name), nil
	default:
		return "", fmt.Errorf("%w: %q (want png or ppm)", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes grid to w in the given format
func Encode(w io.Writer, grid *renderer.Grid[renderer.Pixel], format Format) error {
	switch format {
	case FormatPNG:
		return WritePNG(w, grid)
	case FormatPPM:
		return WritePPM(w, grid)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveFile writes grid to path, creating parent directories as needed
func SaveFile(path string, grid *renderer.Grid[renderer.Pixel], format Format) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	if err := Encode(file, grid, format); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
