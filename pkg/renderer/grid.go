package renderer

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrGridFilled is returned when a grid is filled a second time
var ErrGridFilled = errors.New("grid already filled")

// Grid is a fixed-size row-major buffer with its origin at the top left.
// It is written once by Fill or FillRows and is read-only afterwards.
type Grid[T any] struct {
	width  int
	height int
	cells  []T
	filled bool
}

// NewGrid allocates a width x height grid of zero values
func NewGrid[T any](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions must be positive, got %dx%d", ErrInvalidConfig, width, height)
	}
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}, nil
}

// Width returns the number of columns
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows
func (g *Grid[T]) Height() int { return g.height }

// Size returns the number of cells
func (g *Grid[T]) Size() int { return len(g.cells) }

// At returns the cell at column x, row y
func (g *Grid[T]) At(x, y int) T {
	return g.cells[y*g.width+x]
}

// Row returns row y. The slice aliases the grid and must not be modified.
func (g *Grid[T]) Row(y int) []T {
	return g.cells[y*g.width : (y+1)*g.width]
}

// FillRows calls fillRow once for every row, at most workers at a time
// (workers <= 0 uses GOMAXPROCS). Each call owns its row slice exclusively.
// A panic in fillRow fails the whole fill; the grid contents are then undefined.
func (g *Grid[T]) FillRows(workers int, fillRow func(y int, row []T)) error {
	if g.filled {
		return ErrGridFilled
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var group errgroup.Group
	group.SetLimit(workers)

	for y := 0; y < g.height; y++ {
		y := y
		row := g.cells[y*g.width : (y+1)*g.width : (y+1)*g.width]
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("filling row %d: %v", y, r)
				}
			}()
			fillRow(y, row)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	g.filled = true
	return nil
}

// Fill sets every cell to setter(x, y), computing rows in parallel
func (g *Grid[T]) Fill(workers int, setter func(x, y int) T) error {
	return g.FillRows(workers, func(y int, row []T) {
		for x := range row {
			row[x] = setter(x, y)
		}
	})
}
