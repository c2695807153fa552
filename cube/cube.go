package cube

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned when an axis length is not positive.
	ErrInvalidShape = errors.New("cube: axis lengths must be positive")

	// ErrSizeMismatch is returned when the data length does not match the shape.
	ErrSizeMismatch = errors.New("cube: data length does not match shape")
)

// Matrix is a dense rank-2 array in row-major order.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix creates a Matrix wrapping data. The slice is NOT copied; callers
// must not mutate it while clustering runs reference the matrix.
func NewMatrix(rows, cols int, data []float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%w: got %d values for shape %dx%d", ErrSizeMismatch, len(data), rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Values returns the underlying row-major slice.
// The slice must be treated as read-only.
func (m *Matrix) Values() []float64 { return m.data }

// Mean returns the global mean over all elements.
func (m *Matrix) Mean() float64 { return mean(m.data) }

// Cube is a dense rank-3 array in row-major order, indexed (band, row, col).
type Cube struct {
	bands, rows, cols int
	data              []float64
}

// NewCube creates a Cube wrapping data. The slice is NOT copied; callers
// must not mutate it while clustering runs reference the cube.
func NewCube(bands, rows, cols int, data []float64) (*Cube, error) {
	if bands <= 0 || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidShape, bands, rows, cols)
	}
	if len(data) != bands*rows*cols {
		return nil, fmt.Errorf("%w: got %d values for shape %dx%dx%d", ErrSizeMismatch, len(data), bands, rows, cols)
	}
	return &Cube{bands: bands, rows: rows, cols: cols, data: data}, nil
}

// Bands returns the number of bands.
func (c *Cube) Bands() int { return c.bands }

// Rows returns the number of rows.
func (c *Cube) Rows() int { return c.rows }

// Cols returns the number of columns.
func (c *Cube) Cols() int { return c.cols }

// At returns the value at band b, row i, column j.
func (c *Cube) At(b, i, j int) float64 { return c.data[(b*c.rows+i)*c.cols+j] }

// Values returns the underlying row-major slice.
// The slice must be treated as read-only.
func (c *Cube) Values() []float64 { return c.data }

// Mean returns the global mean over all elements.
func (c *Cube) Mean() float64 { return mean(c.data) }

func mean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
