package cube

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/cubeclust/internal/mmap"
)

// LoadMatrix reads a rows x cols matrix from a flat binary file of
// little-endian float64 values. The file is memory-mapped while decoding.
func LoadMatrix(path string, rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	data, err := loadFloat64(path, rows*cols)
	if err != nil {
		return nil, err
	}
	return NewMatrix(rows, cols, data)
}

// LoadCube reads a bands x rows x cols cube from a flat binary file of
// little-endian float64 values. The file is memory-mapped while decoding.
func LoadCube(path string, bands, rows, cols int) (*Cube, error) {
	if bands <= 0 || rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidShape, bands, rows, cols)
	}
	data, err := loadFloat64(path, bands*rows*cols)
	if err != nil {
		return nil, err
	}
	return NewCube(bands, rows, cols, data)
}

func loadFloat64(path string, n int) ([]float64, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	raw := m.Bytes()
	if len(raw) != n*8 {
		return nil, fmt.Errorf("%w: file holds %d bytes, want %d", ErrSizeMismatch, len(raw), n*8)
	}

	data := make([]float64, n)
	for i := range data {
		bits := binary.LittleEndian.Uint64(raw[i*8:])
		data[i] = math.Float64frombits(bits)
	}
	return data, nil
}
