// Package boundary exposes the unique list to a hosting program the way
// the original extension exposed it to an interpreter: every numeric
// buffer is validated before it reaches the core, borrowed probes are
// materialized only for genuinely new keys, and all rejections carry a
// descriptive message.
package boundary

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks inputs rejected before reaching the core.
var ErrInvalidInput = errors.New("boundary: invalid input")

// Buffer is an n-dimensional float buffer handed over by the host.
// The core only accepts vectors, so every entry point checks the rank.
type Buffer struct {
	Data  []float64
	Shape []int
}

// IntBuffer is an n-dimensional integer buffer (index lists, flag lists).
type IntBuffer struct {
	Data  []int
	Shape []int
}

// vector validates that b is rank 1 and internally consistent and
// returns its data.
func (b Buffer) vector() ([]float64, error) {
	if len(b.Shape) != 1 {
		return nil, fmt.Errorf("%w: expected 1 dimensional but got %d dimensional", ErrInvalidInput, len(b.Shape))
	}
	if b.Shape[0] != len(b.Data) {
		return nil, fmt.Errorf("%w: shape %d does not match data length %d", ErrInvalidInput, b.Shape[0], len(b.Data))
	}
	return b.Data, nil
}

func (b IntBuffer) vector() ([]int, error) {
	if len(b.Shape) != 1 {
		return nil, fmt.Errorf("%w: expected 1 dimensional but got %d dimensional", ErrInvalidInput, len(b.Shape))
	}
	if b.Shape[0] != len(b.Data) {
		return nil, fmt.Errorf("%w: shape %d does not match data length %d", ErrInvalidInput, b.Shape[0], len(b.Data))
	}
	return b.Data, nil
}

// Vector builds a rank-1 Buffer over data without copying.
func Vector(data []float64) Buffer {
	return Buffer{Data: data, Shape: []int{len(data)}}
}

// IntVector builds a rank-1 IntBuffer over data without copying.
func IntVector(data []int) IntBuffer {
	return IntBuffer{Data: data, Shape: []int{len(data)}}
}
