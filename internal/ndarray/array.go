// Package ndarray holds dense float64 arrays and their NumPy .npy encoding.
package ndarray

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Array is a dense row-major array.
type Array struct {
	Shape []int
	Data  []float64
}

// New validates that shape describes exactly len(data) elements.
func New(shape []int, data []float64) (*Array, error) {
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("negative dimension in shape %v", shape)
		}
		size *= dim
	}
	if size != len(data) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, size, len(data))
	}
	return &Array{Shape: slices.Clone(shape), Data: data}, nil
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int {
	return len(a.Shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return len(a.Data)
}

// Index returns a copy of the sub-array at position i along the first axis.
func (a *Array) Index(i int) (*Array, error) {
	if a.Rank() == 0 {
		return nil, fmt.Errorf("cannot index a scalar")
	}
	if i < 0 || i >= a.Shape[0] {
		return nil, fmt.Errorf("index %d out of range for axis 0 of length %d", i, a.Shape[0])
	}
	inner := a.Shape[1:]
	stride := 1
	for _, dim := range inner {
		stride *= dim
	}
	data := slices.Clone(a.Data[i*stride : (i+1)*stride])
	return &Array{Shape: slices.Clone(inner), Data: data}, nil
}

// ShapeString formats the shape the way numpy prints it, e.g. "(3, 64)" or "(5,)".
func (a *Array) ShapeString() string {
	parts := make([]string, len(a.Shape))
	for i, dim := range a.Shape {
		parts[i] = strconv.Itoa(dim)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
