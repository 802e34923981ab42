package ndarray

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// Load reads a .npy file from disk.
func Load(path string) (*Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	arr, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read npy %s: %w", path, err)
	}
	return arr, nil
}

// Read decodes a .npy stream. Supported dtypes are little-endian float32,
// float64, int16, int32 and int64; values are widened to float64.
func Read(r io.Reader) (*Array, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, err
	}
	descr := npy.Header.Descr
	shape := descr.Shape
	size := 1
	for _, dim := range shape {
		size *= dim
	}

	var data []float64
	switch descr.Type {
	case "<f8":
		data = make([]float64, size)
		if err := npy.Read(&data); err != nil {
			return nil, err
		}
	case "<f4":
		raw := make([]float32, size)
		if err := npy.Read(&raw); err != nil {
			return nil, err
		}
		data = widen(raw)
	case "<i2":
		raw := make([]int16, size)
		if err := npy.Read(&raw); err != nil {
			return nil, err
		}
		data = widen(raw)
	case "<i4":
		raw := make([]int32, size)
		if err := npy.Read(&raw); err != nil {
			return nil, err
		}
		data = widen(raw)
	case "<i8":
		raw := make([]int64, size)
		if err := npy.Read(&raw); err != nil {
			return nil, err
		}
		data = widen(raw)
	default:
		return nil, fmt.Errorf("unsupported dtype %q", descr.Type)
	}

	arr, err := New(shape, data)
	if err != nil {
		return nil, err
	}
	if descr.Fortran && arr.Rank() > 1 {
		if arr.Rank() != 2 {
			return nil, fmt.Errorf("fortran-ordered arrays of rank %d are not supported", arr.Rank())
		}
		arr = transposeFortran(arr)
	}
	return arr, nil
}

func widen[T float32 | int16 | int32 | int64](raw []T) []float64 {
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out
}

// transposeFortran reorders column-major data into row-major order.
func transposeFortran(a *Array) *Array {
	rows, cols := a.Shape[0], a.Shape[1]
	data := make([]float64, len(a.Data))
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			data[r*cols+c] = a.Data[c*rows+r]
		}
	}
	return &Array{Shape: []int{rows, cols}, Data: data}
}

// Save writes the array to path as a float64 .npy file.
func Save(path string, a *Array) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, a); err != nil {
		_ = f.Close()
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes rank-1 and rank-2 arrays as float64 .npy data.
func Write(w io.Writer, a *Array) error {
	if a == nil || a.Size() == 0 {
		return errors.New("cannot write an empty array")
	}
	switch a.Rank() {
	case 1:
		return npyio.Write(w, a.Data)
	case 2:
		return npyio.Write(w, mat.NewDense(a.Shape[0], a.Shape[1], a.Data))
	default:
		return fmt.Errorf("cannot write array of rank %d; save sub-arrays instead", a.Rank())
	}
}
