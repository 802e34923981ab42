package transform

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"audioprep/internal/ndarray"
)

func spectrogram(t *testing.T, freq, frames int) *ndarray.Array {
	t.Helper()
	data := make([]float64, freq*frames)
	for row := 0; row < freq; row++ {
		for col := 0; col < frames; col++ {
			data[row*frames+col] = float64(row*100 + col)
		}
	}
	arr, err := ndarray.New([]int{freq, frames}, data)
	if err != nil {
		t.Fatalf("ndarray.New: %v", err)
	}
	return arr
}

func TestSpecChunkingForwardAndReverse(t *testing.T) {
	in := spectrogram(t, 2, 7)
	cases := []struct {
		name    string
		reverse bool
		want    []float64
	}{
		// 3-frame chunks over 7 frames: two chunks, one frame left over.
		{name: "forward", want: []float64{0, 1, 2, 100, 101, 102, 3, 4, 5, 103, 104, 105}},
		{name: "reverse", reverse: true, want: []float64{1, 2, 3, 101, 102, 103, 4, 5, 6, 104, 105, 106}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step := SpecChunking{Duration: 3, SampleRate: 1, HopSize: 1, Reverse: tc.reverse}
			out, err := step.Apply(in)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if !reflect.DeepEqual(out.Shape, []int{2, 2, 3}) {
				t.Fatalf("unexpected shape %v", out.Shape)
			}
			if !reflect.DeepEqual(out.Data, tc.want) {
				t.Fatalf("unexpected data %v", out.Data)
			}
		})
	}
}

func TestSpecChunkingRejectsShortOrWrongRank(t *testing.T) {
	step := SpecChunking{Duration: 0.5, SampleRate: 22050, HopSize: 735}
	if step.ChunkFrames() != 15 {
		t.Fatalf("unexpected chunk frames %d", step.ChunkFrames())
	}
	if _, err := step.Apply(spectrogram(t, 4, 14)); err == nil {
		t.Fatal("expected error for spectrogram shorter than one chunk")
	}
	vec, _ := ndarray.New([]int{3}, []float64{1, 2, 3})
	if _, err := step.Apply(vec); err == nil {
		t.Fatal("expected error for rank-1 input")
	}
}

func TestBuildValidatesNamesAndOrder(t *testing.T) {
	if _, err := Build(); err == nil {
		t.Fatal("expected error for empty chain")
	}
	_, err := Build(Spec{Type: "Resample"})
	if !errors.Is(err, ErrUnknownTransform) {
		t.Fatalf("expected ErrUnknownTransform, got %v", err)
	}
	if !strings.Contains(err.Error(), "LoadNumpyAry") {
		t.Fatalf("expected known names in error, got %v", err)
	}
	if _, err := Build(Spec{Type: "SpecChunking"}); err == nil {
		t.Fatal("expected error when a step starts the chain")
	}
	if _, err := Build(Spec{Type: "LoadNumpyAry"}, Spec{Type: "LoadNumpyAry"}); err == nil {
		t.Fatal("expected error for a loader after the first position")
	}
	_, err = Build(Spec{Type: "LoadNumpyAry"}, Spec{Type: "SpecChunking", Args: json.RawMessage(`{"duration": 1, "window": 3}`)})
	if err == nil || !strings.Contains(err.Error(), "SpecChunking") {
		t.Fatalf("expected unknown arg error, got %v", err)
	}
	if _, err := Build(Spec{Type: "LoadNumpyAry"}, Spec{Type: "SpecChunking", Args: json.RawMessage(`{"hop_size": 0}`)}); err == nil {
		t.Fatal("expected validation error for hop_size 0")
	}
}

func TestChainLoadsAndChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.npy")
	if err := ndarray.Save(path, spectrogram(t, 3, 10)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	chain, err := Build(
		Spec{Type: "LoadNumpyAry"},
		Spec{Type: "SpecChunking", Args: json.RawMessage(`{"duration": 4, "sr": 1, "hop_size": 1}`)},
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(chain.Names(), []string{"LoadNumpyAry", "SpecChunking"}) {
		t.Fatalf("unexpected names %v", chain.Names())
	}
	out, err := chain.Apply(path)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if out.ShapeString() != "(2, 3, 4)" {
		t.Fatalf("unexpected shape %s", out.ShapeString())
	}

	if _, err := chain.Apply(filepath.Join(t.TempDir(), "missing.npy")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"LoadNumpyAry", "SpecChunking"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}
