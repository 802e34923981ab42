package loader

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

type intSource struct {
	n      int
	failAt int
	calls  int
}

func (s *intSource) Len() int { return s.n }

func (s *intSource) Get(i int) (int, error) {
	s.calls++
	if i == s.failAt {
		return 0, errors.New("corrupt sample")
	}
	return i * 10, nil
}

func newSource(n int) *intSource { return &intSource{n: n, failAt: -1} }

func flatten(batches [][]int) []int {
	var out []int
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}

func TestBatchesInOrderWithoutShuffle(t *testing.T) {
	l, err := New[int](newSource(7), Options{BatchSize: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := [][]int{{0, 1, 2}, {3, 4, 5}, {6}}
	if got := l.Batches(0); !reflect.DeepEqual(got, want) {
		t.Fatalf("Batches = %v, want %v", got, want)
	}
	if l.Validation() != nil || l.ValidationLen() != 0 || l.TrainLen() != 7 {
		t.Fatalf("unexpected split: train=%d val=%d", l.TrainLen(), l.ValidationLen())
	}
}

func TestShuffleIsSeededPerEpoch(t *testing.T) {
	opts := Options{BatchSize: 4, Shuffle: true, Seed: 42}
	a, err := New[int](newSource(20), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b, _ := New[int](newSource(20), opts)

	if !reflect.DeepEqual(a.Batches(0), b.Batches(0)) {
		t.Fatal("same seed and epoch should produce identical batches")
	}
	if reflect.DeepEqual(flatten(a.Batches(0)), flatten(a.Batches(1))) {
		t.Fatal("different epochs should reshuffle")
	}
	got := flatten(a.Batches(3))
	slices.Sort(got)
	want := make([]int, 20)
	for i := range want {
		want[i] = i
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("epoch should cover every index exactly once, got %v", got)
	}
}

func TestValidationSplitPartitionsIndices(t *testing.T) {
	l, err := New[int](newSource(10), Options{BatchSize: 2, ValidationSplit: 0.25, Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.ValidationLen() != 2 || l.TrainLen() != 8 {
		t.Fatalf("unexpected split: train=%d val=%d", l.TrainLen(), l.ValidationLen())
	}

	val := l.Validation()
	if val == nil {
		t.Fatal("expected validation loader")
	}
	valIdx := flatten(val.Batches(0))
	if !reflect.DeepEqual(valIdx, flatten(val.Batches(5))) {
		t.Fatal("validation loader should not shuffle")
	}

	seen := map[int]bool{}
	for _, i := range append(flatten(l.Batches(0)), valIdx...) {
		if seen[i] {
			t.Fatalf("index %d appears in both partitions", i)
		}
		seen[i] = true
	}
	if len(seen) != 10 {
		t.Fatalf("expected all 10 indices, got %d", len(seen))
	}

	again, _ := New[int](newSource(10), Options{BatchSize: 2, ValidationSplit: 0.25, Seed: 7})
	if !reflect.DeepEqual(flatten(again.Validation().Batches(0)), valIdx) {
		t.Fatal("validation split should be reproducible from the seed")
	}
}

func TestValidationSplitForcesShuffle(t *testing.T) {
	l, err := New[int](newSource(50), Options{BatchSize: 50, ValidationSplit: 0.1, Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if reflect.DeepEqual(l.Batches(0), l.Batches(1)) {
		t.Fatal("training order should change between epochs when a split is set")
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	cases := map[string]Options{
		"zero batch":      {BatchSize: 0},
		"negative split":  {BatchSize: 1, ValidationSplit: -0.1},
		"split of one":    {BatchSize: 1, ValidationSplit: 1},
		"no training set": {BatchSize: 1, ValidationSplit: 0.5},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			src := newSource(2)
			if name == "no training set" {
				src = newSource(0)
			}
			if _, err := New[int](src, opts); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestLoadFailsFast(t *testing.T) {
	src := &intSource{n: 5, failAt: 2}
	l, err := New[int](src, Options{BatchSize: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := l.Load([]int{0, 1, 2, 3, 4}); err == nil {
		t.Fatal("expected load error")
	}
	if src.calls != 3 {
		t.Fatalf("expected loading to stop at the failing sample, got %d calls", src.calls)
	}

	got, err := l.Load([]int{4, 0})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, []int{40, 0}) {
		t.Fatalf("unexpected samples %v", got)
	}
}
