// Package loader groups dataset samples into batches and holds out a seeded
// validation split.
package loader

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Source is an indexable collection of samples, typically a dataset.Dataset.
type Source[T any] interface {
	Len() int
	Get(i int) (T, error)
}

// Options controls batching and the validation split.
type Options struct {
	BatchSize int
	Shuffle   bool
	// ValidationSplit is the fraction of samples held out, in [0, 1).
	ValidationSplit float64
	Seed            uint64
}

// Loader yields batches of source indices.
type Loader[T any] struct {
	source     Source[T]
	batchSize  int
	shuffle    bool
	seed       uint64
	indices    []int
	validation *Loader[T]
}

// New builds a loader over source. With a validation split the indices are
// permuted from Seed, the leading share is held out and training batches are
// always drawn in random order.
func New[T any](source Source[T], opts Options) (*Loader[T], error) {
	if source == nil {
		return nil, errors.New("loader: source is required")
	}
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("loader: batch size must be positive, got %d", opts.BatchSize)
	}
	if opts.ValidationSplit < 0 || opts.ValidationSplit >= 1 || math.IsNaN(opts.ValidationSplit) {
		return nil, fmt.Errorf("loader: validation split must be in [0, 1), got %v", opts.ValidationSplit)
	}

	n := source.Len()
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	l := &Loader[T]{
		source:    source,
		batchSize: opts.BatchSize,
		shuffle:   opts.Shuffle,
		seed:      opts.Seed,
		indices:   all,
	}
	if opts.ValidationSplit == 0 {
		return l, nil
	}

	held := int(float64(n) * opts.ValidationSplit)
	if held >= n {
		return nil, fmt.Errorf("loader: validation split %v leaves no training samples out of %d", opts.ValidationSplit, n)
	}
	perm := rand.New(rand.NewPCG(opts.Seed, 0)).Perm(n)
	l.validation = &Loader[T]{
		source:    source,
		batchSize: opts.BatchSize,
		seed:      opts.Seed,
		indices:   perm[:held],
	}
	l.indices = perm[held:]
	l.shuffle = true
	return l, nil
}

// TrainLen returns the number of training samples.
func (l *Loader[T]) TrainLen() int {
	return len(l.indices)
}

// ValidationLen returns the number of held-out samples.
func (l *Loader[T]) ValidationLen() int {
	if l.validation == nil {
		return 0
	}
	return len(l.validation.indices)
}

// Validation returns a non-shuffling loader over the held-out samples, or nil
// when no split was configured.
func (l *Loader[T]) Validation() *Loader[T] {
	return l.validation
}

// Batches returns the source indices for each batch of the given epoch. When
// shuffling, order is derived from Seed and epoch so runs are reproducible.
// The last batch may be short.
func (l *Loader[T]) Batches(epoch int) [][]int {
	order := append([]int(nil), l.indices...)
	if l.shuffle {
		rng := rand.New(rand.NewPCG(l.seed, uint64(epoch)+1))
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}

	batches := make([][]int, 0, (len(order)+l.batchSize-1)/l.batchSize)
	for start := 0; start < len(order); start += l.batchSize {
		end := min(start+l.batchSize, len(order))
		batches = append(batches, order[start:end])
	}
	return batches
}

// Load fetches every sample in batch, stopping at the first error.
func (l *Loader[T]) Load(batch []int) ([]T, error) {
	out := make([]T, 0, len(batch))
	for _, i := range batch {
		sample, err := l.source.Get(i)
		if err != nil {
			return nil, fmt.Errorf("load sample %d: %w", i, err)
		}
		out = append(out, sample)
	}
	return out, nil
}
