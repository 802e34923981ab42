package dataset

import "fmt"

// Transform converts a record path into an in-memory payload.
type Transform[T any] func(path string) (T, error)

// Sample is a record whose path has been replaced by its transformed payload.
type Sample[T any] struct {
	Index   int
	Label   string
	Payload T
}

// Dataset applies a Transform to index records on every Get.
type Dataset[T any] struct {
	index     *Index
	transform Transform[T]
}

// WithTransform wraps idx so Get returns transform(path) as the payload.
func WithTransform[T any](idx *Index, transform Transform[T]) *Dataset[T] {
	return &Dataset[T]{index: idx, transform: transform}
}

// Paths wraps idx with the identity transform; payloads are the raw paths.
func Paths(idx *Index) *Dataset[string] {
	return WithTransform(idx, func(path string) (string, error) { return path, nil })
}

// Index returns the underlying record index.
func (d *Dataset[T]) Index() *Index {
	return d.index
}

// Len returns the number of samples.
func (d *Dataset[T]) Len() int {
	return d.index.Len()
}

// Get loads sample i. The transform runs once per call; its error is
// returned wrapped with the record position.
func (d *Dataset[T]) Get(i int) (Sample[T], error) {
	rec, err := d.index.Get(i)
	if err != nil {
		return Sample[T]{}, err
	}
	payload, err := d.transform(rec.Path)
	if err != nil {
		return Sample[T]{}, fmt.Errorf("transform record %d (%s): %w", rec.Index, rec.Path, err)
	}
	return Sample[T]{Index: rec.Index, Label: rec.Label, Payload: payload}, nil
}
