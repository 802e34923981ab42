// Package transform builds the preprocessing chain applied to every dataset
// record: one Loader turning a path into an array, followed by Steps that
// reshape or rescale it. Chains are assembled by name from a fixed registry so
// job files can only reference known implementations.
package transform

import (
	"fmt"

	"audioprep/internal/ndarray"
)

// Loader reads the array stored at path.
type Loader interface {
	Load(path string) (*ndarray.Array, error)
}

// Step transforms an array.
type Step interface {
	Apply(in *ndarray.Array) (*ndarray.Array, error)
}

// Chain runs a Loader and then each Step in order.
type Chain struct {
	names  []string
	loader Loader
	steps  []Step
}

// NewChain assembles a chain from already constructed parts.
func NewChain(loader Loader, steps ...Step) *Chain {
	return &Chain{loader: loader, steps: steps}
}

// Apply loads path and runs every step. It stops at the first failure.
func (c *Chain) Apply(path string) (*ndarray.Array, error) {
	arr, err := c.loader.Load(path)
	if err != nil {
		return nil, err
	}
	for i, step := range c.steps {
		arr, err = step.Apply(arr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.stepName(i+1), err)
		}
	}
	return arr, nil
}

// Names returns the registry names the chain was built from, if any.
func (c *Chain) Names() []string {
	return append([]string(nil), c.names...)
}

func (c *Chain) stepName(pos int) string {
	if pos < len(c.names) {
		return c.names[pos]
	}
	return fmt.Sprintf("step %d", pos)
}
