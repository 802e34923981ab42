package transform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownTransform reports a transform name missing from the registry.
var ErrUnknownTransform = errors.New("unknown transform")

// Spec names a registered transform and carries its JSON arguments.
type Spec struct {
	Type string
	Args json.RawMessage
}

type loaderFactory func(args json.RawMessage) (Loader, error)

type stepFactory func(args json.RawMessage) (Step, error)

var loaders = map[string]loaderFactory{
	"LoadNumpyAry": newLoadNumpy,
}

var steps = map[string]stepFactory{
	"SpecChunking": newSpecChunking,
}

// Names returns every registered transform name, sorted.
func Names() []string {
	names := make([]string, 0, len(loaders)+len(steps))
	for name := range loaders {
		names = append(names, name)
	}
	for name := range steps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build constructs a chain. The first spec must name a loader and every
// following spec a step.
func Build(specs ...Spec) (*Chain, error) {
	if len(specs) == 0 {
		return nil, errors.New("at least one transform is required")
	}

	first := specs[0]
	newLoader, ok := loaders[first.Type]
	if !ok {
		if _, isStep := steps[first.Type]; isStep {
			return nil, fmt.Errorf("transform %q cannot start a chain; it expects an array input", first.Type)
		}
		return nil, unknown(first.Type)
	}
	loader, err := newLoader(first.Args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", first.Type, err)
	}

	chain := &Chain{names: []string{first.Type}, loader: loader}
	for _, spec := range specs[1:] {
		newStep, ok := steps[spec.Type]
		if !ok {
			if _, isLoader := loaders[spec.Type]; isLoader {
				return nil, fmt.Errorf("transform %q loads from a path and must come first", spec.Type)
			}
			return nil, unknown(spec.Type)
		}
		step, err := newStep(spec.Args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Type, err)
		}
		chain.names = append(chain.names, spec.Type)
		chain.steps = append(chain.steps, step)
	}
	return chain, nil
}

func unknown(name string) error {
	return fmt.Errorf("%w %q (known: %s)", ErrUnknownTransform, name, strings.Join(Names(), ", "))
}

// decodeArgs strictly decodes JSON args into dst. Empty and null args leave
// dst untouched.
func decodeArgs(args json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
