package transform

import (
	"encoding/json"

	"audioprep/internal/ndarray"
)

// LoadNumpy loads arrays serialized with numpy.save.
type LoadNumpy struct{}

func newLoadNumpy(args json.RawMessage) (Loader, error) {
	var cfg struct{}
	if err := decodeArgs(args, &cfg); err != nil {
		return nil, err
	}
	return LoadNumpy{}, nil
}

// Load implements Loader.
func (LoadNumpy) Load(path string) (*ndarray.Array, error) {
	return ndarray.Load(path)
}
