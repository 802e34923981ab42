package transform

import (
	"encoding/json"
	"errors"
	"fmt"

	"audioprep/internal/ndarray"
)

// SpecChunking slices a (freq, frames) spectrogram into non-overlapping
// fixed-length chunks along the time axis, producing (chunks, freq, frames).
type SpecChunking struct {
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sr"`
	HopSize    int     `json:"hop_size"`
	// Reverse aligns chunks to the end of the spectrogram, dropping the
	// leading leftover frames instead of the trailing ones.
	Reverse bool `json:"reverse"`
}

func newSpecChunking(args json.RawMessage) (Step, error) {
	cfg := SpecChunking{Duration: 0.5, SampleRate: 22050, HopSize: 735}
	if err := decodeArgs(args, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c SpecChunking) validate() error {
	if c.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	if c.SampleRate <= 0 {
		return errors.New("sr must be positive")
	}
	if c.HopSize <= 0 {
		return errors.New("hop_size must be positive")
	}
	if c.ChunkFrames() == 0 {
		return fmt.Errorf("duration %.3fs at sr %d with hop_size %d is shorter than one frame", c.Duration, c.SampleRate, c.HopSize)
	}
	return nil
}

// ChunkFrames is the number of spectrogram frames per chunk.
func (c SpecChunking) ChunkFrames() int {
	return int(c.Duration * float64(c.SampleRate) / float64(c.HopSize))
}

// Apply implements Step.
func (c SpecChunking) Apply(in *ndarray.Array) (*ndarray.Array, error) {
	if in.Rank() != 2 {
		return nil, fmt.Errorf("expected a 2-D spectrogram, got shape %s", in.ShapeString())
	}
	freq, frames := in.Shape[0], in.Shape[1]
	width := c.ChunkFrames()
	count := frames / width
	if count == 0 {
		return nil, fmt.Errorf("spectrogram with %d frames is shorter than one %d-frame chunk", frames, width)
	}
	offset := 0
	if c.Reverse {
		offset = frames - count*width
	}

	data := make([]float64, 0, count*freq*width)
	for chunk := 0; chunk < count; chunk++ {
		start := offset + chunk*width
		for row := 0; row < freq; row++ {
			base := row * frames
			data = append(data, in.Data[base+start:base+start+width]...)
		}
	}
	return ndarray.New([]int{count, freq, width}, data)
}
