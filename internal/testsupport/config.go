package testsupport

import (
	"path/filepath"
	"testing"

	"audioprep/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Loader.Seed = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithLoader overrides the loader defaults on the test config.
func WithLoader(batchSize int, shuffle bool, validationSplit float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Loader.BatchSize = batchSize
		b.cfg.Loader.Shuffle = shuffle
		b.cfg.Loader.ValidationSplit = validationSplit
	}
}

// WithoutOutputRecords disables per-file manifest rows.
func WithoutOutputRecords() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Preprocess.RecordOutputs = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
