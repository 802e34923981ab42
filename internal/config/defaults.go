package config

const (
	defaultStateDir              = "~/.local/share/audioprep"
	defaultLogDir                = "~/.local/share/audioprep/logs"
	defaultSubset                = "all"
	defaultBatchSize             = 8
	defaultValidationSplit       = 0.1
	defaultProgressBucketPercent = 10
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultLogRetentionDays      = 30
)

var defaultExtensions = []string{"wav", "mp3", "npy", "pth"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Dataset: Dataset{
			Extensions: append([]string(nil), defaultExtensions...),
			Subset:     defaultSubset,
		},
		Loader: Loader{
			BatchSize:       defaultBatchSize,
			Shuffle:         true,
			ValidationSplit: defaultValidationSplit,
		},
		Preprocess: Preprocess{
			ProgressBucketPercent: defaultProgressBucketPercent,
			RecordOutputs:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
