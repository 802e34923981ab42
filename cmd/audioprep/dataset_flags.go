package main

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"audioprep/internal/config"
	"audioprep/internal/dataset"
)

// datasetFlags are the index options shared by commands that scan a dataset.
type datasetFlags struct {
	roots      []string
	subset     string
	extensions []string
}

func (f *datasetFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.roots, "root", "r", nil, "Dataset root directory (repeatable, scanned in order)")
	cmd.Flags().StringVar(&f.subset, "subset", "", "Split to index: all, train or test (default from config)")
	cmd.Flags().StringArrayVarP(&f.extensions, "ext", "e", nil, "Extension filter, matched as a substring (repeatable, default from config)")
}

// options merges flags over config defaults. Positional args are treated as
// additional roots.
func (f *datasetFlags) options(cfg *config.Config, args []string, logger *slog.Logger) (dataset.Options, error) {
	roots := append(append([]string(nil), f.roots...), args...)
	if len(roots) == 0 {
		return dataset.Options{}, errors.New("at least one dataset root is required (--root)")
	}

	subsetValue := cfg.Dataset.Subset
	if strings.TrimSpace(f.subset) != "" {
		subsetValue = f.subset
	}
	subset, err := dataset.ParseSubset(subsetValue)
	if err != nil {
		return dataset.Options{}, err
	}

	exts := cfg.Dataset.Extensions
	if len(f.extensions) > 0 {
		exts = f.extensions
	}
	return dataset.Options{
		Roots:      roots,
		Extensions: exts,
		Subset:     subset,
		Logger:     logger,
	}, nil
}
