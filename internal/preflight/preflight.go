package preflight

import (
	"path/filepath"

	"audioprep/internal/config"
	"audioprep/internal/dataset"
	"audioprep/internal/jobspec"
	"audioprep/internal/preprocess"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks that apply to cfg and, when job is non-nil, to
// the job's dataset roots and output location.
func RunAll(cfg *config.Config, job *jobspec.Job) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if job == nil {
		return results
	}

	opts, err := job.DatasetOptions()
	if err != nil {
		return append(results, Result{Name: "Job dataset", Detail: err.Error()})
	}
	for _, root := range opts.Roots {
		results = append(results, CheckDatasetRoot(root, opts.Subset)...)
	}
	results = append(results, CheckWritableTarget("Output directory", preprocess.OutputDir(job)))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}

// CheckDatasetRoot verifies that every split directory required by subset
// exists under root and can be listed.
func CheckDatasetRoot(root string, subset dataset.Subset) []Result {
	splits := subset.Splits()
	results := make([]Result, 0, len(splits))
	for _, split := range splits {
		results = append(results, CheckReadableDirectory("Dataset "+split, filepath.Join(root, split)))
	}
	return results
}
