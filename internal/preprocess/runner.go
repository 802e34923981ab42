package preprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audioprep/internal/config"
	"audioprep/internal/dataset"
	"audioprep/internal/fileutil"
	"audioprep/internal/jobspec"
	"audioprep/internal/logging"
	"audioprep/internal/manifest"
	"audioprep/internal/ndarray"
	"audioprep/internal/textutil"
	"audioprep/internal/transform"
)

const (
	lockFileName   = ".audioprep.lock"
	configFileName = "config.json"
)

// ErrLocked is returned when another run holds the output directory lock.
var ErrLocked = errors.New("output directory is locked by another run")

// Summary describes a finished run.
type Summary struct {
	RunID     string        `json:"run_id"`
	Name      string        `json:"name"`
	OutputDir string        `json:"output_dir"`
	Records   int           `json:"records"`
	Files     int           `json:"files"`
	Duration  time.Duration `json:"duration"`
}

// Runner executes preprocessing jobs.
type Runner struct {
	store          *manifest.Store
	logger         *slog.Logger
	progressBucket float64
	recordOutputs  bool
}

// NewRunner constructs a runner. store may be nil to skip manifest bookkeeping.
func NewRunner(cfg *config.Config, store *manifest.Store, logger *slog.Logger) *Runner {
	r := &Runner{
		store:         store,
		logger:        logging.NewComponentLogger(logger, "preprocess"),
		recordOutputs: true,
	}
	if cfg != nil {
		r.progressBucket = cfg.Preprocess.ProgressBucketPercent
		r.recordOutputs = cfg.Preprocess.RecordOutputs
	}
	return r
}

// OutputDir returns the directory a job writes into.
func OutputDir(job *jobspec.Job) string {
	return filepath.Join(job.SaveDir, textutil.SanitizePathSegment(job.Name, "run"))
}

// Run processes every record of the job's dataset. The first error aborts
// the run and is returned; files already written are left in place.
func (r *Runner) Run(ctx context.Context, job *jobspec.Job) (*Summary, error) {
	if job == nil {
		return nil, errors.New("preprocess: job is required")
	}
	chain, err := transform.Build(job.TransformSpecs()...)
	if err != nil {
		return nil, fmt.Errorf("build transforms: %w", err)
	}
	opts, err := job.DatasetOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logging.NewComponentLogger(r.logger, "dataset")
	idx, err := dataset.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("index dataset: %w", err)
	}

	outDir, err := filepath.Abs(OutputDir(job))
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	lock := flock.New(filepath.Join(outDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", outDir, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release output lock", logging.String("path", lock.Path()), logging.Error(err))
		}
	}()

	configJSON, err := job.Marshal()
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(outDir, configFileName), configJSON, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", configFileName, err)
	}

	summary := &Summary{RunID: uuid.NewString(), Name: job.Name, OutputDir: outDir}
	runLogger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	started := time.Now()

	if r.store != nil {
		run := &manifest.Run{
			ID:         summary.RunID,
			Name:       job.Name,
			OutputDir:  outDir,
			Subset:     idx.Subset().String(),
			ConfigJSON: string(configJSON),
			StartedAt:  started,
		}
		if err := r.store.BeginRun(ctx, run); err != nil {
			return nil, fmt.Errorf("register run: %w", err)
		}
	}

	runLogger.Info("preprocess started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("name", job.Name),
		logging.String("output_dir", outDir),
		logging.Int("records", idx.Len()),
		logging.Any("transforms", chain.Names()),
	)

	runErr := r.process(ctx, runLogger, idx, chain, summary)
	summary.Duration = time.Since(started)

	status := manifest.StatusCompleted
	if runErr != nil {
		status = manifest.StatusFailed
	}
	if r.store != nil {
		// The run row must be closed out even when ctx was cancelled.
		finishCtx := context.WithoutCancel(ctx)
		if err := r.store.FinishRun(finishCtx, summary.RunID, status, summary.Records, summary.Files, runErr); err != nil {
			runLogger.Error("failed to record run status", logging.Error(err))
			if runErr == nil {
				runErr = fmt.Errorf("record run status: %w", err)
			}
		}
	}

	if runErr != nil {
		runLogger.Error("preprocess failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.Int("records", summary.Records),
			logging.Int("files", summary.Files),
			logging.Error(runErr),
			logging.String(logging.FieldErrorHint, "fix the failing record and rerun; existing outputs are overwritten"),
		)
		return summary, runErr
	}
	runLogger.Info("preprocess completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("records", summary.Records),
		logging.Int("files", summary.Files),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) process(ctx context.Context, logger *slog.Logger, idx *dataset.Index, chain *transform.Chain, summary *Summary) error {
	ds := dataset.WithTransform[*ndarray.Array](idx, chain.Apply)
	sampler := logging.NewProgressSampler(r.progressBucket)
	total := ds.Len()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := idx.Get(i)
		if err != nil {
			return err
		}
		sample, err := ds.Get(i)
		if err != nil {
			return err
		}
		written, err := r.save(ctx, summary, rec, sample.Payload)
		summary.Files += written
		if err != nil {
			return err
		}
		summary.Records++

		if sampler.ShouldLog(summary.Records, total) {
			logger.Info("preprocess progress",
				logging.String(logging.FieldEventType, "run_progress"),
				logging.Int("done", summary.Records),
				logging.Int("total", total),
				logging.Int("files", summary.Files),
			)
		}
	}
	return nil
}

// save writes one record's payload. A chunked (rank-3) payload becomes one
// file per chunk named <stem>_<i>.npy; anything else is written as <stem>.npy.
func (r *Runner) save(ctx context.Context, summary *Summary, rec dataset.Record, arr *ndarray.Array) (int, error) {
	dir := filepath.Join(summary.OutputDir, rec.Split, rec.Label)
	stem := textutil.Stem(filepath.Base(rec.Path))

	if arr.Rank() != 3 || arr.Shape[0] == 0 {
		return r.write(ctx, summary.RunID, rec, filepath.Join(dir, stem+".npy"), arr)
	}

	written := 0
	for i := 0; i < arr.Shape[0]; i++ {
		chunk, err := arr.Index(i)
		if err != nil {
			return written, err
		}
		n, err := r.write(ctx, summary.RunID, rec, filepath.Join(dir, stem+"_"+strconv.Itoa(i)+".npy"), chunk)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (r *Runner) write(ctx context.Context, runID string, rec dataset.Record, path string, arr *ndarray.Array) (int, error) {
	err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return ndarray.Write(w, arr)
	})
	if err != nil {
		return 0, fmt.Errorf("save record %d to %s: %w", rec.Index, path, err)
	}
	if r.store != nil && r.recordOutputs {
		out := manifest.Output{
			RunID:       runID,
			RecordIndex: rec.Index,
			Label:       rec.Label,
			SourcePath:  rec.Path,
			OutputPath:  path,
			Shape:       arr.ShapeString(),
		}
		if err := r.store.AddOutput(ctx, out); err != nil {
			return 1, err
		}
	}
	return 1, nil
}
