package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audioprep/internal/dataset"
	"audioprep/internal/loader"
	"audioprep/internal/logging"
)

type batchPlan struct {
	Epoch           int     `json:"epoch"`
	BatchSize       int     `json:"batch_size"`
	Shuffle         bool    `json:"shuffle"`
	ValidationSplit float64 `json:"validation_split"`
	Seed            uint64  `json:"seed"`
	TrainSamples    int     `json:"train_samples"`
	ValidSamples    int     `json:"validation_samples"`
	Train           [][]int `json:"train"`
	Validation      [][]int `json:"validation,omitempty"`
}

func newLoaderCommand(ctx *commandContext) *cobra.Command {
	var (
		flags      datasetFlags
		batchSize  int
		shuffle    bool
		split      float64
		seed       uint64
		epoch      int
		check      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "loader [root...]",
		Short: "Show the training/validation batch plan for a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts, err := flags.options(cfg, args, logging.NewComponentLogger(logger, "dataset"))
			if err != nil {
				return err
			}

			loaderOpts := loader.Options{
				BatchSize:       cfg.Loader.BatchSize,
				Shuffle:         cfg.Loader.Shuffle,
				ValidationSplit: cfg.Loader.ValidationSplit,
				Seed:            cfg.Loader.Seed,
			}
			if cmd.Flags().Changed("batch-size") {
				loaderOpts.BatchSize = batchSize
			}
			if cmd.Flags().Changed("shuffle") {
				loaderOpts.Shuffle = shuffle
			}
			if cmd.Flags().Changed("split") {
				loaderOpts.ValidationSplit = split
			}
			if cmd.Flags().Changed("seed") {
				loaderOpts.Seed = seed
			}

			idx, err := dataset.Open(opts)
			if err != nil {
				return err
			}
			samples := dataset.Paths(idx)
			ld, err := loader.New[dataset.Sample[string]](samples, loaderOpts)
			if err != nil {
				return err
			}

			plan := batchPlan{
				Epoch:           epoch,
				BatchSize:       loaderOpts.BatchSize,
				Shuffle:         loaderOpts.Shuffle || loaderOpts.ValidationSplit > 0,
				ValidationSplit: loaderOpts.ValidationSplit,
				Seed:            loaderOpts.Seed,
				TrainSamples:    ld.TrainLen(),
				ValidSamples:    ld.ValidationLen(),
				Train:           ld.Batches(epoch),
			}
			if val := ld.Validation(); val != nil {
				plan.Validation = val.Batches(epoch)
			}

			if check {
				if err := loadAll(ld, plan.Train); err != nil {
					return err
				}
				if val := ld.Validation(); val != nil {
					if err := loadAll(val, plan.Validation); err != nil {
						return err
					}
				}
			}

			if jsonOutput {
				return writeJSON(cmd, plan)
			}
			printBatchPlan(cmd, plan)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0, "Samples per batch (default from config)")
	cmd.Flags().BoolVar(&shuffle, "shuffle", false, "Shuffle training batches (default from config)")
	cmd.Flags().Float64Var(&split, "split", 0, "Fraction of samples held out for validation (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed for the split and shuffling (default from config)")
	cmd.Flags().IntVar(&epoch, "epoch", 0, "Epoch whose batch order is shown")
	cmd.Flags().BoolVar(&check, "check", false, "Load every sample to verify the plan is readable")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func loadAll[T any](ld *loader.Loader[T], batches [][]int) error {
	for _, batch := range batches {
		if _, err := ld.Load(batch); err != nil {
			return err
		}
	}
	return nil
}

func printBatchPlan(cmd *cobra.Command, plan batchPlan) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Training samples: %d\n", plan.TrainSamples)
	fmt.Fprintf(out, "Validation samples: %d\n", plan.ValidSamples)
	fmt.Fprintf(out, "Batch size: %d (shuffle: %s, seed: %d, epoch: %d)\n", plan.BatchSize, yesNo(plan.Shuffle), plan.Seed, plan.Epoch)

	rows := make([][]string, 0, len(plan.Train)+len(plan.Validation))
	for i, batch := range plan.Train {
		rows = append(rows, []string{"train", strconv.Itoa(i), strconv.Itoa(len(batch)), joinIndices(batch)})
	}
	for i, batch := range plan.Validation {
		rows = append(rows, []string{"validation", strconv.Itoa(i), strconv.Itoa(len(batch)), joinIndices(batch)})
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No batches")
		return
	}
	fmt.Fprintln(out, renderTable(out, []string{"Set", "Batch", "Size", "Indices"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft}))
}

func joinIndices(batch []int) string {
	parts := make([]string, len(batch))
	for i, v := range batch {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
