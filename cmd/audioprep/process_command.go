package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"audioprep/internal/jobspec"
	"audioprep/internal/preprocess"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var (
		jobPath    string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "process --job <file>",
		Short: "Run a preprocessing job and save transformed records as .npy files",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(jobPath)
			if path == "" && len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("a job file is required (--job)")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			job, err := jobspec.Load(path)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := preprocess.NewRunner(cfg, store, logger).Run(runCtx, job)
			if err != nil {
				if summary != nil && summary.RunID != "" {
					return fmt.Errorf("run %s: %w", summary.RunID, err)
				}
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s completed\n", summary.RunID)
			fmt.Fprintf(out, "Output: %s\n", summary.OutputDir)
			fmt.Fprintf(out, "Records: %d\n", summary.Records)
			fmt.Fprintf(out, "Files: %d\n", summary.Files)
			fmt.Fprintf(out, "Duration: %s\n", summary.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Path to the JSON job file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run summary as JSON")
	cmd.Args = cobra.MaximumNArgs(1)
	return cmd
}
