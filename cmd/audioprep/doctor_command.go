package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audioprep/internal/jobspec"
	"audioprep/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var (
		jobPath    string
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories and, optionally, a job's inputs and output location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var job *jobspec.Job
			if path := strings.TrimSpace(jobPath); path != "" {
				if job, err = jobspec.Load(path); err != nil {
					return err
				}
			}

			results := preflight.RunAll(cfg, job)
			if jsonOutput {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					status := "ok"
					if !r.Passed {
						status = "FAIL"
					}
					rows = append(rows, []string{r.Name, status, r.Detail})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(out, []string{"Check", "Status", "Detail"}, rows, nil))
			}
			if preflight.Failed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&jobPath, "job", "j", "", "Also check the dataset roots and save_dir of this job file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
