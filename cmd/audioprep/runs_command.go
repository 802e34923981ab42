package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"audioprep/internal/manifest"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded preprocessing runs",
	}
	cmd.AddCommand(newRunsListCommand(ctx))
	cmd.AddCommand(newRunsShowCommand(ctx))
	return cmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit      int
		jsonOutput bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []*manifest.Run{}
				}
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.Name,
					string(run.Status),
					strconv.Itoa(run.Records),
					strconv.Itoa(run.Files),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					formatDuration(run),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Name", "Status", "Records", "Files", "Started", "Duration"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var (
		showOutputs bool
		jsonOutput  bool
	)
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run and, optionally, the files it wrote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			var outputs []manifest.Output
			if showOutputs {
				if outputs, err = store.ListOutputs(cmd.Context(), run.ID); err != nil {
					return err
				}
			}

			if jsonOutput {
				payload := struct {
					*manifest.Run
					Outputs []manifest.Output `json:"outputs,omitempty"`
				}{Run: run, Outputs: outputs}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run: %s\n", run.ID)
			fmt.Fprintf(out, "Name: %s\n", run.Name)
			fmt.Fprintf(out, "Status: %s\n", run.Status)
			fmt.Fprintf(out, "Output: %s\n", run.OutputDir)
			fmt.Fprintf(out, "Subset: %s\n", run.Subset)
			fmt.Fprintf(out, "Records: %d\n", run.Records)
			fmt.Fprintf(out, "Files: %d\n", run.Files)
			fmt.Fprintf(out, "Started: %s\n", run.StartedAt.Local().Format(time.RFC3339))
			if run.FinishedAt != nil {
				fmt.Fprintf(out, "Duration: %s\n", formatDuration(run))
			}
			if run.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", run.Error)
			}
			if showOutputs && len(outputs) > 0 {
				rows := make([][]string, 0, len(outputs))
				for _, o := range outputs {
					rows = append(rows, []string{strconv.Itoa(o.RecordIndex), o.Label, o.Shape, o.OutputPath})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Record", "Label", "Shape", "Output"}, rows, []columnAlignment{alignRight}))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showOutputs, "outputs", false, "List every file written by the run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(run *manifest.Run) string {
	if run.FinishedAt == nil {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}
