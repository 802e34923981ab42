package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"audioprep/internal/dataset"
	"audioprep/internal/logging"
)

type labelCount struct {
	Label   string `json:"label"`
	Records int    `json:"records"`
}

type indexSummary struct {
	Roots      []string     `json:"roots"`
	Subset     string       `json:"subset"`
	Extensions []string     `json:"extensions"`
	Records    int          `json:"records"`
	Labels     []labelCount `json:"labels"`
}

func newIndexCommand(ctx *commandContext) *cobra.Command {
	var (
		flags       datasetFlags
		limit       int
		summaryOnly bool
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "index [root...]",
		Short: "List the records of a labelled dataset",
		Long: `Scan each root's trainingdata/ and testdata/ directories and list every
matching file with its position and class label, in the order a dataset
would serve them.`,
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
			idx, err := dataset.Open(opts)
			if err != nil {
				return err
			}

			if summaryOnly {
				summary := summarizeIndex(idx)
				if jsonOutput {
					return writeJSON(cmd, summary)
				}
				printIndexSummary(cmd, summary)
				return nil
			}

			records := idx.Records()
			if limit > 0 && limit < len(records) {
				records = records[:limit]
			}
			if jsonOutput {
				if records == nil {
					records = []dataset.Record{}
				}
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No records found")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{strconv.Itoa(rec.Index), rec.Label, rec.Split, rec.Path})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out, []string{"Index", "Label", "Split", "Path"}, rows, []columnAlignment{alignRight}))
			if len(records) < idx.Len() {
				fmt.Fprintf(out, "Showing %d of %d records\n", len(records), idx.Len())
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many records (0 for all)")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Show per-label counts instead of records")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func summarizeIndex(idx *dataset.Index) indexSummary {
	counts := make(map[string]int)
	for _, rec := range idx.Records() {
		counts[rec.Label]++
	}
	labels := make([]labelCount, 0, len(counts))
	for _, label := range idx.Labels() {
		labels = append(labels, labelCount{Label: label, Records: counts[label]})
	}
	return indexSummary{
		Roots:      idx.Roots(),
		Subset:     idx.Subset().String(),
		Extensions: idx.Extensions(),
		Records:    idx.Len(),
		Labels:     labels,
	}
}

func printIndexSummary(cmd *cobra.Command, summary indexSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Subset: %s\n", summary.Subset)
	fmt.Fprintf(out, "Records: %d\n", summary.Records)
	fmt.Fprintf(out, "Labels: %d\n", len(summary.Labels))
	if len(summary.Labels) == 0 {
		return
	}
	rows := make([][]string, 0, len(summary.Labels))
	for _, lc := range summary.Labels {
		rows = append(rows, []string{lc.Label, strconv.Itoa(lc.Records)})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Label", "Records"}, rows, []columnAlignment{alignLeft, alignRight}))
}
