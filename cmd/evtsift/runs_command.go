package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"evtsift/internal/journal"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var showFiles bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("the run journal is disabled; enable it in the [journal] config section")
			}

			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Format(time.DateTime),
					string(run.Status),
					strconv.Itoa(run.FilesTotal),
					strconv.Itoa(run.FilesFailed),
					strconv.Itoa(run.RecordsWritten),
					run.OutputPath,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Status", "Files", "Failed", "Rows", "Output"},
				rows, 4, 5, 6))

			if !showFiles {
				return nil
			}
			for _, run := range runs {
				outcomes, err := store.FilesForRun(cmd.Context(), run.ID)
				if err != nil {
					return fmt.Errorf("list files for run %s: %w", shortID(run.ID), err)
				}
				if len(outcomes) == 0 {
					continue
				}
				fileRows := make([][]string, 0, len(outcomes))
				for _, outcome := range outcomes {
					fileRows = append(fileRows, []string{
						outcome.Path,
						outcome.Status,
						strconv.Itoa(outcome.Records),
						outcome.Detail,
					})
				}
				fmt.Fprintf(out, "\nRun %s\n", shortID(run.ID))
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Status", "Records", "Detail"},
					fileRows, 3))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&showFiles, "files", false, "Also list per-file outcomes")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
