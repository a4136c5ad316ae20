package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"evtsift/internal/filter"
	"evtsift/internal/logging"
	"evtsift/internal/pipeline"
)

var boundaryLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseBoundary(flag, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range boundaryLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q is not 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", flag, value)
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		inputDir       string
		outputPath     string
		startDate      string
		endDate        string
		includeIDs     string
		includeIDsFile string
		excludeIDs     string
		excludeIDsFile string
		failureLog     string
		workers        int
		placeholder    string
		decoderPath    string
		timeoutSecs    int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Decode, filter, and merge a directory of event logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			start, err := parseBoundary("--start-date", startDate)
			if err != nil {
				return err
			}
			end, err := parseBoundary("--end-date", endDate)
			if err != nil {
				return err
			}

			include, err := filter.CollectIDs(includeIDs, includeIDsFile)
			if err != nil {
				return fmt.Errorf("include event IDs: %w", err)
			}
			exclude, err := filter.CollectIDs(excludeIDs, excludeIDsFile)
			if err != nil {
				return fmt.Errorf("exclude event IDs: %w", err)
			}

			spec, err := filter.NewSpec(start, end, include, exclude)
			if err != nil {
				return err
			}

			// Flags override the config file for this run only.
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("placeholder-char") {
				cfg.Output.Placeholder = placeholder
			}
			if cmd.Flags().Changed("decoder") {
				cfg.Decoder.Binary = decoderPath
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Decoder.TimeoutSeconds = timeoutSecs
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, closer, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}
			if closer != nil {
				defer closer.Close()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stats, runErr := pipeline.Run(runCtx, cfg, pipeline.Request{
				InputDir:       inputDir,
				OutputPath:     outputPath,
				FailureLogPath: failureLog,
				Filter:         spec,
			}, logger)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(stats))
			if stats.Interrupted {
				fmt.Fprintln(out, "Run interrupted; partial output was flushed.")
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&inputDir, "dir", "", "Directory scanned recursively for .evt/.evtx files")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination CSV file")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Window start, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Window end, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'")
	cmd.Flags().StringVar(&includeIDs, "event-ids", "", "Comma-separated event IDs to include")
	cmd.Flags().StringVar(&includeIDsFile, "event-ids-file", "", "File with event IDs to include, one per line")
	cmd.Flags().StringVar(&excludeIDs, "exclude-event-ids", "", "Comma-separated event IDs to exclude (wins over include)")
	cmd.Flags().StringVar(&excludeIDsFile, "exclude-event-ids-file", "", "File with event IDs to exclude, one per line")
	cmd.Flags().StringVar(&failureLog, "failure-log", "", "Per-file failure log (default <output>.log)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel decoder invocations (0 selects cores-1)")
	cmd.Flags().StringVar(&placeholder, "placeholder-char", "", "Replacement for the CSV delimiter inside field values")
	cmd.Flags().StringVar(&decoderPath, "decoder", "", "Path to the external log decoder executable")
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, "Per-file decoder timeout in seconds (0 disables)")

	for _, required := range []string{"dir", "output", "start-date", "end-date"} {
		_ = cmd.MarkFlagRequired(required)
	}
	return cmd
}

func renderSummary(stats pipeline.Stats) string {
	return renderMetrics([]metricPair{
		{"Files scanned", strconv.Itoa(stats.FilesTotal)},
		{"Files decoded", strconv.Itoa(stats.FilesOK)},
		{"Files empty", strconv.Itoa(stats.FilesEmpty)},
		{"Files failed", strconv.Itoa(stats.FilesFailed)},
		{"Records decoded", strconv.Itoa(stats.RecordsDecoded)},
		{"Records written", strconv.Itoa(stats.RecordsWritten)},
		{"Records filtered", strconv.Itoa(stats.RecordsFiltered)},
		{"Records dropped", strconv.Itoa(stats.RecordsDropped)},
	})
}
