package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"evtsift/internal/config"
	"evtsift/internal/csvmerge"
	"evtsift/internal/decoder"
	"evtsift/internal/faillog"
	"evtsift/internal/filter"
	"evtsift/internal/journal"
	"evtsift/internal/logging"
	"evtsift/internal/scan"
	"evtsift/internal/scheduler"
)

// ErrAllFilesFailed marks a run in which not a single input file decoded.
// Partial success over a large batch is still success; only a clean sweep of
// failures is worth a non-zero exit.
var ErrAllFilesFailed = errors.New("every input file failed to decode")

// Request carries the per-run inputs that do not live in the config file.
type Request struct {
	InputDir       string
	OutputPath     string
	FailureLogPath string // empty selects OutputPath + ".log"
	Filter         filter.Spec
}

// Run executes one batch. It blocks until every discovered file reached a
// terminal outcome or ctx was cancelled; on cancellation already-produced
// output is still flushed.
func Run(ctx context.Context, cfg *config.Config, req Request, logger *slog.Logger) (Stats, error) {
	var stats Stats
	log := logging.NewComponentLogger(logger, "pipeline")

	// The boundary validated all of this already; re-reject defensively so a
	// programmatic caller cannot sneak an unusable combination past it.
	if err := cfg.Validate(); err != nil {
		return stats, err
	}
	if req.Filter.Start.IsZero() || req.Filter.End.IsZero() || req.Filter.Start.After(req.Filter.End) {
		return stats, fmt.Errorf("invalid time window [%s, %s]", req.Filter.Start, req.Filter.End)
	}
	if req.OutputPath == "" {
		return stats, errors.New("output path is required")
	}
	if req.FailureLogPath == "" {
		req.FailureLogPath = req.OutputPath + ".log"
	}

	binary, err := preflight(cfg, req)
	if err != nil {
		return stats, err
	}

	files, skippedDirs, err := scan.EventLogs(req.InputDir)
	if err != nil {
		return stats, err
	}
	for _, dir := range skippedDirs {
		log.Warn("skipping unreadable path", logging.String("path", dir))
	}
	stats.FilesTotal = len(files)
	log.Info("starting run",
		logging.Int("files", len(files)),
		logging.Int("workers", workerCount(cfg)),
		logging.String("output", req.OutputPath))

	// One run per output file at a time; a second writer would interleave rows.
	lock := flock.New(req.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return stats, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return stats, fmt.Errorf("another run is already writing %s", req.OutputPath)
	}
	defer func() { _ = lock.Unlock() }()

	failures, err := faillog.Open(req.FailureLogPath, logger)
	if err != nil {
		return stats, err
	}
	writer, err := csvmerge.New(req.OutputPath, cfg.DelimiterRune(), cfg.PlaceholderRune())
	if err != nil {
		_ = failures.Close()
		return stats, err
	}

	runID := uuid.NewString()
	store := openJournal(cfg, log)
	if store != nil {
		defer store.Close()
		err := store.BeginRun(ctx, journal.Run{
			ID:          runID,
			StartedAt:   time.Now(),
			OutputPath:  req.OutputPath,
			WindowStart: req.Filter.Start,
			WindowEnd:   req.Filter.End,
			Workers:     workerCount(cfg),
		})
		if err != nil {
			log.Warn("journal unavailable for this run", logging.Error(err))
			store = nil
		}
	}

	adapter := decoder.New(binary, cfg.DecoderTimeout())

	var mu sync.Mutex
	process := func(ctx context.Context, path string) {
		result, err := adapter.Decode(ctx, path)
		if ctx.Err() != nil {
			// Cancelled mid-file; the file reached no terminal outcome.
			return
		}
		if err != nil {
			failures.Report(path, faillog.SeverityError, err.Error())
			recordOutcome(ctx, store, runID, path, journal.FileFailed, 0, err.Error())
			mu.Lock()
			stats.FilesFailed++
			mu.Unlock()
			return
		}
		if result.Empty {
			failures.Report(path, faillog.SeverityInfo, result.Note)
			recordOutcome(ctx, store, runID, path, journal.FileEmpty, 0, result.Note)
			mu.Lock()
			stats.FilesEmpty++
			mu.Unlock()
			return
		}

		var written, filtered, dropped int
		for _, rec := range result.Records {
			pass, err := req.Filter.Allow(rec)
			switch {
			case err != nil:
				failures.Report(path, faillog.SeverityError, fmt.Sprintf("record dropped: %v", err))
				dropped++
			case !pass:
				filtered++
			default:
				writer.Deliver(rec)
				written++
			}
		}
		if written == 0 {
			failures.Report(path, faillog.SeverityInfo, "no events matched the filter")
		}
		recordOutcome(ctx, store, runID, path, journal.FileOK, written, "")

		mu.Lock()
		stats.FilesOK++
		stats.RecordsDecoded += len(result.Records)
		stats.RecordsFiltered += filtered
		stats.RecordsDropped += dropped
		mu.Unlock()
	}

	scheduler.Run(ctx, files, workerCount(cfg), process)
	stats.Interrupted = ctx.Err() != nil

	rows, writeErr := writer.Close()
	stats.RecordsWritten = rows
	if err := failures.Close(); err != nil {
		log.Warn("failure log not fully flushed", logging.Error(err))
	}
	if dropped := failures.Dropped(); dropped > 0 {
		log.Warn("failure log entries dropped under pressure", logging.Int64("dropped", dropped))
	}

	if store != nil {
		finishJournal(store, runID, stats)
	}

	log.Info("run finished",
		logging.Int("rows", stats.RecordsWritten),
		logging.Int("failed_files", stats.FilesFailed),
		logging.Int("empty_files", stats.FilesEmpty),
		logging.Bool("interrupted", stats.Interrupted))

	if writeErr != nil {
		return stats, writeErr
	}
	if stats.AllFailed() {
		return stats, ErrAllFilesFailed
	}
	return stats, nil
}

func workerCount(cfg *config.Config) int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return scheduler.DefaultWorkers()
}

func openJournal(cfg *config.Config, log *slog.Logger) *journal.Store {
	if !cfg.Journal.Enabled {
		return nil
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		// The journal is observational; a broken one never fails the run.
		log.Warn("journal unavailable", logging.Error(err))
		return nil
	}
	return store
}

func recordOutcome(ctx context.Context, store *journal.Store, runID, path, status string, records int, detail string) {
	if store == nil {
		return
	}
	_ = store.RecordFile(ctx, journal.FileOutcome{
		RunID:   runID,
		Path:    path,
		Status:  status,
		Records: records,
		Detail:  detail,
	})
}

func finishJournal(store *journal.Store, runID string, stats Stats) {
	status := journal.StatusCompleted
	switch {
	case stats.Interrupted:
		status = journal.StatusCancelled
	case stats.AllFailed():
		status = journal.StatusFailed
	}
	// Detached context: the journal must record the outcome even when the
	// run context is already cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = store.FinishRun(ctx, journal.Run{
		ID:             runID,
		Status:         status,
		FilesTotal:     stats.FilesTotal,
		FilesEmpty:     stats.FilesEmpty,
		FilesFailed:    stats.FilesFailed,
		RecordsWritten: stats.RecordsWritten,
	})
}
