// Package faillog is the per-file failure side channel of the pipeline.
//
// Entries flow through a buffered channel drained by a dedicated goroutine,
// so a slow disk under the failure log can never stall record processing.
// When the buffer is full the entry is dropped and counted rather than
// blocking a worker.
package faillog

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"evtsift/internal/logging"
)

// Severity distinguishes a broken input from a merely quiet one.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityError Severity = "ERROR"
)

// Entry is one failure-log line: which input, how bad, and why.
type Entry struct {
	Path     string
	Severity Severity
	Message  string
	Time     time.Time
}

// Log appends entries to a file, one line each, without ever blocking the
// caller. Entries also mirror to the run logger at the matching level.
type Log struct {
	file   *os.File
	buf    *bufio.Writer
	in     chan Entry
	done   chan struct{}
	logger *slog.Logger

	errors  atomic.Int64
	dropped atomic.Int64
}

const bufferDepth = 256

// Open truncates path and starts the drain goroutine. logger may be nil.
func Open(path string, logger *slog.Logger) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create failure log %s: %w", path, err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	l := &Log{
		file:   file,
		buf:    bufio.NewWriter(file),
		in:     make(chan Entry, bufferDepth),
		done:   make(chan struct{}),
		logger: logger,
	}
	go l.drain()
	return l, nil
}

// Report records one entry. Never blocks: if the buffer is full the entry is
// counted as dropped instead.
func (l *Log) Report(path string, severity Severity, message string) {
	entry := Entry{Path: path, Severity: severity, Message: message, Time: time.Now().UTC()}
	if severity == SeverityError {
		l.errors.Add(1)
	}
	select {
	case l.in <- entry:
	default:
		l.dropped.Add(1)
	}
}

func (l *Log) drain() {
	defer close(l.done)
	for entry := range l.in {
		fmt.Fprintf(l.buf, "%s %s %s: %s\n",
			entry.Time.Format(time.RFC3339), entry.Severity, entry.Path, entry.Message)
		switch entry.Severity {
		case SeverityError:
			l.logger.Error(entry.Message, logging.String("file", entry.Path))
		default:
			l.logger.Info(entry.Message, logging.String("file", entry.Path))
		}
	}
}

// ErrorCount returns how many ERROR entries were reported (including any
// that were dropped from the file under pressure).
func (l *Log) ErrorCount() int64 {
	return l.errors.Load()
}

// Dropped returns how many entries never reached the file.
func (l *Log) Dropped() int64 {
	return l.dropped.Load()
}

// Close drains buffered entries, flushes, and syncs the file.
func (l *Log) Close() error {
	close(l.in)
	<-l.done
	if err := l.buf.Flush(); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("flush failure log: %w", err)
	}
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		return fmt.Errorf("sync failure log: %w", err)
	}
	return l.file.Close()
}
