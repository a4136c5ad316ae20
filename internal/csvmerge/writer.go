package csvmerge

import (
	"bufio"
	"fmt"
	"os"

	"evtsift/internal/record"
	"evtsift/internal/sanitize"
)

// Writer is the sole writer of the merged CSV. Construct with New, feed it
// from any number of goroutines with Deliver, then Close exactly once; no
// Deliver may follow Close.
type Writer struct {
	file        *os.File
	delimiter   rune
	placeholder rune

	in   chan record.Raw
	done chan struct{}

	// Owned by the consumer goroutine until done is closed.
	columns []string
	seen    map[string]struct{}
	rows    []map[string]string
}

// New creates the output file (truncating any previous run) and starts the
// consuming goroutine. The delimiter/placeholder pair is re-checked here so
// a bad combination can never slip past the configuration boundary.
func New(path string, delimiter, placeholder rune) (*Writer, error) {
	if err := sanitize.CheckRunes(delimiter, placeholder); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create output %s: %w", path, err)
	}

	w := &Writer{
		file:        file,
		delimiter:   delimiter,
		placeholder: placeholder,
		in:          make(chan record.Raw, 64),
		done:        make(chan struct{}),
		columns:     []string{record.FieldTimeGenerated, record.FieldEventID},
		seen: map[string]struct{}{
			record.FieldTimeGenerated: {},
			record.FieldEventID:       {},
			record.FieldSourceFile:    {},
		},
	}
	go w.consume()
	return w, nil
}

// Deliver hands one filtered record to the writer. Safe for concurrent use;
// blocks while the consumer is busy, which is the pipeline's backpressure.
func (w *Writer) Deliver(rec record.Raw) {
	w.in <- rec
}

func (w *Writer) consume() {
	defer close(w.done)
	for rec := range w.in {
		row := make(map[string]string, len(rec.Fields)+1)
		for _, f := range rec.Fields {
			name := sanitize.Field(f.Name, w.delimiter, w.placeholder)
			if _, ok := w.seen[name]; !ok {
				w.seen[name] = struct{}{}
				w.columns = append(w.columns, name)
			}
			row[name] = sanitize.Field(f.Value, w.delimiter, w.placeholder)
		}
		row[record.FieldSourceFile] = sanitize.Field(rec.Source, w.delimiter, w.placeholder)
		w.rows = append(w.rows, row)
	}
}

// Close stops the consumer, writes header and buffered rows, and flushes
// durably. It returns the number of data rows written.
func (w *Writer) Close() (int, error) {
	close(w.in)
	<-w.done

	buf := bufio.NewWriter(w.file)
	columns := append(append([]string(nil), w.columns...), record.FieldSourceFile)

	for i, name := range columns {
		if i > 0 {
			buf.WriteRune(w.delimiter)
		}
		buf.WriteString(name)
	}
	buf.WriteByte('\n')

	for _, row := range w.rows {
		for i, name := range columns {
			if i > 0 {
				buf.WriteRune(w.delimiter)
			}
			buf.WriteString(row[name])
		}
		buf.WriteByte('\n')
	}

	written := len(w.rows)
	if err := buf.Flush(); err != nil {
		_ = w.file.Close()
		return written, fmt.Errorf("flush output: %w", err)
	}
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return written, fmt.Errorf("sync output: %w", err)
	}
	if err := w.file.Close(); err != nil {
		return written, fmt.Errorf("close output: %w", err)
	}
	return written, nil
}
