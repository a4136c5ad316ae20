package faillog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"evtsift/internal/faillog"
)

func TestReportAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.log")
	log, err := faillog.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	log.Report("/logs/corrupt.evtx", faillog.SeverityError, "decoder exited with status 2")
	log.Report("/logs/quiet.evtx", faillog.SeverityInfo, "log contained 0 events")
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failure log: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %q", data)
	}
	if !strings.Contains(lines[0], "ERROR /logs/corrupt.evtx: decoder exited with status 2") {
		t.Fatalf("unexpected first entry: %q", lines[0])
	}
	if !strings.Contains(lines[1], "INFO /logs/quiet.evtx: log contained 0 events") {
		t.Fatalf("unexpected second entry: %q", lines[1])
	}

	if log.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", log.ErrorCount())
	}
	if log.Dropped() != 0 {
		t.Fatalf("Dropped = %d, want 0", log.Dropped())
	}
}

func TestEmptyLogFileCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.log")
	log, err := faillog.Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failure log: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty failure log, got %q", data)
	}
}

func TestOpenUnwritablePath(t *testing.T) {
	if _, err := faillog.Open(filepath.Join(t.TempDir(), "absent", "failures.log"), nil); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
