package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"evtsift/internal/scan"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEventLogsRecursiveAndCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Security.evtx"))
	touch(t, filepath.Join(root, "sub", "System.EVT"))
	touch(t, filepath.Join(root, "sub", "deep", "app.Evtx"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "export.csv"))

	files, skipped, err := scan.EventLogs(root)
	if err != nil {
		t.Fatalf("EventLogs: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %v", files)
	}
	if len(skipped) != 0 {
		t.Fatalf("expected nothing skipped, got %v", skipped)
	}
	// Sorted order is part of the contract.
	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Fatalf("files not sorted: %v", files)
		}
	}
}

func TestEventLogsEmptyTree(t *testing.T) {
	files, _, err := scan.EventLogs(t.TempDir())
	if err != nil {
		t.Fatalf("EventLogs: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
}

func TestEventLogsMissingRoot(t *testing.T) {
	if _, _, err := scan.EventLogs(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestEventLogsSkipsUnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not bind root")
	}

	root := t.TempDir()
	touch(t, filepath.Join(root, "Security.evtx"))
	touch(t, filepath.Join(root, "locked", "hidden.evtx"))
	if err := os.Chmod(filepath.Join(root, "locked"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chmod(filepath.Join(root, "locked"), 0o755)
	})

	files, skipped, err := scan.EventLogs(root)
	if err != nil {
		t.Fatalf("EventLogs: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "Security.evtx" {
		t.Fatalf("expected only the readable file, got %v", files)
	}
	if len(skipped) != 1 || filepath.Base(skipped[0]) != "locked" {
		t.Fatalf("expected the locked directory skipped, got %v", skipped)
	}
}

func TestIsEventLog(t *testing.T) {
	if !scan.IsEventLog("/x/Security.EVTX") || !scan.IsEventLog("a.evt") {
		t.Fatal("event-log extensions not recognized")
	}
	if scan.IsEventLog("a.evtx.bak") || scan.IsEventLog("a.csv") {
		t.Fatal("non event-log extension accepted")
	}
}
