package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunsCommandListsJournaledRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	input := t.TempDir()
	if err := os.WriteFile(filepath.Join(input, "security.evtx"), []byte("evtx-bytes"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	output := filepath.Join(t.TempDir(), "triage.csv")

	if _, _, err := runCLI(t, []string{
		"run",
		"--dir", input,
		"--output", output,
		"--start-date", "2024-03-01",
		"--end-date", "2024-03-02",
	}, env.configPath); err != nil {
		t.Fatalf("run: %v", err)
	}

	out, _, err := runCLI(t, []string{"runs", "--files"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "completed")
	requireContains(t, out, "security.evtx")
}

func TestRunsCommandEmptyJournal(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"runs"}, env.configPath)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	requireContains(t, out, "No runs recorded yet")
}
