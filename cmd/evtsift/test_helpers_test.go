package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testRowsXML = `<?xml version="1.0"?>
<ROOT>
<ROW><TimeGenerated>2024-03-01 10:00:00</TimeGenerated><EventID>4624</EventID><Message>logon ok</Message></ROW>
<ROW><TimeGenerated>2024-03-01 10:05:00</TimeGenerated><EventID>4625</EventID><Message>logon failed</Message></ROW>
</ROOT>
`

const testDecoderScript = `#!/bin/sh
out=$(printf '%s' "$1" | sed -n "s/^SELECT \* INTO \(.*\) FROM .*$/\1/p")
case "$1" in
  *corrupt*) echo "unreadable record database" >&2; exit 2 ;;
  *) cp "$EVTSIFT_FIXTURES/rows.xml" "$out" ;;
esac
`

type cliTestEnv struct {
	configPath  string
	decoderPath string
	journalPath string
	baseDir     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	fixtureDir := filepath.Join(base, "fixtures")
	if err := os.MkdirAll(fixtureDir, 0o755); err != nil {
		t.Fatalf("mkdir fixtures: %v", err)
	}
	if err := os.WriteFile(filepath.Join(fixtureDir, "rows.xml"), []byte(testRowsXML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("EVTSIFT_FIXTURES", fixtureDir)

	decoderPath := filepath.Join(base, "logdecoder")
	if err := os.WriteFile(decoderPath, []byte(testDecoderScript), 0o755); err != nil {
		t.Fatalf("write decoder stub: %v", err)
	}

	journalPath := filepath.Join(base, "journal.db")
	configPath := filepath.Join(homeDir, ".config", "evtsift", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(`workers = 2

[paths]
log_dir = %q

[decoder]
binary = %q
timeout_seconds = 30

[journal]
enabled = true
path = %q
`, filepath.Join(base, "logs"), decoderPath, journalPath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		configPath:  configPath,
		decoderPath: decoderPath,
		journalPath: journalPath,
		baseDir:     base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
