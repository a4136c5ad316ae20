package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"evtsift/internal/config"
)

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "evtsift", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Decoder.Binary != "LogParser.exe" {
		t.Fatalf("unexpected decoder binary: %q", cfg.Decoder.Binary)
	}
	if cfg.Decoder.TimeoutSeconds != 300 {
		t.Fatalf("unexpected decoder timeout: %d", cfg.Decoder.TimeoutSeconds)
	}
	if cfg.Output.Delimiter != "," || cfg.Output.Placeholder != "§" {
		t.Fatalf("unexpected output config: %+v", cfg.Output)
	}
	if !cfg.Journal.Enabled {
		t.Fatal("expected journal enabled by default")
	}
	if cfg.Workers != 0 {
		t.Fatalf("unexpected workers default: %d", cfg.Workers)
	}
}

func TestLoadReadsFileAndEnvFallback(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("EVTSIFT_DECODER", "/opt/decoder/logdecoder")

	path := filepath.Join(tempHome, "evtsift.toml")
	content := `
workers = 4

[output]
delimiter = ";"
placeholder = "_"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Workers != 4 {
		t.Fatalf("workers = %d, want 4", cfg.Workers)
	}
	if cfg.DelimiterRune() != ';' || cfg.PlaceholderRune() != '_' {
		t.Fatalf("unexpected runes: %q %q", cfg.DelimiterRune(), cfg.PlaceholderRune())
	}
	if cfg.Decoder.Binary != "/opt/decoder/logdecoder" {
		t.Fatalf("expected decoder from env, got %q", cfg.Decoder.Binary)
	}
}

func TestValidateRejectsPlaceholderCollision(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Delimiter = ","
	cfg.Output.Placeholder = ","
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rejection when placeholder equals delimiter")
	}
}

func TestValidateRejectsMultiRuneDelimiter(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Delimiter = ",,"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rejection of multi-character delimiter")
	}
}

func TestValidateRejectsNegativeWorkers(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rejection of negative workers")
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rejection of unknown log format")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected rejection of unknown log level")
	}
}

func TestCreateSampleParses(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	target := filepath.Join(tempHome, "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	if _, _, exists, err := config.Load(target); err != nil || !exists {
		t.Fatalf("sample config does not load: exists=%v err=%v", exists, err)
	}
}
