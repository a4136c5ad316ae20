package decoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"evtsift/internal/record"
)

// Result classifies one decoder invocation that did not fail. Empty marks a
// clean run with zero records, with Note saying why; an incident responder
// must not be alarmed by a quiet log, only by a broken one.
type Result struct {
	Records []record.Raw
	Empty   bool
	Note    string
}

// Adapter invokes the external decoder once per input file.
type Adapter struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an Adapter for the given decoder binary. timeout bounds a
// single invocation; zero disables the bound.
func New(binary string, timeout time.Duration) *Adapter {
	return NewWithExecutor(binary, timeout, nil)
}

// NewWithExecutor allows injecting a custom executor for testing.
func NewWithExecutor(binary string, timeout time.Duration, exec Executor) *Adapter {
	if exec == nil {
		exec = commandExecutor{}
	}
	return &Adapter{binary: strings.TrimSpace(binary), timeout: timeout, exec: exec}
}

// Decode runs the decoder against path and interprets its output. The
// returned error always means a file-level failure (non-zero exit, timeout,
// unreadable output); the caller isolates it to this file.
func (a *Adapter) Decode(ctx context.Context, path string) (*Result, error) {
	if a.binary == "" {
		return nil, errors.New("decoder binary not configured")
	}

	tmpDir, err := os.MkdirTemp("", "evtsift-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	staged, err := stageSource(path, tmpDir)
	if err != nil {
		return nil, err
	}
	outXML := filepath.Join(tmpDir, "rows.xml")

	runCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	if _, err := a.exec.Run(runCtx, a.binary, buildArgs(staged, outXML)); err != nil {
		return nil, a.classifyRunError(runCtx, err)
	}

	info, err := os.Stat(outXML)
	if err != nil || info.Size() == 0 {
		// Decoder exited cleanly without producing rows.
		return &Result{Empty: true, Note: "log contained 0 events"}, nil
	}

	raw, err := os.ReadFile(outXML)
	if err != nil {
		return nil, fmt.Errorf("read decoder output: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, err
	}
	records, err := parseRows(text)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Result{Empty: true, Note: "decoder output held no records"}, nil
	}

	for i := range records {
		records[i].Source = path
	}
	return &Result{Records: records}, nil
}

func (a *Adapter) classifyRunError(runCtx context.Context, err error) error {
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("decoder timed out after %s", a.timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		detail := strings.TrimSpace(string(exitErr.Stderr))
		if detail == "" {
			detail = "no stderr output"
		}
		return fmt.Errorf("decoder exited with status %d: %s", exitErr.ExitCode(), detail)
	}
	return fmt.Errorf("run decoder: %w", err)
}
