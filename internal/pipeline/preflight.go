package pipeline

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"evtsift/internal/config"
)

// preflight verifies the fatal preconditions of a run before any worker
// starts: the decoder executable must be reachable and the output directory
// writable. It returns the resolved decoder path.
func preflight(cfg *config.Config, req Request) (string, error) {
	binary, err := resolveDecoder(cfg.Decoder.Binary)
	if err != nil {
		return "", err
	}

	outDir := filepath.Dir(req.OutputPath)
	if err := unix.Access(outDir, unix.W_OK); err != nil {
		return "", fmt.Errorf("output directory %s is not writable: %w", outDir, err)
	}
	return binary, nil
}

func resolveDecoder(binary string) (string, error) {
	trimmed := strings.TrimSpace(binary)
	if trimmed == "" {
		return "", fmt.Errorf("decoder binary not configured")
	}
	if strings.ContainsRune(trimmed, filepath.Separator) {
		if err := unix.Access(trimmed, unix.X_OK); err != nil {
			return "", fmt.Errorf("decoder %s is not executable: %w", trimmed, err)
		}
		return trimmed, nil
	}
	resolved, err := exec.LookPath(trimmed)
	if err != nil {
		return "", fmt.Errorf("decoder binary %q not found: %w", trimmed, err)
	}
	return resolved, nil
}
