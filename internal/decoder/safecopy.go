package decoder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// stageSource links or copies src into dir under a name the decoder can
// swallow: '%' in basenames breaks its query parser, and the uuid prefix
// keeps two same-named logs from different directories apart. A hard link is
// tried first so staging a mounted 100 GB evidence tree costs nothing; the
// cross-device fallback is a real copy.
func stageSource(src, dir string) (string, error) {
	base := strings.ReplaceAll(filepath.Base(src), "%", "_")
	staged := filepath.Join(dir, uuid.NewString()+"_"+base)

	if err := os.Link(src, staged); err == nil {
		return staged, nil
	}
	if err := copyFile(src, staged); err != nil {
		return "", fmt.Errorf("stage %s: %w", src, err)
	}
	return staged, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
