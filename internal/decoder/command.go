package decoder

import (
	"context"
	"fmt"
	"os/exec"
)

// Executor abstracts subprocess execution for the adapter.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// commandExecutor executes the decoder using os/exec. Stdout is captured for
// diagnostics; on non-zero exit the stderr tail rides along in *exec.ExitError.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.Output()
}

// buildArgs assembles the decoder command line: decode src with the EVT
// input plugin and write one <ROW> element per record into outXML.
func buildArgs(src, outXML string) []string {
	query := fmt.Sprintf("SELECT * INTO %s FROM '%s'", outXML, src)
	return []string{
		query,
		"-i:EVT", // the EVT plugin parses both .evt and .evtx
		"-o:XML",
		"-structure:1",
		"-q:ON",
	}
}
