package faillog

import (
	"testing"
	"time"

	"evtsift/internal/logging"
)

// A Log whose drain goroutine never runs behaves like one stalled behind a
// dead disk: the buffer fills and stays full. Report must still return for
// every call and count the overflow instead of blocking a worker.
func TestReportDropsInsteadOfBlocking(t *testing.T) {
	l := &Log{
		in:     make(chan Entry, bufferDepth),
		done:   make(chan struct{}),
		logger: logging.NewNop(),
	}

	const overflow = 32
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i < bufferDepth+overflow; i++ {
			l.Report("/logs/app.evtx", SeverityError, "decoder exited with status 2")
		}
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Report blocked on a full buffer")
	}

	if got := l.Dropped(); got != overflow {
		t.Fatalf("Dropped = %d, want %d", got, overflow)
	}
	// Dropped entries still count toward the error total.
	if got := l.ErrorCount(); got != int64(bufferDepth+overflow) {
		t.Fatalf("ErrorCount = %d, want %d", got, bufferDepth+overflow)
	}
}
