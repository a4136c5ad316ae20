// Package scheduler fans input files out across a bounded worker pool.
package scheduler

import (
	"context"
	"runtime"
	"sync"
)

// DefaultWorkers is the worker count used when none is configured: host
// cores minus one, leaving a core for the merge writer, with a floor of 1.
func DefaultWorkers() int {
	if n := runtime.NumCPU() - 1; n > 1 {
		return n
	}
	return 1
}

// Run dispatches each path to exactly one worker, keeping at most workers
// invocations of process in flight. process owns failure isolation: it must
// not panic and has no error return. Cancellation stops dispatch of further
// paths; jobs already handed to a worker run to completion before Run
// returns. The return value is the number of paths actually dispatched.
func Run(ctx context.Context, paths []string, workers int, process func(ctx context.Context, path string)) int {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				process(ctx, path)
			}
		}()
	}

	dispatched := 0
dispatch:
	for _, path := range paths {
		// Checked before the select so an already-cancelled context never
		// dispatches, even with an idle worker ready to receive.
		if ctx.Err() != nil {
			break dispatch
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- path:
			dispatched++
		}
	}
	close(jobs)
	wg.Wait()
	return dispatched
}
