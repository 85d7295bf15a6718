// =============================================================================
// internal/portscan/executor.go - Batch executor
// =============================================================================
package portscan

import (
	"context"
	"sync"
	"time"
)

// BatchExecutor fans up to Concurrency probes out at once, over the
// endpoints handed to Run, and waits for all of them to resolve before
// returning. One goroutine is started per endpoint, and a buffered channel
// gates how many of them may be probing at once; each goroutine runs one
// Probe call and reports completion
// through a results channel rather than a shared slice under a mutex.
type BatchExecutor struct {
	// Concurrency bounds how many probes may hold an open socket at once.
	// It must never exceed the FD-Budget Adapter's effective batch size.
	Concurrency int
	// Timeout is the per-probe connect deadline.
	Timeout time.Duration
	// OnOpen, if set, is invoked synchronously as soon as an endpoint
	// resolves Open, before Run returns the full BatchOutcome. It lets
	// callers stream discoveries instead of waiting for the whole batch.
	OnOpen func(Endpoint)

	// probeFn defaults to Probe; tests substitute it to observe scheduling
	// behavior (e.g. the in-flight bound) without opening real sockets.
	probeFn func(context.Context, Endpoint, time.Duration) Outcome
}

// Run probes every endpoint in batch concurrently, bounded by Concurrency,
// and returns once all of them have an outcome or ctx is done. No endpoint
// is probed more than once per call.
func (ex *BatchExecutor) Run(ctx context.Context, batch []Endpoint) BatchOutcome {
	outcomes := make(BatchOutcome, len(batch))
	if len(batch) == 0 {
		return outcomes
	}

	type result struct {
		endpoint Endpoint
		outcome  Outcome
	}

	probe := ex.probeFn
	if probe == nil {
		probe = Probe
	}

	sem := make(chan struct{}, ex.Concurrency)
	results := make(chan result, len(batch))
	var wg sync.WaitGroup

	for _, e := range batch {
		wg.Add(1)
		go func(e Endpoint) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results <- result{e, Error}
				return
			}
			defer func() { <-sem }()

			o := probe(ctx, e, ex.Timeout)
			results <- result{e, o}
		}(e)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for r := range results {
		outcomes[r.endpoint] = r.outcome
		if r.outcome == Open && ex.OnOpen != nil {
			ex.OnOpen(r.endpoint)
		}
	}

	return outcomes
}
