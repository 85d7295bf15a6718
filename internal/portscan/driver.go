// =============================================================================
// internal/portscan/driver.go - Scan driver / retry policy
// =============================================================================
package portscan

import (
	"context"
	"time"
)

// Config is the core entry point's input. Greppable and Accessible are
// rendering hints the core never interprets itself; they are threaded
// through so the CLI layer can read them back off the same struct it built.
type Config struct {
	IPs          []string
	BatchSize    uint16
	Timeout      time.Duration
	Tries        uint
	Greppable    bool
	Strategy     PortStrategy
	Accessible   bool
	ExcludePorts map[uint16]struct{}

	// OnOpen, if set, is forwarded to the BatchExecutor so callers can
	// stream discoveries as they happen instead of waiting for Run to
	// return.
	OnOpen func(Endpoint)
}

// Driver runs the retry policy: each try re-probes every endpoint that isn't
// already confirmed Open, and OpenSet only ever grows.
type Driver struct {
	cfg Config

	// probeFn defaults to Probe; tests substitute it to count attempts
	// without opening real sockets.
	probeFn func(context.Context, Endpoint, time.Duration) Outcome
}

// NewDriver validates cfg and returns a Driver, or a ConfigError if the
// configuration can never produce a scan (empty IPs, empty port set, zero
// tries, zero batch size).
func NewDriver(cfg Config) (*Driver, error) {
	if len(cfg.IPs) == 0 {
		return nil, &ConfigError{Reason: "no IPs to scan"}
	}
	if cfg.BatchSize == 0 {
		return nil, &ConfigError{Reason: "batch size must be at least 1"}
	}
	if cfg.Tries == 0 {
		return nil, &ConfigError{Reason: "tries must be at least 1"}
	}
	if cfg.Strategy == nil {
		return nil, &ConfigError{Reason: "no port strategy configured"}
	}
	for _, ip := range cfg.IPs {
		if _, err := parseIP(ip); err != nil {
			return nil, &ConfigError{Reason: err.Error()}
		}
	}
	if len(cfg.Strategy.Ports()) == 0 {
		return nil, &ConfigError{Reason: "no ports to scan"}
	}

	return &Driver{cfg: cfg}, nil
}

// Run executes the full retry policy and returns the accumulated OpenSet.
// Batches within a try run strictly sequentially, and try k+1 never starts
// before try k has fully drained.
func (d *Driver) Run(ctx context.Context) (OpenSet, error) {
	openSet := make(OpenSet)

	plan := BuildPlan(d.cfg.IPs, d.cfg.Strategy, d.cfg.ExcludePorts)
	if len(plan) == 0 {
		return nil, &ConfigError{Reason: "scan plan is empty after applying exclusions"}
	}

	executor := &BatchExecutor{
		Concurrency: int(d.cfg.BatchSize),
		Timeout:     d.cfg.Timeout,
		OnOpen:      d.cfg.OnOpen,
		probeFn:     d.probeFn,
	}

	for attempt := uint(0); attempt < d.cfg.Tries; attempt++ {
		uncertain := uncertainEndpoints(plan, openSet)
		if len(uncertain) == 0 {
			break
		}

		for _, batch := range Batches(uncertain, int(d.cfg.BatchSize)) {
			select {
			case <-ctx.Done():
				return openSet, ctx.Err()
			default:
			}

			outcomes := executor.Run(ctx, batch)
			for e, o := range outcomes {
				if o == Open {
					openSet.Insert(e)
				}
				// Closed, Filtered, Error: left uncertain; a later try
				// may reclassify them.
			}
		}
	}

	return openSet, nil
}

// uncertainEndpoints returns every endpoint in plan not yet confirmed open.
func uncertainEndpoints(plan []Endpoint, openSet OpenSet) []Endpoint {
	uncertain := make([]Endpoint, 0, len(plan))
	for _, e := range plan {
		if !openSet.Has(e) {
			uncertain = append(uncertain, e)
		}
	}
	return uncertain
}
