// =============================================================================
// internal/portscan/benchmark.go - Named timers for the CLI's summary line
// =============================================================================
package portscan

import (
	"fmt"
	"strings"
	"time"
)

// NamedTimer tracks the wall-clock duration of one phase of the scan (FD
// budget reconciliation, the scan itself, the script runner). Start records
// the begin time, End freezes the duration.
type NamedTimer struct {
	Name     string
	start    time.Time
	duration time.Duration
	running  bool
}

// StartTimer begins a new named timer.
func StartTimer(name string) *NamedTimer {
	return &NamedTimer{Name: name, start: time.Now(), running: true}
}

// End freezes the timer's duration. Calling End more than once is a no-op.
func (t *NamedTimer) End() {
	if !t.running {
		return
	}
	t.duration = time.Since(t.start)
	t.running = false
}

// Duration reports the timer's elapsed time: frozen once End has been
// called, or still advancing if the timer is running.
func (t *NamedTimer) Duration() time.Duration {
	if t.running {
		return time.Since(t.start)
	}
	return t.duration
}

func (t *NamedTimer) String() string {
	d := t.duration
	if t.running {
		d = time.Since(t.start)
	}
	return fmt.Sprintf("%s: %s", t.Name, d)
}

// Benchmark accumulates a set of NamedTimers for one run of the tool and
// renders them into a single summary line.
type Benchmark struct {
	timers []*NamedTimer
}

// NewBenchmark returns an empty Benchmark.
func NewBenchmark() *Benchmark {
	return &Benchmark{}
}

// Push records t in the benchmark's summary.
func (b *Benchmark) Push(t *NamedTimer) {
	b.timers = append(b.timers, t)
}

// Summary renders every recorded timer as a single comma-separated line.
func (b *Benchmark) Summary() string {
	parts := make([]string, len(b.timers))
	for i, t := range b.timers {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
