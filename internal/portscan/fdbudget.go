// =============================================================================
// internal/portscan/fdbudget.go - FD-budget adapter
// =============================================================================
package portscan

import "fmt"

// Platform-defined constants for the batch-size reconciliation rule.
const (
	// averageBatchSize is the safest default batch size across common
	// server ulimit defaults.
	averageBatchSize = 3000
	// highFDThreshold is the point above which a very generous ulimit
	// collapses back down to averageBatchSize rather than being used as-is.
	highFDThreshold = 8000
	// fdHeadroom is left for sockets the process already holds open
	// (stdio, log files, the listener the CLI itself may hold).
	fdHeadroom = 100
)

// rlimitSource abstracts the platform-specific NOFILE query/raise so the
// reconciliation logic below is platform independent; see
// fdbudget_unix.go and fdbudget_other.go for the two realizations.
type rlimitSource interface {
	// raise attempts to set both the soft and hard NOFILE limit to want.
	// Failure is reported through the returned error but is never fatal to
	// the caller: the adapter just falls back to querying the current
	// limit.
	raise(want uint64) error
	// query returns the current effective soft NOFILE limit.
	query() (uint64, error)
}

// FDBudgetResult carries the effective batch size the adapter settled on
// plus the human-readable diagnostics the CLI should print, prefixed with
// `[>]` the way the rest of the tool's stderr output is.
type FDBudgetResult struct {
	EffectiveBatch uint16
	Diagnostics    []string
}

// AdjustUlimit raises the soft+hard NOFILE limit to want (if provided) and
// returns whatever the soft limit reads back as afterward. Raising failure
// is reported but never fatal: the caller falls back to the limit already in
// effect.
func AdjustUlimit(src rlimitSource, want *uint64) (uint64, []string, error) {
	var diags []string

	if want != nil {
		if err := src.raise(*want); err != nil {
			diags = append(diags, fmt.Sprintf("failed to set ulimit value: %v", err))
		} else {
			diags = append(diags, fmt.Sprintf("automatically increasing ulimit value to %d", *want))
		}
	}

	limit, err := src.query()
	if err != nil {
		return 0, diags, fmt.Errorf("querying file descriptor limit: %w", err)
	}
	return limit, diags, nil
}

// DefaultRlimitSource returns the platform's rlimitSource (Unix NOFILE on
// unix targets, a no-op reporting averageBatchSize elsewhere), for callers
// outside this package that want to invoke ReconcileFDBudget without
// constructing a source themselves.
func DefaultRlimitSource() rlimitSource {
	return defaultRlimitSource()
}

// ReconcileFDBudget optionally raises the ulimit, queries the soft limit,
// and reconciles it against the requested batch size.
func ReconcileFDBudget(src rlimitSource, requestedBatch uint16, userUlimit *uint64) (FDBudgetResult, error) {
	limit, diags, err := AdjustUlimit(src, userUlimit)
	if err != nil {
		return FDBudgetResult{}, err
	}

	requested := uint64(requestedBatch)
	var effective uint64

	switch {
	case limit >= requested:
		effective = requested
		if userUlimit == nil && limit > requested+fdHeadroom {
			diags = append(diags, fmt.Sprintf(
				"file limit higher than batch size. can increase speed by increasing batch size to %d",
				limit-fdHeadroom))
		}
	case limit < averageBatchSize:
		diags = append(diags, "file limit is lower than default batch size. consider upping with --ulimit.")
		diags = append(diags, "your file limit is very small, which negatively impacts scan speed")
		effective = limit / 2
	case limit > highFDThreshold:
		diags = append(diags, "file limit is lower than default batch size. consider upping with --ulimit.")
		effective = averageBatchSize
	default:
		diags = append(diags, "file limit is lower than default batch size. consider upping with --ulimit.")
		effective = limit - fdHeadroom
	}

	if effective > 0xFFFF {
		return FDBudgetResult{}, &ConfigError{Reason: fmt.Sprintf("effective batch size %d does not fit in 16 bits", effective)}
	}

	return FDBudgetResult{EffectiveBatch: uint16(effective), Diagnostics: diags}, nil
}
