//go:build !unix

// =============================================================================
// internal/portscan/fdbudget_other.go - no-op NOFILE source for non-unix
// =============================================================================
package portscan

// noopRlimitSource implements rlimitSource on platforms without a NOFILE
// concept (e.g. Windows): raising is a no-op and the query always reports
// averageBatchSize.
type noopRlimitSource struct{}

func (noopRlimitSource) raise(uint64) error {
	return nil
}

func (noopRlimitSource) query() (uint64, error) {
	return averageBatchSize, nil
}

func defaultRlimitSource() rlimitSource {
	return noopRlimitSource{}
}
