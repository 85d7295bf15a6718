//go:build unix

// =============================================================================
// internal/portscan/fdbudget_unix.go - NOFILE source for unix targets
// =============================================================================
package portscan

import "golang.org/x/sys/unix"

// unixRlimitSource queries and raises RLIMIT_NOFILE via golang.org/x/sys/unix.
type unixRlimitSource struct{}

func (unixRlimitSource) raise(want uint64) error {
	return unix.Setrlimit(unix.RLIMIT_NOFILE, &unix.Rlimit{Cur: want, Max: want})
}

func (unixRlimitSource) query() (uint64, error) {
	var rlim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rlim); err != nil {
		return 0, err
	}
	return rlim.Cur, nil
}

// defaultRlimitSource returns the platform's rlimitSource.
func defaultRlimitSource() rlimitSource {
	return unixRlimitSource{}
}
