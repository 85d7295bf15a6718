// =============================================================================
// internal/scripts/scripts.go - Post-scan script runner
// =============================================================================
// After the scan has finished, the CLI hands each host's open ports to every
// registered script that understands one of them, running in-process against
// the host rather than shelling out to an external binary.
package scripts

import (
	"context"
	"fmt"
)

// Script is a unit of post-scan work keyed off the port(s) it understands.
type Script interface {
	// Name identifies the script in summary output.
	Name() string
	// Matches reports whether this script knows what to do with port.
	Matches(port uint16) bool
	// Run executes the script against ip for the subset of ports it
	// matched and returns a human-readable result line.
	Run(ctx context.Context, ip string, ports []uint16) (string, error)
}

// Required selects how much of the registry runs: None disables the runner
// entirely, Default runs every registered script whose Matches reports true.
type Required string

const (
	RequiredNone    Required = "none"
	RequiredDefault Required = "default"
)

var registered []Script

// Register adds s to the set of scripts considered for every scan. Intended
// to be called from package init in the files that define concrete scripts.
func Register(s Script) {
	registered = append(registered, s)
}

// Registered returns every script registered so far.
func Registered() []Script {
	return registered
}

// Run executes every registered script whose Matches reports true for at
// least one of ports, against ip, and returns one result line per script
// that ran. A script's failure is reported as its own line and never stops
// the others from running.
func Run(ctx context.Context, required Required, ip string, ports []uint16) []string {
	if required == RequiredNone {
		return nil
	}

	var out []string
	for _, s := range registered {
		matched := false
		for _, p := range ports {
			if s.Matches(p) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		result, err := s.Run(ctx, ip, ports)
		if err != nil {
			out = append(out, fmt.Sprintf("%s on %s: error running script: %v", s.Name(), ip, err))
			continue
		}
		out = append(out, result)
	}
	return out
}
