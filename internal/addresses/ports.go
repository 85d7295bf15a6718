// =============================================================================
// internal/addresses/ports.go - Port-list / port-range / exclude parsing
// =============================================================================
package addresses

import (
	"fmt"
	"strconv"
	"strings"
)

// PortSpec is the parsed form of a --ports/--range flag: either a closed
// range or an explicit list, never both.
type PortSpec struct {
	IsRange bool
	Lo, Hi  uint16
	List    []uint16
}

// ParsePortSpec parses "1-1000" as a range or "22,80,443" as a list.
func ParsePortSpec(spec string) (PortSpec, error) {
	if strings.Contains(spec, "-") {
		parts := strings.SplitN(spec, "-", 2)
		if len(parts) != 2 {
			return PortSpec{}, fmt.Errorf("invalid port range format: %q", spec)
		}
		lo, err := parsePort(parts[0])
		if err != nil {
			return PortSpec{}, err
		}
		hi, err := parsePort(parts[1])
		if err != nil {
			return PortSpec{}, err
		}
		if hi < lo {
			return PortSpec{}, fmt.Errorf("invalid port range %q: start must not be after end", spec)
		}
		return PortSpec{IsRange: true, Lo: lo, Hi: hi}, nil
	}

	var ports []uint16
	for _, part := range strings.Split(spec, ",") {
		p, err := parsePort(strings.TrimSpace(part))
		if err != nil {
			return PortSpec{}, err
		}
		ports = append(ports, p)
	}
	return PortSpec{List: ports}, nil
}

// ParseExcludePorts parses a comma-separated --exclude-ports flag into a
// lookup set ready for portscan.BuildPlan.
func ParseExcludePorts(spec string) (map[uint16]struct{}, error) {
	excluded := make(map[uint16]struct{})
	if strings.TrimSpace(spec) == "" {
		return excluded, nil
	}
	for _, part := range strings.Split(spec, ",") {
		p, err := parsePort(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		excluded[p] = struct{}{}
	}
	return excluded, nil
}

func parsePort(s string) (uint16, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port: %q", s)
	}
	if n < 1 || n > 65535 {
		return 0, fmt.Errorf("port out of range: %d (must be 1-65535)", n)
	}
	return uint16(n), nil
}
