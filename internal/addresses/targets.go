// =============================================================================
// internal/addresses/targets.go - Target expansion (CIDR -> IP list)
// =============================================================================
package addresses

import (
	"fmt"
	"net"
	"sort"
	"strings"
)

// ExpandTarget turns a single CLI target into one or more IP strings. A
// bare IP passes through unchanged; a CIDR block expands to every address
// it contains, network and broadcast addresses included.
func ExpandTarget(target string) ([]string, error) {
	if ip := net.ParseIP(target); ip != nil {
		return []string{ip.String()}, nil
	}

	if !strings.Contains(target, "/") {
		return nil, fmt.Errorf("not an IP address or CIDR block: %q", target)
	}

	_, ipNet, err := net.ParseCIDR(target)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR block %q: %w", target, err)
	}

	var ips []string
	for ip := cloneIP(ipNet.IP.Mask(ipNet.Mask)); ipNet.Contains(ip); incrementIP(ip) {
		ips = append(ips, ip.String())
	}
	return ips, nil
}

// ExpandTargets expands every target in order, concatenating the results.
func ExpandTargets(targets []string) ([]string, error) {
	var all []string
	for _, t := range targets {
		ips, err := ExpandTarget(t)
		if err != nil {
			return nil, err
		}
		all = append(all, ips...)
	}
	return all, nil
}

func cloneIP(ip net.IP) net.IP {
	out := make(net.IP, len(ip))
	copy(out, ip)
	return out
}

func incrementIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}

// SortIPs sorts ip strings in natural dotted-quad / colon-hex order rather
// than lexical string order.
func SortIPs(ips []string) {
	sort.Slice(ips, func(i, j int) bool {
		a, b := net.ParseIP(ips[i]), net.ParseIP(ips[j])
		if a == nil || b == nil {
			return ips[i] < ips[j]
		}
		return compareBytes(a, b) < 0
	})
}

func compareBytes(a, b net.IP) int {
	a16, b16 := a.To16(), b.To16()
	for i := range a16 {
		if a16[i] != b16[i] {
			return int(a16[i]) - int(b16[i])
		}
	}
	return 0
}
