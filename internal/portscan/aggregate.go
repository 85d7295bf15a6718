// =============================================================================
// internal/portscan/aggregate.go - Result aggregator
// =============================================================================
package portscan

import "sort"

// Aggregate groups an OpenSet by IP, sorting each host's ports ascending
// regardless of the order they were discovered in. allIPs is used so hosts
// with zero open ports still appear in the output as empty entries, letting
// the caller emit the "no open ports" diagnostic for every scanned host.
func Aggregate(openSet OpenSet, allIPs []string) map[string][]uint16 {
	grouped := make(map[string][]uint16, len(allIPs))
	for _, ip := range allIPs {
		grouped[ip] = nil
	}

	for e := range openSet {
		grouped[e.IP] = append(grouped[e.IP], e.Port)
	}

	for ip := range grouped {
		sort.Slice(grouped[ip], func(i, j int) bool {
			return grouped[ip][i] < grouped[ip][j]
		})
	}

	return grouped
}
