// =============================================================================
// internal/scripts/dns_probe.go - DNS server identification script (port 53)
// =============================================================================
package scripts

import (
	"context"
	"fmt"

	"github.com/bryanCE/gscan/internal/dns"
)

func init() {
	Register(&dnsProbeScript{resolver: dns.NewResolver()})
}

// dnsProbeScript queries a host that answered open on port 53 directly,
// asking it for the root NS set. A resolver that answers identifies itself
// as open and recursive; one that refuses or times out is reported as such.
type dnsProbeScript struct {
	resolver *dns.Resolver
}

func (dnsProbeScript) Name() string { return "dns-probe" }

func (dnsProbeScript) Matches(port uint16) bool { return port == 53 }

func (s *dnsProbeScript) Run(ctx context.Context, ip string, ports []uint16) (string, error) {
	result, err := s.resolver.Query(ctx, ".", dns.RecordTypeNS, ip)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("dns-probe %s:53 -> answered in %s with %d record(s)",
		ip, result.ResponseTime, len(result.Records)), nil
}
