// =============================================================================
// internal/dns/addresses.go - Hostname resolution for scan targets
// =============================================================================
package dns

import (
	"context"
	"net"
)

// ResolveHosts turns a list of CLI-supplied targets into IP address
// strings, passing already-literal IPs through untouched. Hostnames are
// resolved via an A and AAAA lookup against nameserver, so every lookup
// goes through the same miekg/dns client the rest of the tool uses instead
// of falling back to the system resolver.
func ResolveHosts(ctx context.Context, targets []string, nameserver string) ([]string, []error) {
	resolver := NewResolver()

	var ips []string
	var errs []error

	for _, target := range targets {
		if parsed := net.ParseIP(target); parsed != nil {
			ips = append(ips, parsed.String())
			continue
		}

		resolved, err := resolveOne(ctx, resolver, target, nameserver)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ips = append(ips, resolved...)
	}

	return ips, errs
}

func resolveOne(ctx context.Context, resolver *Resolver, host, nameserver string) ([]string, error) {
	var ips []string

	a, err := resolver.Query(ctx, host, RecordTypeA, nameserver)
	if err == nil {
		for _, rec := range a.Records {
			ips = append(ips, rec.Value)
		}
	}

	aaaa, aaaaErr := resolver.Query(ctx, host, RecordTypeAAAA, nameserver)
	if aaaaErr == nil {
		for _, rec := range aaaa.Records {
			ips = append(ips, rec.Value)
		}
	}

	if len(ips) == 0 {
		if err != nil {
			return nil, err
		}
		return nil, aaaaErr
	}
	return ips, nil
}
