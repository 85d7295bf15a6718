// =============================================================================
// internal/dns/resolver.go - DNS resolution implementation
// =============================================================================
package dns

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// Resolver handles DNS queries and operations
type Resolver struct {
	client  *dns.Client
	options QueryOptions
}

// NewResolver creates a new DNS resolver with default options
func NewResolver() *Resolver {
	return &Resolver{
		client: &dns.Client{
			Timeout: 5 * time.Second,
		},
		options: QueryOptions{
			Timeout:      5 * time.Second,
			Retries:      3,
			UseRecursion: true,
			CheckDNSSEC:  false,
			IPv4Only:     false,
			IPv6Only:     false,
		},
	}
}

// NewResolverWithOptions creates a resolver with custom options
func NewResolverWithOptions(opts QueryOptions) *Resolver {
	return &Resolver{
		client: &dns.Client{
			Timeout: opts.Timeout,
		},
		options: opts,
	}
}

// Query performs a DNS query for a specific domain and record type
func (r *Resolver) Query(ctx context.Context, domain string, recordType DNSRecordType, nameserver string) (*DNSResult, error) {
	start := time.Now()
	
	result := &DNSResult{
		Query: DNSQuery{
			Domain:       domain,
			RecordType:   recordType,
			Nameserver:   nameserver,
			Timeout:      r.options.Timeout,
			UseRecursion: r.options.UseRecursion,
		},
		Timestamp:  start,
		Nameserver: nameserver,
	}

	// Prepare the DNS message
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), r.getRecordTypeCode(recordType))
	msg.RecursionDesired = r.options.UseRecursion

	if r.options.CheckDNSSEC {
		msg.SetEdns0(4096, true)
	}

	// Ensure nameserver has port
	if !strings.Contains(nameserver, ":") {
		nameserver += ":53"
	}

	// Perform the query with retries
	var response *dns.Msg
	var err error
	
	for attempt := 0; attempt < r.options.Retries; attempt++ {
		response, _, err = r.client.ExchangeContext(ctx, msg, nameserver)
		if err == nil {
			break
		}
		if attempt < r.options.Retries-1 {
			time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
		}
	}

	result.ResponseTime = time.Since(start)

	if err != nil {
		result.Error = fmt.Errorf("DNS query failed: %w", err)
		return result, result.Error
	}

	if response == nil {
		result.Error = fmt.Errorf("received nil response")
		return result, result.Error
	}

	// Parse the response
	result.Records = r.parseResponse(response, recordType)
	return result, nil
}

// parseResponse converts DNS response to our record format
func (r *Resolver) parseResponse(response *dns.Msg, recordType DNSRecordType) []DNSRecord {
	var records []DNSRecord

	for _, answer := range response.Answer {
		record := DNSRecord{
			Name: answer.Header().Name,
			Type: recordType,
			TTL:  answer.Header().Ttl,
		}

		switch rr := answer.(type) {
		case *dns.A:
			record.Value = rr.A.String()
		case *dns.AAAA:
			record.Value = rr.AAAA.String()
		case *dns.CNAME:
			record.Value = rr.Target
		case *dns.MX:
			record.Value = rr.Mx
			record.Priority = int(rr.Preference)
		case *dns.NS:
			record.Value = rr.Ns
		case *dns.TXT:
			record.Value = strings.Join(rr.Txt, " ")
		case *dns.PTR:
			record.Value = rr.Ptr
		case *dns.SOA:
			record.Value = fmt.Sprintf("%s %s %d %d %d %d %d",
				rr.Ns, rr.Mbox, rr.Serial, rr.Refresh, rr.Retry, rr.Expire, rr.Minttl)
		case *dns.SRV:
			record.Value = rr.Target
			record.Priority = int(rr.Priority)
		default:
			record.Value = answer.String()
		}

		records = append(records, record)
	}

	return records
}

// getRecordTypeCode converts our record type to DNS library type
func (r *Resolver) getRecordTypeCode(recordType DNSRecordType) uint16 {
	switch recordType {
	case RecordTypeA:
		return dns.TypeA
	case RecordTypeAAAA:
		return dns.TypeAAAA
	case RecordTypeCNAME:
		return dns.TypeCNAME
	case RecordTypeMX:
		return dns.TypeMX
	case RecordTypeNS:
		return dns.TypeNS
	case RecordTypeTXT:
		return dns.TypeTXT
	case RecordTypeSOA:
		return dns.TypeSOA
	case RecordTypePTR:
		return dns.TypePTR
	case RecordTypeSRV:
		return dns.TypeSRV
	default:
		return dns.TypeA
	}
}