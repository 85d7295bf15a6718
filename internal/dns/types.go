// =============================================================================
// internal/dns/types.go - Core DNS data structures
// =============================================================================
package dns

import (
	"time"
)

// DNSRecordType represents different DNS record types
type DNSRecordType string

const (
	RecordTypeA     DNSRecordType = "A"
	RecordTypeAAAA  DNSRecordType = "AAAA"
	RecordTypeCNAME DNSRecordType = "CNAME"
	RecordTypeMX    DNSRecordType = "MX"
	RecordTypeNS    DNSRecordType = "NS"
	RecordTypeTXT   DNSRecordType = "TXT"
	RecordTypeSOA   DNSRecordType = "SOA"
	RecordTypePTR   DNSRecordType = "PTR"
	RecordTypeSRV   DNSRecordType = "SRV"
)

// DNSRecord represents a single DNS record
type DNSRecord struct {
	Name     string        `json:"name"`
	Type     DNSRecordType `json:"type"`
	Value    string        `json:"value"`
	TTL      uint32        `json:"ttl"`
	Priority int           `json:"priority,omitempty"` // For MX, SRV records
}

// DNSQuery represents a DNS query to be performed
type DNSQuery struct {
	Domain      string          `json:"domain"`
	RecordType  DNSRecordType   `json:"record_type"`
	Nameserver  string          `json:"nameserver"`
	Timeout     time.Duration   `json:"timeout"`
	UseRecursion bool           `json:"use_recursion"`
}

// DNSResult represents the result of a DNS query
type DNSResult struct {
	Query       DNSQuery      `json:"query"`
	Records     []DNSRecord   `json:"records"`
	ResponseTime time.Duration `json:"response_time"`
	Error       error         `json:"error,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Nameserver  string        `json:"nameserver"`
}

// QueryOptions represents options for DNS queries
type QueryOptions struct {
	Timeout      time.Duration `json:"timeout"`
	Retries      int           `json:"retries"`
	UseRecursion bool          `json:"use_recursion"`
	CheckDNSSEC  bool          `json:"check_dnssec"`
	IPv4Only     bool          `json:"ipv4_only"`
	IPv6Only     bool          `json:"ipv6_only"`
}