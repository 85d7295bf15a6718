// =============================================================================
// internal/scripts/tls_cert.go - TLS certificate script (ports 443, 8443)
// =============================================================================
package scripts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bryanCE/gscan/internal/ssl"
)

func init() {
	Register(&tlsCertScript{})
}

// tlsCertScript runs the SSL certificate checker against a host once a
// TLS-shaped port (443 or 8443) is found open.
type tlsCertScript struct{}

func (tlsCertScript) Name() string { return "tls-cert" }

func (tlsCertScript) Matches(port uint16) bool {
	return port == 443 || port == 8443
}

func (tlsCertScript) Run(ctx context.Context, ip string, ports []uint16) (string, error) {
	port := "443"
	for _, p := range ports {
		if p == 443 || p == 8443 {
			port = strconv.Itoa(int(p))
			break
		}
	}

	info, err := ssl.CheckCertificate(ip, port)
	if err != nil {
		return "", err
	}

	status := "valid"
	if !info.IsValid {
		status = "INVALID"
	}
	return fmt.Sprintf("tls-cert %s:%s -> %s, issuer=%q, expires in %d days",
		ip, port, status, info.Issuer, info.ExpiresIn), nil
}
