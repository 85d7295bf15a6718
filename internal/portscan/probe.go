// =============================================================================
// internal/portscan/probe.go - Connect probe
// =============================================================================
package portscan

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"syscall"
	"time"
)

// dialer is a package-level net.Dialer; its zero value is exactly what we
// want (no local addr pinning, no dual-stack preference override) and
// DialContext is what lets the probe race the connect attempt against a
// deadline without blocking an OS thread.
var dialer net.Dialer

// Probe attempts a single TCP connect to endpoint, racing it against
// timeout. It opens a fresh socket, never reads or writes on success, and
// releases the socket on every exit path: success, refusal, timeout, or
// cancellation. A probe never panics out to its caller; an unexpected local
// failure is folded into Error.
func Probe(ctx context.Context, e Endpoint, timeout time.Duration) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Error
		}
	}()

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(e.IP, strconv.Itoa(int(e.Port))))
	if err != nil {
		return classifyDialError(err)
	}
	conn.Close()
	return Open
}

func classifyDialError(err error) Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return Filtered
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Filtered
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return Closed
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return Closed
		}
		if os.IsTimeout(opErr) {
			return Filtered
		}
	}

	return Error
}
