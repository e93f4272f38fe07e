package cloud

import (
	"context"
	"net"
	"time"
)

// Checker is the connectivity gate consulted before network operations.
// A passing check does not guarantee the call itself succeeds; callers
// handle both failure paths.
type Checker interface {
	Online(ctx context.Context) bool
}

// OnlineFunc adapts a function to the Checker interface.
type OnlineFunc func(ctx context.Context) bool

// Online implements Checker.
func (f OnlineFunc) Online(ctx context.Context) bool { return f(ctx) }

// DefaultProbeAddr is dialed by the default checker.
const DefaultProbeAddr = "one.one.one.one:443"

// ProbeChecker reports connectivity by opening a short-lived TCP
// connection to a probe address.
type ProbeChecker struct {
	Addr    string
	Timeout time.Duration
}

// NewProbeChecker returns a checker against addr, or the default probe
// address when addr is empty.
func NewProbeChecker(addr string) *ProbeChecker {
	if addr == "" {
		addr = DefaultProbeAddr
	}
	return &ProbeChecker{Addr: addr, Timeout: 2 * time.Second}
}

// Online implements Checker.
func (p *ProbeChecker) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
