// Package connectivity answers whether the news API host is reachable
package connectivity

import (
	"context"
	"log"
	"net"
	"net/url"
	"time"
)

// DefaultTimeout is the probe dial deadline
const DefaultTimeout = 3 * time.Second

// Checker probes reachability by dialing a TCP address
type Checker struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewChecker makes a checker dialing addr (host:port). Zero timeout means DefaultTimeout.
func NewChecker(addr string, timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{addr: addr, timeout: timeout}
}

// Connected reports whether the probe address accepts a connection within the timeout
func (c *Checker) Connected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		log.Printf("[DEBUG] connectivity probe %s failed: %v", c.addr, err)
		return false
	}
	_ = conn.Close()
	return true
}

// Static is a fixed connectivity answer
type Static bool

// Connected returns the fixed answer
func (s Static) Connected(context.Context) bool { return bool(s) }

// ProbeFor derives a host:port probe address from an API base URL.
// The port defaults to 443 for https and 80 for http. Returns empty string for unusable URLs.
func ProbeFor(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	if port := u.Port(); port != "" {
		return net.JoinHostPort(u.Hostname(), port)
	}
	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port)
}
