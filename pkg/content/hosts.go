package content

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrHostNotAllowed returned for page urls outside of the allowed story hosts
var ErrHostNotAllowed = errors.New("host is not allowed")

// maxRedirects matches the default limit of http.Client
const maxRedirects = 10

// CheckHost verifies urlStr is an absolute http(s) url without credentials on one of hosts.
// Hosts are compared case-insensitively and without the port.
func CheckHost(urlStr string, hosts []string) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	return checkHost(u, hosts)
}

func checkHost(u *url.URL, hosts []string) error {
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL: %q", u.Redacted())
	}
	if u.User != nil {
		return fmt.Errorf("%w: credentials in %q", ErrHostNotAllowed, u.Redacted())
	}
	host := u.Hostname()
	for _, h := range hosts {
		if strings.EqualFold(host, h) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrHostNotAllowed, host)
}
