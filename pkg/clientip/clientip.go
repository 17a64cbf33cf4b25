// Package clientip extracts the client IP address from HTTP requests, looking
// through the proxy headers set by the deployment's reverse proxy chain.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP for r. X-Forwarded-For wins when present
// (first valid entry), then X-Real-IP, then the connection's remote address.
// Returns an empty string only if nothing parses as an IP.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, ip := range strings.Split(forwarded, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr may already be a bare IP in tests.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
