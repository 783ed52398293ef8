package common

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP returns the caller address. chi's RealIP middleware normally has
// already rewritten RemoteAddr; the forwarding headers are consulted only
// when RemoteAddr does not parse, and only values that parse as an IP count.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if ip, err := netip.ParseAddr(addr); err == nil {
		return ip.String()
	}
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{first, r.Header.Get("X-Real-IP")} {
		if ip, err := netip.ParseAddr(strings.TrimSpace(candidate)); err == nil {
			return ip.String()
		}
	}
	return addr
}
