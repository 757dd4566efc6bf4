package ratelimit

import (
	"net/http"
	"net/netip"
	"strings"
)

// UnknownOrigin is returned when no proxy header identifies the client.
// Distinct clients without such headers share this key; that coalescing is
// accepted.
const UnknownOrigin = "unknown"

// originHeaders lists the headers consulted for the client origin, most
// trusted first.
var originHeaders = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
	"X-Client-IP",
	"X-Forwarded",
	"Forwarded-For",
	"Forwarded",
}

// OriginFromRequest resolves the rate-limit key of r. See [OriginFromHeader].
func OriginFromRequest(r *http.Request) string {
	if r == nil {
		return UnknownOrigin
	}
	return OriginFromHeader(r.Header)
}

// OriginFromHeader returns the first non-empty value among the
// proxy-forwarding headers. For X-Forwarded-For only the first element of the
// comma-separated chain is used. Falls back to [UnknownOrigin].
func OriginFromHeader(h http.Header) string {
	for _, name := range originHeaders {
		value := h.Get(name)
		if name == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return UnknownOrigin
}

// IsLocalAddress reports whether origin is a loopback or private-range
// address, or the literal "localhost". Such origins are never limited.
// Values that are not IP addresses are not local.
func IsLocalAddress(origin string) bool {
	if origin == "" {
		return false
	}
	if origin == "localhost" {
		return true
	}

	addr, err := netip.ParseAddr(origin)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	return addr.IsLoopback() || addr.IsPrivate()
}
