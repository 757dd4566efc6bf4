package http

import "net/http"

const contentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:; " +
	"font-src 'self' data:; " +
	"connect-src 'self' ws: wss:; " +
	"frame-ancestors 'self'; " +
	"object-src 'none'"

const strictTransportSecurity = "max-age=63072000; includeSubDomains; preload"

var securityHeaders = [][2]string{
	{"Content-Security-Policy", contentSecurityPolicy},
	{"X-Frame-Options", "SAMEORIGIN"},
	{"X-Content-Type-Options", "nosniff"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"X-XSS-Protection", "1; mode=block"},
}

// withSecurityHeaders sets the security headers before calling next, so
// redirects and errors written further down carry them as well.
func (h *Handler) withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		for _, kv := range securityHeaders {
			header.Set(kv[0], kv[1])
		}
		if !h.development {
			header.Set("Strict-Transport-Security", strictTransportSecurity)
		}

		next.ServeHTTP(w, r)
	})
}
