// Package http implements the HTTP transport of the auth service.
//
// Every request runs through the same middleware chain: panic recovery,
// trace id, access log, security headers, request timeout and finally the
// request gate, which resolves the session cookie into an identity and
// enforces route protection before the router sees the request.
package http
