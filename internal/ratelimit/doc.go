// Package ratelimit throttles failed login attempts per client origin.
//
// An origin is the best-effort client address taken from proxy forwarding
// headers (see [OriginFromRequest]). Each origin moves through three states:
//
//	CLEAN    – no entry in the limiter
//	TRACKING – failures counted inside the current window
//	BLOCKED  – MaxAttempts reached, every check is refused until the block ends
//
// A successful login returns the origin to CLEAN. Loopback and private-range
// origins are always exempt. State is process-local and never shared
// between instances.
package ratelimit
