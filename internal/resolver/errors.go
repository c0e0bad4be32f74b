package resolver

import "errors"

// Errors raised by the resolution engine itself (as opposed to the wire
// codec's parse/RCODE errors in internal/dns, which propagate unchanged).
var (
	// ErrNoAvailableServers means every candidate server in one iteration
	// failed to produce a valid response.
	ErrNoAvailableServers = errors.New("resolver: no available servers")

	// ErrInvalidDelegation means an authority-only delegation was given
	// and every NS sub-query failed to resolve.
	ErrInvalidDelegation = errors.New("resolver: invalid delegation")

	// ErrMaxDepth means MAX_DEPTH iterations were exhausted, or every
	// CNAME branch in an answer failed to resolve.
	ErrMaxDepth = errors.New("resolver: max depth exceeded")
)
