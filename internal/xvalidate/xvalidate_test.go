//go:build integration

// Package xvalidate cross-checks this module's resolver against the host
// OS resolver for a handful of known-stable domains, mirroring
// original_source/tests/resolver.rs's test_dns_matches_system_resolver.
// It requires real network egress to the live root server constellation
// and the host's configured resolver, so it is gated behind the
// "integration" build tag and excluded from the ordinary test run.
package xvalidate

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tinyresolve/tinyresolve/internal/resolver"
	"github.com/tinyresolve/tinyresolve/internal/roothints"
)

func systemResolve(t *testing.T, domain string) []string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupIP(ctx, "ip4", domain)
	if err != nil {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}

func testResolveMatchesSystem(t *testing.T, domain string) {
	roots, err := roothints.Load("")
	require.NoError(t, err)

	r := resolver.New(roots, resolver.NewDefaultLogger(false))

	ours, err := r.Resolve(domain)
	require.NoError(t, err, "our resolver should succeed for %s", domain)

	system := systemResolve(t, domain)
	if len(system) == 0 {
		t.Skipf("system resolver returned nothing for %s, skipping comparison", domain)
	}

	ourSet := make(map[string]bool, len(ours))
	for _, ip := range ours {
		ourSet[ip.String()] = true
	}

	matched := false
	for _, ip := range system {
		if ourSet[ip] {
			matched = true
			break
		}
	}
	require.True(t, matched, "our resolver returned %v, system resolver returned %v", ours, system)
}

func TestResolveMatchesSystemResolver(t *testing.T) {
	testResolveMatchesSystem(t, "example.com.")
}

func TestResolveWithCNAMEMatchesSystemResolver(t *testing.T) {
	testResolveMatchesSystem(t, "www.wikipedia.org.")
}
