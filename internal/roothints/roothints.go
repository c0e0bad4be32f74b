// Package roothints loads the set of root name servers an iterative
// resolution walk starts from.
package roothints

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tinyresolve/tinyresolve/internal/dns"
)

// fallback is the compiled-in single root server used when no hints file
// is given, preserving the original resolver's hardcoded starting point.
var fallback = dns.ServerInfo{
	Name: "a.root-servers.net.",
	IP:   net.ParseIP("198.41.0.4"),
}

// entry is one root server's YAML representation. ipv6 is used only when
// ipv4 is missing or unparseable; the resolver dials IPv4 and IPv6 the
// same way once it has an address.
type entry struct {
	Name string `yaml:"name"`
	IPv4 string `yaml:"ipv4"`
	IPv6 string `yaml:"ipv6"`
}

type file struct {
	Roots []entry `yaml:"roots"`
}

// Load reads a YAML root-hints file at path and returns its servers. An
// empty path returns the compiled-in fallback.
func Load(path string) ([]dns.ServerInfo, error) {
	if path == "" {
		return []dns.ServerInfo{fallback}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read root hints: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse root hints: %w", err)
	}
	if len(f.Roots) == 0 {
		return nil, fmt.Errorf("root hints file %q has no roots", path)
	}

	servers := make([]dns.ServerInfo, 0, len(f.Roots))
	for _, e := range f.Roots {
		ip := net.ParseIP(e.IPv4)
		if ip == nil {
			ip = net.ParseIP(e.IPv6)
		}
		if ip == nil {
			return nil, fmt.Errorf("root hints entry %q has no usable address", e.Name)
		}
		servers = append(servers, dns.ServerInfo{Name: e.Name, IP: ip})
	}

	return servers, nil
}

// Pick returns a random entry from servers for load distribution across
// the root server constellation, instead of always starting from the
// first one.
func Pick(servers []dns.ServerInfo) dns.ServerInfo {
	if len(servers) == 0 {
		return dns.ServerInfo{}
	}
	if len(servers) == 1 {
		return servers[0]
	}

	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return servers[0]
	}
	i := binary.BigEndian.Uint64(b[:]) % uint64(len(servers))
	return servers[i]
}
