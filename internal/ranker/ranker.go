// Package ranker orders candidate name servers by how closely their own
// name matches the name being resolved, so the resolver queries the
// server most likely to hold a useful delegation first.
package ranker

import (
	"sort"

	"github.com/tinyresolve/tinyresolve/internal/dns"
)

// score walks a server's encoded name and target from their last bytes
// backwards and counts the label-length bytes (values 1-31) it reaches;
// the walk stops at the first mismatching byte or when target runs out,
// and the byte it stops on is counted if it is a length byte. Ported
// byte-for-byte from the original resolver's server_info scoring so the
// ranking behavior is unchanged.
func score(name []byte, target []byte) int {
	targetLen := len(target)

	s := 0
	for i := 0; i < len(name); i++ {
		b := name[len(name)-1-i]

		if i > 0 && b < 32 && b != 0 {
			s++
		}
		if i >= targetLen {
			break
		}
		if b != target[targetLen-1-i] {
			break
		}
	}
	return s
}

// Best returns the index of the server in servers whose name best matches
// target (the encoded name being resolved). Ties keep the first maximum
// found, matching the original linear scan. servers must be non-empty.
func Best(servers []dns.ServerInfo, target []byte) int {
	best := 0
	maxScore := -1
	for i, s := range servers {
		enc, err := dns.EncodeName(s.Name)
		if err != nil {
			continue
		}
		if sc := score(enc, target); sc > maxScore {
			maxScore = sc
			best = i
		}
	}
	return best
}

// ranked pairs a server with its precomputed score, so sorting moves the
// score along with its server instead of addressing a parallel slice by
// an index that sort.Sort is free to reorder.
type ranked struct {
	server dns.ServerInfo
	score  int
}

// Rank orders servers by descending match score against target, stable
// so servers with equal scores keep their relative (e.g. response) order.
func Rank(servers []dns.ServerInfo, target []byte) {
	pairs := make([]ranked, len(servers))
	for i, s := range servers {
		sc := 0
		if enc, err := dns.EncodeName(s.Name); err == nil {
			sc = score(enc, target)
		}
		pairs[i] = ranked{server: s, score: sc}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	for i, p := range pairs {
		servers[i] = p.server
	}
}
