// Package resolver implements the iterative resolution engine: it walks
// the DNS hierarchy from a root server, following delegations (with or
// without glue) and CNAME chains, until it has A/AAAA records or exhausts
// its depth budget.
package resolver

import (
	"crypto/rand"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/tinyresolve/tinyresolve/internal/dns"
	"github.com/tinyresolve/tinyresolve/internal/metrics"
	"github.com/tinyresolve/tinyresolve/internal/ranker"
	"github.com/tinyresolve/tinyresolve/internal/roothints"
)

// maxDepth bounds the iterations of a single query call. CNAME and
// glue-less NS follow-ups recurse into fresh query calls with their own
// budget; depth is not shared across them (spec.md §9, accepted as-is).
const maxDepth = 8

// Resolver walks the DNS hierarchy starting from one of Roots.
type Resolver struct {
	Roots []dns.ServerInfo
	Log   *slog.Logger

	// Port is the name server port to dial, 53 unless overridden (tests
	// point this at a local listener standing in for real servers).
	Port int

	// caseKey seeds the 0x20 query-name case randomization (spec.md §9
	// anti-spoofing hardening) of outgoing queries. Responses are accepted
	// on their id and source address; the case of their question section is
	// not compared against this pattern.
	caseKey [16]byte
}

// New builds a Resolver. A nil log defaults to a Warn-level handler
// writing to stderr (see NewDefaultLogger).
func New(roots []dns.ServerInfo, log *slog.Logger) *Resolver {
	if log == nil {
		log = NewDefaultLogger(false)
	}

	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		panic("resolver: crypto/rand unavailable: " + err.Error())
	}

	return &Resolver{Roots: roots, Log: log, Port: defaultPort, caseKey: key}
}

// NewDefaultLogger builds the slog.Logger used when none is supplied;
// verbose raises the level from Warn to Debug (the --verbose CLI flag).
func NewDefaultLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Resolve performs the top-level resolution of domain, recording metrics
// and allotting a fresh sub-query budget for the whole call tree.
func (r *Resolver) Resolve(domain string) ([]net.IP, error) {
	start := time.Now()
	budget := NewDefaultBudget()

	ips, err := r.query(domain, budget, 0)

	metrics.ObserveLookup(outcome(err), start)
	return ips, err
}

// port returns the configured name server port, defaulting to 53.
func (r *Resolver) port() int {
	if r.Port == 0 {
		return defaultPort
	}
	return r.Port
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "answer"
	case err == ErrMaxDepth:
		return "max_depth"
	case err == ErrNoAvailableServers:
		return "no_available_servers"
	case err == ErrInvalidDelegation:
		return "invalid_delegation"
	case err == ErrTooManySubqueries:
		return "too_many_subqueries"
	default:
		return "error"
	}
}

// query is the recursive core: one top-level call per spec.md §4.5, and
// one fresh call per CNAME/glue-less-NS follow-up, each with its own
// maxDepth budget but sharing the caller's sub-query Budget.
func (r *Resolver) query(domain string, budget *Budget, hop int) ([]net.IP, error) {
	id := dns.NewID()
	qname := ranker.RandomizeQueryName(domain, r.caseKey)
	msg := dns.NewQuery(id, qname, false)

	target, err := dns.EncodeName(domain)
	if err != nil {
		return nil, err
	}

	servers := []dns.ServerInfo{roothints.Pick(r.Roots)}

	for i := 0; i < maxDepth; i++ {
		r.Log.Debug("sending query", "hop", hop, "iteration", i, "domain", domain, "servers", len(servers))
		metrics.RecordHop()

		raw, err := send(r.Log, msg, servers, r.port())
		if err != nil {
			return nil, err
		}

		resp := new(dns.Msg)
		if _, err := resp.Unpack(raw); err != nil {
			return nil, err
		}

		switch resp.Classify() {
		case dns.KindError:
			return nil, dns.ErrInvalidFormat

		case dns.KindAnswer:
			return r.handleAnswer(resp, raw, budget, hop)

		case dns.KindDelegation:
			next, err := r.handleDelegation(resp, raw, target, budget, hop)
			if err != nil {
				return nil, err
			}
			servers = next
			msg.IncrementID()
		}
	}

	return nil, ErrMaxDepth
}

// handleAnswer implements spec.md §4.5 step 3d: return A/AAAA IPs if
// present, else follow CNAMEs in order, first success wins.
func (r *Resolver) handleAnswer(resp *dns.Msg, raw []byte, budget *Budget, hop int) ([]net.IP, error) {
	if ips := resp.AnswerIPs(); len(ips) > 0 {
		return ips, nil
	}

	cnames, err := resp.CNAMEs(raw)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, cname := range cnames {
		if err := budget.Spend(); err != nil {
			return nil, err
		}

		ips, err := r.query(cname, budget, hop+1)
		if err != nil {
			r.Log.Debug("cname follow-up failed", "cname", cname, "err", err)
			lastErr = err
			continue
		}
		return ips, nil
	}

	// spec.md §9: arguably should propagate lastErr; kept as MaxDepth for
	// behavioral fidelity with the original resolver.
	_ = lastErr
	return nil, ErrMaxDepth
}

// handleDelegation implements spec.md §4.5's "Handle delegation": glue
// present means rank and continue with the additional section's servers;
// glue-less means recursively resolve each NS name in turn.
func (r *Resolver) handleDelegation(resp *dns.Msg, raw []byte, target []byte, budget *Budget, hop int) ([]dns.ServerInfo, error) {
	glue, err := resp.Additionals(raw)
	if err != nil {
		return nil, err
	}

	// The additional section may be non-empty yet carry no A/AAAA glue at
	// all (e.g. an adversarial server padding it with SOA/TXT records), in
	// which case Additionals filters it down to nothing; fall through to
	// the authority branch rather than index an empty slice.
	if len(glue) > 0 {
		best := glue[ranker.Best(glue, target)]
		r.Log.Debug("best server", "hop", hop, "name", best.Name, "ip", best.IP)

		ranker.Rank(glue, target)
		return glue, nil
	}

	if len(resp.Authority) > 0 {
		names, err := resp.Authorities(raw)
		if err != nil {
			return nil, err
		}

		var lastErr error
		for _, ns := range names {
			if err := budget.Spend(); err != nil {
				return nil, err
			}

			ips, err := r.query(ns, budget, hop+1)
			if err != nil {
				r.Log.Debug("glue-less NS follow-up failed", "ns", ns, "err", err)
				lastErr = err
				continue
			}
			if len(ips) == 0 {
				continue
			}

			next := make([]dns.ServerInfo, len(ips))
			for i, ip := range ips {
				next[i] = dns.ServerInfo{Name: "", IP: ip}
			}
			return next, nil
		}

		_ = lastErr
		return nil, ErrInvalidDelegation
	}

	return nil, dns.ErrInvalidFormat
}
