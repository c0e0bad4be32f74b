// Command tinyresolve is a CLI front end for the iterative resolver: it
// prints the resolved addresses for one domain, one per line.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tinyresolve/tinyresolve/internal/dns"
	"github.com/tinyresolve/tinyresolve/internal/resolver"
	"github.com/tinyresolve/tinyresolve/internal/roothints"
)

const usage = `usage: tinyresolve [--verbose|-v] [--recursive|-r] [--root-hints path] [--metrics-addr addr] <domain>

  -v, --verbose        enable debug-level trace output
  -r, --recursive      query a single recursive resolver instead of walking the hierarchy
      --root-hints     path to a YAML root-hints file (default: compiled-in root server)
      --recursive-server
                        resolver to use with --recursive (default: 1.1.1.1)
      --metrics-addr    if set, serve Prometheus metrics at this address
  -h, --help           print this message
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if dup := firstDuplicateFlag(args); dup != "" {
		fmt.Fprintf(os.Stderr, "tinyresolve: flag %s given more than once\n\n%s", dup, usage)
		return 1
	}

	fs := flag.NewFlagSet("tinyresolve", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	var verbose, recursive bool
	var rootHintsPath, recursiveServer, metricsAddr string
	fs.BoolVar(&verbose, "v", false, "")
	fs.BoolVar(&verbose, "verbose", false, "")
	fs.BoolVar(&recursive, "r", false, "")
	fs.BoolVar(&recursive, "recursive", false, "")
	fs.StringVar(&rootHintsPath, "root-hints", "", "")
	fs.StringVar(&recursiveServer, "recursive-server", "1.1.1.1", "")
	fs.StringVar(&metricsAddr, "metrics-addr", "", "")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "tinyresolve: expected exactly one domain\n\n%s", usage)
		return 1
	}
	domain := fs.Arg(0)

	if metricsAddr != "" {
		go serveMetrics(metricsAddr)
	}

	log := resolver.NewDefaultLogger(verbose)

	var ips []net.IP
	var err error
	if recursive {
		ips, err = resolveRecursive(domain, recursiveServer, log)
	} else {
		var roots []dns.ServerInfo
		roots, err = roothints.Load(rootHintsPath)
		if err == nil {
			r := resolver.New(roots, log)
			ips, err = r.Resolve(domain)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "tinyresolve: failed to resolve %s: %v\n", domain, err)
		return 1
	}

	for _, ip := range ips {
		fmt.Println(ip)
	}
	return 0
}

// serveMetrics exposes the Prometheus registry; failures are logged, not
// fatal, since metrics are purely observability and never gate resolution.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "tinyresolve: metrics server: %v\n", err)
	}
}

// recognizedFlags lists every flag name (long and short forms separately)
// this command accepts, for the duplicate-flag pre-scan.
var recognizedFlags = map[string]bool{
	"v": true, "verbose": true,
	"r": true, "recursive": true,
	"root-hints": true, "recursive-server": true, "metrics-addr": true,
	"h": true, "help": true,
}

// firstDuplicateFlag scans args for a recognized flag given more than
// once, returning it (in its original form) or "" if none repeats. A short
// form and its long form (-v and --verbose) count as the same flag.
// flag.Parse does not treat repetition as an error - it silently keeps
// the last value - so spec.md's "duplicated flags exit non-zero with
// usage" requirement is enforced by this explicit pre-scan.
func firstDuplicateFlag(args []string) string {
	longForm := map[string]string{"v": "verbose", "r": "recursive", "h": "help"}
	seen := make(map[string]bool)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name = name[:eq]
		}
		if !recognizedFlags[name] {
			continue
		}
		if long, ok := longForm[name]; ok {
			name = long
		}
		if seen[name] {
			return arg
		}
		seen[name] = true
	}
	return ""
}

// resolveRecursive sends a single RD=1 query to server and returns the
// answer directly, bypassing the iterative engine entirely (spec.md §6:
// "it does not exercise the core iterative engine and is out of scope").
func resolveRecursive(domain, server string, log interface {
	Debug(msg string, args ...any)
}) ([]net.IP, error) {
	id := dns.NewID()
	msg := dns.NewQuery(id, domain, true)

	wire, err := msg.Pack()
	if err != nil {
		return nil, err
	}

	conn, err := net.ListenPacket("udp", "[::]:0")
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket: %w", err)
	}
	defer conn.Close()

	target := &net.UDPAddr{IP: net.ParseIP(server), Port: 53}
	if _, err := conn.WriteTo(wire, target); err != nil {
		return nil, fmt.Errorf("failed to send query: %w", err)
	}

	buf := make([]byte, 512)
	n, _, err := conn.ReadFrom(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	raw := buf[:n]

	if err := dns.ErrorInMessage(id, raw); err != nil {
		return nil, err
	}

	resp := new(dns.Msg)
	if _, err := resp.Unpack(raw); err != nil {
		return nil, err
	}

	log.Debug("recursive query complete", "server", server, "domain", domain)
	return resp.AnswerIPs(), nil
}
