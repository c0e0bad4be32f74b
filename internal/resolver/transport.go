package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/tinyresolve/tinyresolve/internal/dns"
)

const (
	defaultPort    = 53
	readTimeout    = 5 * time.Second
	recvBufferSize = 512
)

// send tries each candidate server in order, returning the first
// header-valid response. A candidate that times out, fails I/O, answers
// from the wrong source address, or returns a short or id-mismatched
// response is logged and skipped; exhausting the list fails with
// ErrNoAvailableServers. An RCODE error or an empty "successful" response
// is returned at once without trying further candidates (see isFatal).
func send(log *slog.Logger, msg *dns.Msg, candidates []dns.ServerInfo, port int) ([]byte, error) {
	wire, err := msg.Pack()
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	for _, candidate := range candidates {
		if candidate.IP == nil {
			continue
		}

		raw, err := sendOne(wire, candidate.IP, port, msg.ID)
		if err != nil {
			if isFatal(err) {
				return nil, err
			}
			log.Debug("candidate server failed", "server", candidate.Name, "ip", candidate.IP, "err", err)
			continue
		}
		return raw, nil
	}

	return nil, ErrNoAvailableServers
}

// isFatal reports whether err represents an authoritative statement about
// the domain (a server's RCODE, or a structurally-empty "successful"
// response) rather than a connectivity or framing problem with this one
// candidate. Fatal errors propagate to the caller of query immediately,
// per spec.md §4.5 step 3c and scenario S4; everything else is logged and
// the next candidate is tried.
func isFatal(err error) bool {
	return errors.Is(err, dns.ErrFormatError) ||
		errors.Is(err, dns.ErrServerFailure) ||
		errors.Is(err, dns.ErrNameError) ||
		errors.Is(err, dns.ErrNotImplemented) ||
		errors.Is(err, dns.ErrRefused) ||
		errors.Is(err, dns.ErrInvalidFormat)
}

// sendOne performs a single send/receive attempt against one server,
// binding a fresh dual-stack ephemeral socket per spec.md §4.4.
func sendOne(wire []byte, ip net.IP, port int, expectID uint16) ([]byte, error) {
	conn, err := net.ListenPacket("udp", "[::]:0")
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return nil, fmt.Errorf("failed to set read deadline: %w", err)
	}

	target := &net.UDPAddr{IP: ip, Port: port}
	if _, err := conn.WriteTo(wire, target); err != nil {
		return nil, fmt.Errorf("failed to send query: %w", err)
	}

	buf := make([]byte, recvBufferSize)
	n, from, err := conn.ReadFrom(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !sourceMatches(from, target) {
		return nil, fmt.Errorf("response source %v does not match target %v", from, target)
	}

	raw := buf[:n]
	if err := dns.ErrorInMessage(expectID, raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// sourceMatches compares the received datagram's source against the
// target address, normalizing an IPv4-mapped IPv6 address to IPv4 first
// since a dual-stack socket may report either form.
func sourceMatches(from net.Addr, target *net.UDPAddr) bool {
	udpFrom, ok := from.(*net.UDPAddr)
	if !ok {
		return false
	}

	fromIP := udpFrom.IP
	if v4 := fromIP.To4(); v4 != nil {
		fromIP = v4
	}
	targetIP := target.IP
	if v4 := targetIP.To4(); v4 != nil {
		targetIP = v4
	}

	return fromIP.Equal(targetIP)
}
