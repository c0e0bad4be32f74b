package dns

import (
	"crypto/rand"
	"encoding/binary"
	"net"
)

// Msg represents a DNS communication message. It contains 5 sections, of which
// some can be empty.
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1
type Msg struct {
	// Header contains message information, and is always present.
	Header

	// Question describes the query to the name server.
	Question Question

	// Answer can be part of the response that contains resource records that
	// answer the question.
	Answer []RR

	// Authority can be part of the response that contains resource records that
	// point to an authoritative name server.
	Authority []RR

	// Additional can be part of the response that contains resource records with
	// additional information (also called "glue records").
	Additional []RR
}

// NewID returns a cryptographically random 16-bit query id. Query ids
// must not come from a predictable source: an attacker who can guess the
// id (and race a spoofed reply past the real one) poisons the resolver
// with no other effort. math/rand is not acceptable here.
func NewID() uint16 {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing means the OS entropy source is broken; there
		// is no safe degraded mode for query-id generation to fall back to.
		panic("dns: crypto/rand unavailable: " + err.Error())
	}
	return binary.BigEndian.Uint16(b[:])
}

// NewQuery builds an outgoing query message: a single A/IN question for
// qname, RD set according to recursionDesired. Iterative resolution
// always builds these with recursionDesired = false.
func NewQuery(id uint16, qname string, recursionDesired bool) *Msg {
	return &Msg{
		Header: newHeader(id, recursionDesired),
		Question: Question{
			QName:  qname,
			QType:  TypeA,
			QClass: ClassIN,
		},
	}
}

// IncrementID bumps the query id by one between iterations of the same
// resolution walk, so a stale or replayed response from an earlier hop
// doesn't get matched to the current one.
func (m *Msg) IncrementID() {
	m.ID++
}

// Pack encodes the message to its wire form. Section counts are derived
// from the actual slice lengths, so a caller can never produce a message
// whose counts disagree with its sections.
func (m *Msg) Pack() ([]byte, error) {
	m.QDCount = 1
	m.ANCount = uint16(len(m.Answer))
	m.NSCount = uint16(len(m.Authority))
	m.ARCount = uint16(len(m.Additional))

	hb, err := m.Header.Pack()
	if err != nil {
		return nil, err
	}
	buf := append([]byte{}, hb...)

	qb, err := m.Question.Pack()
	if err != nil {
		return nil, err
	}
	buf = append(buf, qb...)

	for _, sections := range [][]RR{m.Answer, m.Authority, m.Additional} {
		for _, rr := range sections {
			rb, err := rr.Pack()
			if err != nil {
				return nil, err
			}
			buf = append(buf, rb...)
		}
	}

	return buf, nil
}

// Unpack parses a complete message from b: the 12-byte header, then
// qdcount questions, ancount answers, nscount authorities and arcount
// additionals, each read in turn as the running offset advances.
func (m *Msg) Unpack(b []byte) (int, error) {
	offset, err := m.Header.Unpack(b)
	if err != nil {
		return 0, err
	}

	for i := 0; i < int(m.QDCount); i++ {
		var q Question
		next, err := q.UnpackAt(b, offset)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			m.Question = q
		}
		offset = next
	}

	for _, dst := range []struct {
		count int
		out   *[]RR
	}{
		{int(m.ANCount), &m.Answer},
		{int(m.NSCount), &m.Authority},
		{int(m.ARCount), &m.Additional},
	} {
		for i := 0; i < dst.count; i++ {
			var rr RR
			next, err := rr.UnpackAt(b, offset)
			if err != nil {
				return 0, err
			}
			*dst.out = append(*dst.out, rr)
			offset = next
		}
	}

	return offset, nil
}

// ResponseKind classifies a parsed response per §4.2: an answer carries
// at least one record in the answer section; a delegation carries none
// but points to closer authorities; anything else is an error.
type ResponseKind int

const (
	KindAnswer ResponseKind = iota
	KindDelegation
	KindError
)

// Classify reports which of the three response kinds m represents.
func (m *Msg) Classify() ResponseKind {
	switch {
	case m.ANCount > 0:
		return KindAnswer
	case m.NSCount > 0:
		return KindDelegation
	default:
		return KindError
	}
}

// AnswerIPs collects the addresses carried by A and AAAA records in the
// answer section.
func (m *Msg) AnswerIPs() []net.IP {
	var ips []net.IP
	for _, rr := range m.Answer {
		if rr.Type != TypeA && rr.Type != TypeAAAA {
			continue
		}
		if ip := rr.rdataIP(); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips
}

// CNAMEs decodes the alias targets of any CNAME records in the answer
// section. raw must be the complete message m was parsed from, since a
// CNAME's rdata may carry a compression pointer into it.
func (m *Msg) CNAMEs(raw []byte) ([]string, error) {
	var out []string
	for _, rr := range m.Answer {
		if rr.Type != TypeCNAME {
			continue
		}
		name, err := rr.rdataName(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, name.String())
	}
	return out, nil
}

// Additionals pairs each A/AAAA record in the additional section with its
// decoded owner name and its address - the glue records a delegation uses
// to avoid a chicken-and-egg lookup of its own nameservers. Records of any
// other type are left out. raw must be the complete message m was parsed
// from.
func (m *Msg) Additionals(raw []byte) ([]ServerInfo, error) {
	out := make([]ServerInfo, 0, len(m.Additional))
	for _, rr := range m.Additional {
		if rr.Type != TypeA && rr.Type != TypeAAAA {
			continue
		}
		out = append(out, ServerInfo{
			Name: rr.Name,
			IP:   rr.rdataIP(),
		})
	}
	return out, nil
}

// Authorities decodes the nameserver names carried by NS records in the
// authority section. raw must be the complete message m was parsed from.
func (m *Msg) Authorities(raw []byte) ([]string, error) {
	out := make([]string, 0, len(m.Authority))
	for _, rr := range m.Authority {
		if rr.Type != TypeNS {
			continue
		}
		name, err := rr.rdataName(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, name.String())
	}
	return out, nil
}

// ServerInfo describes an authoritative-or-intermediate nameserver
// discovered during resolution. IP is nil when the name is known but its
// address has not yet been resolved (no glue record was provided).
type ServerInfo struct {
	Name string
	IP   net.IP
}

// ErrorInMessage validates a raw response buffer before it is fully
// parsed: the response id must match expectedID, its RCODE must not
// indicate a server-side error, and a "successful" response must not be
// empty (ancount and nscount both zero is treated as malformed, not as
// an empty-but-valid answer).
func ErrorInMessage(expectedID uint16, raw []byte) error {
	if len(raw) < headerSize {
		return ErrInvalidHeader
	}

	respID := binary.BigEndian.Uint16(raw[0:2])
	flags := binary.BigEndian.Uint16(raw[2:4])
	ancount := binary.BigEndian.Uint16(raw[6:8])
	nscount := binary.BigEndian.Uint16(raw[8:10])

	if expectedID != respID {
		return ErrInvalidResponseID
	}
	if err := RCodeError(byte(flags & 0xf)); err != nil {
		return err
	}
	if ancount == 0 && nscount == 0 {
		return ErrInvalidFormat
	}

	return nil
}
