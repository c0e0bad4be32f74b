package dns

import (
	"errors"
	"net"
	"testing"

	miekg "github.com/miekg/dns"
)

// These fixtures are built with github.com/miekg/dns as an independent,
// trusted encoder, then parsed with this package's own decoder. Using a
// foreign encoder for the raw bytes guards against our own codec and its
// tests sharing the same bug; miekg/dns is never imported outside _test.go.

func TestFixtureDelegationWithGlue(t *testing.T) {
	m := new(miekg.Msg)
	m.SetQuestion(miekg.Fqdn("example.com"), miekg.TypeA)
	m.Compress = true

	m.Ns = []miekg.RR{
		&miekg.NS{
			Hdr: miekg.RR_Header{Name: miekg.Fqdn("example.com"), Rrtype: miekg.TypeNS, Class: miekg.ClassINET, Ttl: 3600},
			Ns:  miekg.Fqdn("ns1.example.com"),
		},
	}
	m.Extra = []miekg.RR{
		&miekg.A{
			Hdr: miekg.RR_Header{Name: miekg.Fqdn("ns1.example.com"), Rrtype: miekg.TypeA, Class: miekg.ClassINET, Ttl: 3600},
			A:   net.IPv4(198, 51, 100, 1),
		},
	}

	raw, err := m.Pack()
	if err != nil {
		t.Fatalf("miekg pack: %v", err)
	}

	got := new(Msg)
	if _, err := got.Unpack(raw); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	if got.Classify() != KindDelegation {
		t.Fatalf("Classify = %v, want KindDelegation", got.Classify())
	}

	names, err := got.Authorities(raw)
	if err != nil {
		t.Fatalf("Authorities: %v", err)
	}
	if len(names) != 1 || names[0] != "ns1.example.com." {
		t.Errorf("Authorities = %v", names)
	}

	glue, err := got.Additionals(raw)
	if err != nil {
		t.Fatalf("Additionals: %v", err)
	}
	if len(glue) != 1 || glue[0].Name != "ns1.example.com." || glue[0].IP.String() != "198.51.100.1" {
		t.Errorf("Additionals = %+v", glue)
	}
}

func TestFixtureGlueLessDelegation(t *testing.T) {
	m := new(miekg.Msg)
	m.SetQuestion(miekg.Fqdn("example.com"), miekg.TypeA)

	m.Ns = []miekg.RR{
		&miekg.NS{
			Hdr: miekg.RR_Header{Name: miekg.Fqdn("example.com"), Rrtype: miekg.TypeNS, Class: miekg.ClassINET, Ttl: 3600},
			Ns:  miekg.Fqdn("a.gtld-servers.net"),
		},
	}

	raw, err := m.Pack()
	if err != nil {
		t.Fatalf("miekg pack: %v", err)
	}

	got := new(Msg)
	if _, err := got.Unpack(raw); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	if got.Classify() != KindDelegation {
		t.Fatalf("Classify = %v, want KindDelegation", got.Classify())
	}

	names, err := got.Authorities(raw)
	if err != nil {
		t.Fatalf("Authorities: %v", err)
	}
	if len(names) != 1 || names[0] != "a.gtld-servers.net." {
		t.Errorf("Authorities = %v", names)
	}

	glue, err := got.Additionals(raw)
	if err != nil {
		t.Fatalf("Additionals: %v", err)
	}
	if len(glue) != 0 {
		t.Errorf("Additionals = %+v, want empty", glue)
	}
}

func TestFixtureCNAMEChain(t *testing.T) {
	m := new(miekg.Msg)
	m.SetQuestion(miekg.Fqdn("www.example.com"), miekg.TypeA)
	m.Compress = true

	m.Answer = []miekg.RR{
		&miekg.CNAME{
			Hdr:    miekg.RR_Header{Name: miekg.Fqdn("www.example.com"), Rrtype: miekg.TypeCNAME, Class: miekg.ClassINET, Ttl: 3600},
			Target: miekg.Fqdn("example.com"),
		},
		&miekg.A{
			Hdr: miekg.RR_Header{Name: miekg.Fqdn("example.com"), Rrtype: miekg.TypeA, Class: miekg.ClassINET, Ttl: 3600},
			A:   net.IPv4(93, 184, 216, 34),
		},
	}

	raw, err := m.Pack()
	if err != nil {
		t.Fatalf("miekg pack: %v", err)
	}

	got := new(Msg)
	if _, err := got.Unpack(raw); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	if got.Classify() != KindAnswer {
		t.Fatalf("Classify = %v, want KindAnswer", got.Classify())
	}

	cnames, err := got.CNAMEs(raw)
	if err != nil {
		t.Fatalf("CNAMEs: %v", err)
	}
	if len(cnames) != 1 || cnames[0] != "example.com." {
		t.Errorf("CNAMEs = %v", cnames)
	}

	ips := got.AnswerIPs()
	if len(ips) != 1 || ips[0].String() != "93.184.216.34" {
		t.Errorf("AnswerIPs = %v", ips)
	}
}

func TestFixtureNameError(t *testing.T) {
	m := new(miekg.Msg)
	m.SetQuestion(miekg.Fqdn("nonexistent.tld"), miekg.TypeA)
	m.Rcode = miekg.RcodeNameError
	m.Response = true

	raw, err := m.Pack()
	if err != nil {
		t.Fatalf("miekg pack: %v", err)
	}

	if err := ErrorInMessage(m.Id, raw); !errors.Is(err, ErrNameError) {
		t.Fatalf("expected ErrNameError, got %v", err)
	}

	got := new(Msg)
	if _, err := got.Unpack(raw); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got.Classify() != KindError {
		t.Fatalf("Classify = %v, want KindError", got.Classify())
	}
}
