package dns

import (
	"encoding/binary"
	"net"
)

// Type represents a DNS resource record type.
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-3.2.2
type Type uint16

const (
	TypeUnknown Type = iota

	// TypeA is a host address (i.e. IP address).
	TypeA

	// TypeNS is an authoritative name server.
	TypeNS

	// TypeMD is a mail destination (Obsolete: use MX).
	TypeMD

	// TypeMF is a mail forwarder (Obsolete: use MX).
	TypeMF

	// TypeCNAME is the canonical name for an alias.
	TypeCNAME

	// TypeSOA marks the start of a zone of authority.
	TypeSOA

	// TypeMB is a mailbox domain name (experimental).
	TypeMB

	// TypeMG is a mail group member (experimental).
	TypeMG

	// TypeMR is a mail rename domain name (experimental).
	TypeMR

	// TypeNULL is a null resource record (experimental).
	TypeNULL

	// TypeWKS is a well known service description.
	TypeWKS

	// TypePTR is a domain name pointer.
	TypePTR

	// TypeHINFO is host information.
	TypeHINFO

	// TypeMINFO is mailbox or mail list information.
	TypeMINFO

	// TypeMX is mail exchange.
	TypeMX

	// TypeTXT is text strings.
	TypeTXT

	// TypeAAAA is a host's IPv6 address. Defined in RFC 3596, well after
	// the contiguous block above; its wire value is fixed at 28.
	TypeAAAA Type = 28
)

// Class represents a DNS resource record class.
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-3.2.4
type Class uint16

const (
	ClassUnknown Class = iota

	// ClassIN stands for the internet.
	ClassIN
)

// RR represents a resource record.
// The message answer, authority, and additional sections all share the same
// format: a variable number of resource records, where the number of records
// is specified in the corresponding count field in the message header.
// Each resource record has the following format:
//
//                                 1  1  1  1  1  1
//   0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                                               |
// /                                               /
// /                      NAME                     /
// |                                               |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                      TYPE                     |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                     CLASS                     |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                      TTL                      |
// |                                               |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                   RDLENGTH                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--|
// /                     RDATA                     /
// /                                               /
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.3
type RR struct {
	// Name is the domain name to which this resource record belongs.
	Name string

	// Type specifies the meaning of the data in the RDATA field.
	Type Type

	// Class specifies the class of the data in the RDATA field.
	Class Class

	// TTL specifies the time (in seconds) that the resource record may be cached.
	TTL uint32

	// RDLength specifies the length (in bytes) of the RDATA field.
	RDLength uint16

	// RData describes the resource itself, where the format of this information
	// varies depending on the TYPE and CLASS of the resource record.
	RData []byte

	// rdataOffset is RData's absolute offset within the message it was
	// parsed from, needed to resolve compression pointers inside RData
	// for NS/CNAME records. Zero (and unused) for records built locally
	// to encode, since Pack never compresses.
	rdataOffset int
}

// Pack encodes the resource record to its wire form. Name compression is
// never produced on output.
func (rr RR) Pack() ([]byte, error) {
	rname, err := EncodeName(rr.Name)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(rname)+10+len(rr.RData))
	buf = append(buf, rname...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Type))
	buf = binary.BigEndian.AppendUint16(buf, uint16(rr.Class))
	buf = binary.BigEndian.AppendUint32(buf, rr.TTL)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(rr.RData)))
	buf = append(buf, rr.RData...)
	return buf, nil
}

// Unpack decodes a resource record from the start (offset 0) of b.
func (rr *RR) Unpack(b []byte) (int, error) {
	return rr.UnpackAt(b, 0)
}

// UnpackAt decodes a resource record starting at offset within msg,
// returning the offset immediately following it. rname, and rdata for
// NS/CNAME types, may carry compression pointers resolved against the
// whole message.
func (rr *RR) UnpackAt(msg []byte, offset int) (int, error) {
	name, next, err := DecodeName(msg, offset)
	if err != nil {
		return 0, ErrInvalidResourceRecord
	}
	if next+10 > len(msg) {
		return 0, ErrInvalidResourceRecord
	}

	rr.Name = name.String()
	rr.Type = Type(binary.BigEndian.Uint16(msg[next : next+2]))
	rr.Class = Class(binary.BigEndian.Uint16(msg[next+2 : next+4]))
	rr.TTL = binary.BigEndian.Uint32(msg[next+4 : next+8])
	rr.RDLength = binary.BigEndian.Uint16(msg[next+8 : next+10])
	next += 10

	if next+int(rr.RDLength) > len(msg) {
		return 0, ErrInvalidResourceRecord
	}
	rr.rdataOffset = next
	rr.RData = msg[next : next+int(rr.RDLength)]
	next += int(rr.RDLength)

	return next, nil
}

// rdataIP interprets RData as an A or AAAA address, returning nil for any
// other length.
func (rr RR) rdataIP() net.IP {
	switch len(rr.RData) {
	case net.IPv4len:
		return net.IPv4(rr.RData[0], rr.RData[1], rr.RData[2], rr.RData[3])
	case net.IPv6len:
		ip := make(net.IP, net.IPv6len)
		copy(ip, rr.RData)
		return ip
	default:
		return nil
	}
}

// rdataName decompresses RData as a domain name (for NS/CNAME records).
// msg must be the whole message rr was parsed from.
func (rr RR) rdataName(msg []byte) (CompressedName, error) {
	name, _, err := DecodeName(msg, rr.rdataOffset)
	return name, err
}
