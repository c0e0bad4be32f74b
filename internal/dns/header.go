package dns

import "encoding/binary"

// headerSize is the fixed 12-byte length of a DNS message header.
const headerSize = 12

// OpCode represents a DNS operation code.
type OpCode byte

const (
	// OpCodeQuery is a standard query.
	OpCodeQuery OpCode = iota

	// OpCodeIQuery is an inverse query.
	OpCodeIQuery

	// OpCodeStatus is a server status request.
	OpCodeStatus
)

// RCode represents a DNS response code.
type RCode byte

const (
	// RCodeNoError means there's no error condition.
	RCodeNoError RCode = iota

	// RCodeFormatError means the name server was unable to interpret the query.
	RCodeFormatError

	// RCodeServerFailure means the name server was unable to process the query
	// because of a problem with the name server.
	RCodeServerFailure

	// RCodeNameError means the domain name referenced in the query does not exist
	// (only relevant for responses from an authoritative name server).
	RCodeNameError

	// RCodeNotImplemented means the name server does not support the requested
	// type of query.
	RCodeNotImplemented

	// RCodeRefused means the name server refuses to perform the specified
	// operation.
	RCodeRefused
)

// Header represents the DNS message header.
// It has the following format:
//
//                                 1  1  1  1  1  1
//   0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                      ID                       |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |QR|   OPCODE  |AA|TC|RD|RA|   Z    |   RCODE   |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                    QDCOUNT                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                    ANCOUNT                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                    NSCOUNT                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                    ARCOUNT                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.1
type Header struct {
	// ID is the DNS message identifier. It is copied to the corresponding
	// response and can be used by the requester to match up replies to
	// outstanding queries.
	ID uint16

	// QR stands for Query or Response. This bit field specifies if the message
	// is a query (0) or response (1).
	QR byte

	// OpCode stands for Operation Code. This 4 bit field specifies what kind of
	// query the message is.
	OpCode OpCode

	// AA stands for Authoritative Answer. This bit field is valid in responses,
	// and specifies that the responding name server is an authority for the
	// domain name in the question section.
	AA byte

	// TC stands for TrunCation. This bit field specifies that this message was
	// truncated when its length is greater than permitted on the transmission channel.
	TC byte

	// RD stands for Recursion Desired. This bit field may be set in a query and
	// is copied into the response. If RD is set, it tells the name server to
	// resolve the query recursively.
	RD byte

	// RA stands for Recursion Available. This bit field is set or cleared in a
	// response, and specifies if the name server supports recursive queries.
	RA byte

	// Z is reserved for future use. It must be zero in all queries and responses.
	Z byte

	// RCode stands for Response Code. This 4 bit field is set as part of a
	// response.
	RCode RCode

	// QDCount specifies the number of entries in the question section.
	QDCount uint16

	// ANCount specifies the number of resource records in the answer section.
	ANCount uint16

	// NSCount specifies the number of name server resource records in the
	// authority section.
	NSCount uint16

	// ARCount specifies the number of resource records in the additional section.
	ARCount uint16
}

// newHeader builds a header for an outgoing query: QR=0, AA=0, TC=0, RA=0,
// Z=0 by construction (only RD and the id are ever set on a query, per
// the iterative resolver's needs).
func newHeader(id uint16, rd bool) Header {
	h := Header{
		ID:      id,
		OpCode:  OpCodeQuery,
		RCode:   RCodeNoError,
		QDCount: 1,
	}
	if rd {
		h.RD = 1
	}
	return h
}

// flags packs the header's bit fields into the 16-bit flags word.
func (h Header) flags() uint16 {
	var f uint16
	f |= uint16(h.QR&1) << 15
	f |= uint16(h.OpCode&0xf) << 11
	f |= uint16(h.AA&1) << 10
	f |= uint16(h.TC&1) << 9
	f |= uint16(h.RD&1) << 8
	f |= uint16(h.RA&1) << 7
	f |= uint16(h.Z&0x7) << 4
	f |= uint16(h.RCode) & 0xf
	return f
}

// setFlags unpacks the 16-bit flags word into the header's bit fields.
func (h *Header) setFlags(f uint16) {
	h.QR = byte(f>>15) & 1
	h.OpCode = OpCode(f>>11) & 0xf
	h.AA = byte(f>>10) & 1
	h.TC = byte(f>>9) & 1
	h.RD = byte(f>>8) & 1
	h.RA = byte(f>>7) & 1
	h.Z = byte(f>>4) & 0x7
	h.RCode = RCode(f) & 0xf
}

// Pack encodes the header into its 12-byte wire form.
func (h Header) Pack() ([]byte, error) {
	buf := make([]byte, headerSize)
	binary.BigEndian.PutUint16(buf[0:2], h.ID)
	binary.BigEndian.PutUint16(buf[2:4], h.flags())
	binary.BigEndian.PutUint16(buf[4:6], h.QDCount)
	binary.BigEndian.PutUint16(buf[6:8], h.ANCount)
	binary.BigEndian.PutUint16(buf[8:10], h.NSCount)
	binary.BigEndian.PutUint16(buf[10:12], h.ARCount)
	return buf, nil
}

// Unpack decodes a 12-byte header from b, returning the number of bytes
// consumed (always headerSize on success).
func (h *Header) Unpack(b []byte) (int, error) {
	if len(b) < headerSize {
		return 0, ErrInvalidHeader
	}

	h.ID = binary.BigEndian.Uint16(b[0:2])
	h.setFlags(binary.BigEndian.Uint16(b[2:4]))
	h.QDCount = binary.BigEndian.Uint16(b[4:6])
	h.ANCount = binary.BigEndian.Uint16(b[6:8])
	h.NSCount = binary.BigEndian.Uint16(b[8:10])
	h.ARCount = binary.BigEndian.Uint16(b[10:12])

	return headerSize, nil
}
