package dns

import "encoding/binary"

// QType fields appear in the question section of a DNS query.
// QTypes are a superset of Types, so every Type is a valid QType.
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-3.2.3
type QType = Type

// QClass fields appear in the question section of a DNS query.
// QClass values are a superset of Class values, so every Class is a valid
// QClass.
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-3.2.5
type QClass = Class

// Question represents the question (i.e. query) to a name server.
// It has the following format:
//
//                                 1  1  1  1  1  1
//   0  1  2  3  4  5  6  7  8  9  0  1  2  3  4  5
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                                               |
// /                     QNAME                     /
// /                                               /
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                     QTYPE                     |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
// |                     QCLASS                    |
// +--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// See: https://datatracker.ietf.org/doc/html/rfc1035#section-4.1.2
type Question struct {
	// QName is the domain name in dotted text form (e.g. "example.com.").
	// On the wire it is a sequence of labels, each a length byte followed by
	// that number of bytes, terminated by the zero length byte of the root;
	// Pack and UnpackAt convert between the two forms.
	QName string

	// QType is a two byte code which specifies the type of the query.
	QType QType

	// QClass is a two byte code that specifies the class of the query.
	QClass QClass
}

// Pack encodes the question to its wire form. QName is never compressed
// on output (see Msg.Pack).
func (q Question) Pack() ([]byte, error) {
	qname, err := EncodeName(q.QName)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, len(qname)+4)
	buf = append(buf, qname...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.QType))
	buf = binary.BigEndian.AppendUint16(buf, uint16(q.QClass))
	return buf, nil
}

// Unpack decodes a question from the start (offset 0) of b. Use UnpackAt
// to decode a question embedded at an arbitrary offset within a larger
// message, where its QNAME may need to resolve a compression pointer
// against the whole message.
func (q *Question) Unpack(b []byte) (int, error) {
	return q.UnpackAt(b, 0)
}

// UnpackAt decodes a question starting at offset within msg, returning
// the offset immediately following it.
func (q *Question) UnpackAt(msg []byte, offset int) (int, error) {
	name, next, err := DecodeName(msg, offset)
	if err != nil {
		return 0, ErrInvalidQuestion
	}
	if next+4 > len(msg) {
		return 0, ErrInvalidQuestion
	}

	q.QName = name.String()
	q.QType = QType(binary.BigEndian.Uint16(msg[next : next+2]))
	q.QClass = QClass(binary.BigEndian.Uint16(msg[next+2 : next+4]))

	return next + 4, nil
}
