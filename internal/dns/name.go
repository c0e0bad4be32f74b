package dns

import (
	"encoding/binary"
	"strings"
)

// maxPointerDepth bounds compression pointer recursion. RFC 1035 does not
// fix a limit; 128 is the customary safe bound (a message can't usefully
// nest more pointers than it has bytes to hold labels).
const maxPointerDepth = 128

// CompressedName is the structural view of a decoded domain name: an
// ordered sequence of byte runs, each either a contiguous slice of labels
// taken directly from the message, or a chunk reached by following a
// compression pointer. Concatenating the runs yields the full
// label sequence terminated by a zero byte.
//
// The runs are kept separate (instead of flattened into a single string)
// so String can walk labels across a pointer boundary, and so equality
// and ranking operate on the logical name rather than on how it happened
// to be encoded.
type CompressedName struct {
	segments [][]byte
}

// Bytes concatenates the name's segments into its flattened wire form
// (labels only, no pointer bytes, ending in the zero byte of the run that
// terminated the chain).
func (n CompressedName) Bytes() []byte {
	var out []byte
	for _, seg := range n.segments {
		out = append(out, seg...)
	}
	return out
}

// String renders the name as dot-separated labels. The root name renders
// as ".".
func (n CompressedName) String() string {
	var b strings.Builder
	first := true

	for _, seg := range n.segments {
		i := 0
		for i < len(seg) {
			length := seg[i]
			if length == 0 || length&0xC0 == 0xC0 {
				break
			}

			i++
			end := i + int(length)
			if end > len(seg) {
				break
			}

			if !first {
				b.WriteByte('.')
			}
			b.Write(seg[i:end])
			first = false
			i = end
		}
	}

	if first {
		return "."
	}
	b.WriteByte('.')
	return b.String()
}

// Equal compares two names by their logical (decoded) form, not by their
// physical encoding - two names that differ only in how compression
// pointers were used are equal.
func (n CompressedName) Equal(other CompressedName) bool {
	return n.String() == other.String()
}

// EncodeName encodes a textual domain name (e.g. "www.example.com", with
// or without a trailing dot) into length-prefixed wire form, terminated
// by a zero byte. Empty input yields a single zero byte - the root name.
//
// Outgoing names are never compressed (see Msg.Pack): a query is
// small enough that compression saves nothing.
func EncodeName(name string) ([]byte, error) {
	name = strings.TrimSuffix(name, ".")

	buf := make([]byte, 0, len(name)+2)
	if name != "" {
		for _, label := range strings.Split(name, ".") {
			if len(label) > 63 {
				return nil, ErrNameTooLong
			}
			buf = append(buf, byte(len(label)))
			buf = append(buf, label...)
		}
	}
	buf = append(buf, 0)

	return buf, nil
}

// isPointer reports whether b is the first byte of a 2-byte compression
// pointer: RFC 1035 §4.1.4 reserves the top two bits for this purpose.
func isPointer(b byte) bool {
	return b&0xC0 == 0xC0
}

// localExtent scans a single name token starting at offset: a run of
// labels ending in either a zero byte or a compression pointer. It does
// NOT follow the pointer; it only reports where it is and how far the
// local (sequential) parse should resume.
//
// Returns:
//   - next: the offset immediately following this token, i.e. where
//     parsing of the enclosing question/resource-record should continue.
//   - ptrOffset: the offset the pointer refers to (only meaningful when
//     hasPointer is true).
//   - hasPointer: whether the token ended in a pointer rather than a
//     zero byte.
func localExtent(msg []byte, offset int) (next int, ptrOffset int, hasPointer bool, err error) {
	i := offset
	for {
		if i >= len(msg) {
			return 0, 0, false, ErrBadName
		}

		b := msg[i]
		switch {
		case isPointer(b):
			if i+1 >= len(msg) {
				return 0, 0, false, ErrBadName
			}
			ptr := int(binary.BigEndian.Uint16(msg[i:i+2]) & 0x3FFF)
			return i + 2, ptr, true, nil

		case b&0xC0 != 0:
			// The two reserved length-prefix patterns (01xxxxxx, 10xxxxxx)
			// never appear in a well-formed message.
			return 0, 0, false, ErrBadName

		case b == 0:
			return i + 1, 0, false, nil

		default:
			i += 1 + int(b)
		}
	}
}

// resolveName follows localExtent's pointer chain to build the full
// structural CompressedName, detecting cycles via both a visited-offset
// set and a depth bound.
func resolveName(msg []byte, offset int, visited map[int]bool, depth int) (CompressedName, error) {
	if depth > maxPointerDepth {
		return CompressedName{}, ErrBadName
	}

	next, ptrOffset, hasPointer, err := localExtent(msg, offset)
	if err != nil {
		return CompressedName{}, err
	}

	if !hasPointer {
		return CompressedName{segments: [][]byte{cloneBytes(msg[offset:next])}}, nil
	}

	var segs [][]byte
	ptrStart := next - 2
	if ptrStart > offset {
		segs = append(segs, cloneBytes(msg[offset:ptrStart]))
	}

	if visited[ptrOffset] {
		return CompressedName{}, ErrBadName
	}
	visited[ptrOffset] = true

	tail, err := resolveName(msg, ptrOffset, visited, depth+1)
	if err != nil {
		return CompressedName{}, err
	}
	segs = append(segs, tail.segments...)

	return CompressedName{segments: segs}, nil
}

// DecodeName decodes a name starting at offset in msg, returning its
// structural form and the offset at which the enclosing section should
// resume parsing (see localExtent).
func DecodeName(msg []byte, offset int) (CompressedName, int, error) {
	next, _, _, err := localExtent(msg, offset)
	if err != nil {
		return CompressedName{}, 0, err
	}

	name, err := resolveName(msg, offset, map[int]bool{offset: true}, 0)
	if err != nil {
		return CompressedName{}, 0, err
	}

	return name, next, nil
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
