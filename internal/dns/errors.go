package dns

import "errors"

// Wire parse errors: raised when a message, question, or resource record
// does not have enough bytes for its fixed-size fields.
var (
	ErrInvalidHeader         = errors.New("dns: header is not large enough")
	ErrInvalidQuestion       = errors.New("dns: question is not large enough")
	ErrInvalidResourceRecord = errors.New("dns: resource record is not large enough")
)

// ErrBadName is returned by the name decoder when a compression pointer
// chain revisits an offset (a cycle), exceeds the recursion bound, or
// points outside the message.
var ErrBadName = errors.New("dns: bad or cyclic compressed name")

// ErrNameTooLong is returned by EncodeName when a label exceeds 63 bytes.
var ErrNameTooLong = errors.New("dns: label exceeds 63 bytes")

// Errors surfaced from a response's RCODE (RFC 1035 §4.1.1).
var (
	ErrFormatError    = errors.New("dns: name server was unable to interpret the query")
	ErrServerFailure  = errors.New("dns: name server was unable to process the query")
	ErrNameError      = errors.New("dns: domain name does not exist")
	ErrNotImplemented = errors.New("dns: name server does not support the requested query kind")
	ErrRefused        = errors.New("dns: name server refused to perform the operation")
)

// Errors raised by response validation and classification.
var (
	// ErrInvalidFormat is returned when a response classifies as Error, or
	// when a successful response has empty answer and authority sections.
	ErrInvalidFormat = errors.New("dns: response is malformed or empty")

	// ErrInvalidResponseID is returned when a response header id does not
	// match the id of the query it is supposed to answer.
	ErrInvalidResponseID = errors.New("dns: response id does not match query id")
)

// RCodeError maps a response code's low nibble to a sentinel error. RCODEs
// 6-15 have no assigned meaning here and are treated as success, per
// RFC 1035's reservation of those values for future use.
func RCodeError(rcode byte) error {
	switch rcode & 0xf {
	case 0:
		return nil
	case 1:
		return ErrFormatError
	case 2:
		return ErrServerFailure
	case 3:
		return ErrNameError
	case 4:
		return ErrNotImplemented
	case 5:
		return ErrRefused
	default:
		return nil
	}
}
