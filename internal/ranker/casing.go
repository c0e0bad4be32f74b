package ranker

import "github.com/dchest/siphash"

// RandomizeCase applies 0x20 encoding to an encoded query name: each
// alphabetic byte's case is flipped according to one bit of a SipHash-2-4
// keystream derived from the name and key. Only the outgoing name is
// changed; the case pattern echoed in a response is not checked anywhere
// in this module.
//
// name is mutated and also returned for convenience; it must be the
// length-prefixed wire form produced by dns.EncodeName (label-length
// bytes, all <= 63 and so below 'A', are left untouched since the
// keystream only flips alphabetic bytes).
func RandomizeCase(name []byte, key [16]byte) []byte {
	h := siphash.New(key[:])
	h.Write(name)
	mask := h.Sum64()

	bit := uint(0)
	for i, b := range name {
		if b < 'A' || (b > 'Z' && b < 'a') || b > 'z' {
			continue
		}
		if mask>>(bit%64)&1 == 1 {
			name[i] = b ^ 0x20
		}
		bit++
	}
	return name
}

// RandomizeQueryName applies the same 0x20 encoding directly to a textual
// domain name (dots and all) rather than its wire-encoded form, for
// building an outgoing query's Question.QName. The filter in
// RandomizeCase already skips '.' (0x2E), which falls below 'A' exactly
// like a wire length byte does, so the same letters are candidates in both
// forms. The resulting case pattern differs between the two forms, since
// the keystream is hashed from the bytes passed in.
func RandomizeQueryName(name string, key [16]byte) string {
	return string(RandomizeCase([]byte(name), key))
}
