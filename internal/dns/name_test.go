package dns

import (
	"errors"
	"testing"
)

func TestEncodeNameSimple(t *testing.T) {
	b, err := EncodeName("a.b")
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{1, 'a', 1, 'b', 0}
	if string(b) != string(want) {
		t.Errorf("EncodeName(\"a.b\") = %v, want %v", b, want)
	}
}

func TestEncodeNameEmpty(t *testing.T) {
	b, err := EncodeName("")
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 1 || b[0] != 0 {
		t.Errorf("EncodeName(\"\") = %v, want [0]", b)
	}
}

func TestEncodeNameLabelTooLong(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}

	_, err := EncodeName(string(long))
	if !errors.Is(err, ErrNameTooLong) {
		t.Errorf("expected ErrNameTooLong, got %v", err)
	}
}

func TestDecodeNameRoundTrip(t *testing.T) {
	cases := []string{"a.b", "example.com", "www.example.com", ""}
	for _, name := range cases {
		b, err := EncodeName(name)
		if err != nil {
			t.Fatalf("EncodeName(%q): %v", name, err)
		}

		decoded, next, err := DecodeName(b, 0)
		if err != nil {
			t.Fatalf("DecodeName(%q): %v", name, err)
		}
		if next != len(b) {
			t.Errorf("DecodeName(%q) next = %d, want %d", name, next, len(b))
		}

		want := name
		if want == "" {
			want = "."
		} else {
			want += "."
		}
		if decoded.String() != want {
			t.Errorf("DecodeName(%q) = %q, want %q", name, decoded.String(), want)
		}
	}
}

// message built by hand: two names, the second ("foo") compressed as a
// pointer to the first ("f.isi.arpa").
func buildPointerMessage() []byte {
	msg := []byte{
		1, 'f', 3, 'i', 's', 'i', 4, 'a', 'r', 'p', 'a', 0,
		3, 'f', 'o', 'o', 0xC0, 0,
	}
	return msg
}

func TestDecodeNameFollowsPointer(t *testing.T) {
	msg := buildPointerMessage()

	name, next, err := DecodeName(msg, 12)
	if err != nil {
		t.Fatal(err)
	}
	if want := "foo.f.isi.arpa."; name.String() != want {
		t.Errorf("got %q, want %q", name.String(), want)
	}
	if want := 18; next != want {
		t.Errorf("next = %d, want %d", next, want)
	}
}

func TestDecodeNameCycleDetected(t *testing.T) {
	// Two pointers referencing each other: offset 0 points to offset 2,
	// offset 2 points back to offset 0.
	msg := []byte{0xC0, 2, 0xC0, 0}

	_, _, err := DecodeName(msg, 0)
	if !errors.Is(err, ErrBadName) {
		t.Errorf("expected ErrBadName, got %v", err)
	}
}

func TestDecodeNameTruncated(t *testing.T) {
	msg := []byte{3, 'w', 'w'} // claims 3 bytes, only 2 present
	_, _, err := DecodeName(msg, 0)
	if !errors.Is(err, ErrBadName) {
		t.Errorf("expected ErrBadName, got %v", err)
	}
}

func TestCompressedNameDisplayRoot(t *testing.T) {
	root := CompressedName{segments: [][]byte{{0}}}
	if root.String() != "." {
		t.Errorf("root name displayed as %q, want \".\"", root.String())
	}
}
