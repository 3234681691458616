package lzw

import (
	"bytes"
	"testing"

	"github.com/dsnet/arc/internal/testutil"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("a"),
		[]byte("TOBEORNOTTOBEORTOBEORNOT#"),
		bytes.Repeat([]byte{0x41}, 16384),
		testutil.NewRand(1).Bytes(32768),
	}
	for _, in := range cases {
		codes := Encode(nil, in)
		out, err := Decode(nil, codes)
		if err != nil {
			t.Fatalf("Decode(Encode(%d bytes)) error: %v", len(in), err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("round trip mismatch for %d input bytes", len(in))
		}
	}
}

func TestEncodeEmpty(t *testing.T) {
	if codes := Encode(nil, nil); len(codes) != 0 {
		t.Fatalf("Encode(nil) = %v, want empty", codes)
	}
}

func TestEncodeSingleByte(t *testing.T) {
	codes := Encode(nil, []byte{0x42})
	if len(codes) != 1 || codes[0] != 0x42 {
		t.Fatalf("Encode single byte = %v, want [0x42]", codes)
	}
}

// TestTextbookExample checks the classic LZW example: encoding
// "TOBEORNOTTOBEORTOBEORNOT#" emits the well-known 17-code sequence
// T O B E O R N O T TO BE OR TOB EO RN OT #.
func TestTextbookExample(t *testing.T) {
	codes := Encode(nil, []byte("TOBEORNOTTOBEORTOBEORNOT#"))
	want := []Code{'T', 'O', 'B', 'E', 'O', 'R', 'N', 'O', 'T', 256, 258, 260, 265, 259, 261, 263, '#'}
	if len(codes) != len(want) {
		t.Fatalf("code count = %d, want %d", len(codes), len(want))
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes[%d] = %d, want %d", i, codes[i], want[i])
		}
	}
}

func TestDictionaryNeverExceedsCap(t *testing.T) {
	in := bytes.Repeat([]byte{0x41}, 16384)
	codes := Encode(nil, in)
	if len(codes) >= len(in) {
		t.Fatalf("highly repetitive input did not compress: %d codes for %d bytes", len(codes), len(in))
	}
	for _, c := range codes {
		if c >= MaxCode {
			t.Fatalf("code %d exceeds MaxCode", c)
		}
	}
}

func TestDecodeRejectsNonLiteralFirstCode(t *testing.T) {
	if _, err := Decode(nil, []Code{500}); err != ErrCorrupt {
		t.Fatalf("Decode first-code=500 error = %v, want ErrCorrupt", err)
	}
}

func TestDecodeRejectsOutOfRangeCode(t *testing.T) {
	// 'a','b' are literals; the third code must be <= dictionary size (257).
	if _, err := Decode(nil, []Code{'a', 'b', 1000}); err != ErrCorrupt {
		t.Fatalf("Decode out-of-range code error = %v, want ErrCorrupt", err)
	}
}

func TestDecodeKwKwK(t *testing.T) {
	// "aaaa": encoder emits code('a'), then code(256) referencing "aa"
	// which is not yet in the dictionary at the time it is read back —
	// the classic KwKwK case.
	in := []byte("aaaa")
	codes := Encode(nil, in)
	out, err := Decode(nil, codes)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Fatalf("Decode(%v) = %q, want %q", codes, out, in)
	}
}
