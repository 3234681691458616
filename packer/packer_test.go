package packer

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dsnet/arc/internal/testutil"
	"github.com/dsnet/arc/lzw"
)

func TestRoundTrip(t *testing.T) {
	cases := [][]lzw.Code{
		nil,
		{0},
		{1, 2, 3},
		{4095, 0, 4095},
		randomCodes(testutil.NewRand(2), 257),
	}
	for _, codes := range cases {
		n := len(codes)
		packed, err := Pack(nil, codes)
		if err != nil {
			t.Fatalf("Pack(%v) error: %v", codes, err)
		}
		if want := (n + 1) / 2 * 3; len(packed) != want {
			t.Fatalf("len(packed) = %d, want %d", len(packed), want)
		}

		got := Unpack(nil, n, packed)
		if !cmp.Equal(got, codes) {
			t.Fatalf("Unpack(Pack(%v)) = %v", codes, got)
		}
	}
}

func TestPackRejectsOversizedCode(t *testing.T) {
	if _, err := Pack(nil, []lzw.Code{4096}); err != ErrCodeRange {
		t.Fatalf("Pack([4096]) error = %v, want ErrCodeRange", err)
	}
}

func TestPackBitLayout(t *testing.T) {
	// A = 0xABC, B = 0x123.
	packed, err := Pack(nil, []lzw.Code{0xABC, 0x123})
	if err != nil {
		t.Fatal(err)
	}
	if want := testutil.MustDecodeHex("bca123"); !reflect.DeepEqual(packed, want) {
		t.Fatalf("packed = %#v, want %#v", packed, want)
	}
}

func TestUnpackDiscardsSentinel(t *testing.T) {
	packed, err := Pack(nil, []lzw.Code{42})
	if err != nil {
		t.Fatal(err)
	}
	if len(packed) != 3 {
		t.Fatalf("len(packed) = %d, want 3", len(packed))
	}
	got := Unpack(nil, 1, packed)
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("Unpack = %v, want [42]", got)
	}
}

func randomCodes(r *testutil.Rand, n int) []lzw.Code {
	b := r.Bytes(n * 2)
	codes := make([]lzw.Code, n)
	for i := range codes {
		codes[i] = (lzw.Code(b[2*i])<<8 | lzw.Code(b[2*i+1])) & 0x0FFF
	}
	return codes
}
