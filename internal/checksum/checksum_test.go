package checksum

import "testing"

func TestKnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"123456789", 0xCBF43926},
	}
	for _, c := range cases {
		if got := Checksum([]byte(c.in)); got != c.want {
			t.Errorf("Checksum(%q) = %#x, want %#x", c.in, got, c.want)
		}
	}
}

func TestDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	if a, b := Checksum(data), Checksum(data); a != b {
		t.Fatalf("Checksum not deterministic: %#x != %#x", a, b)
	}
}
