package blockproto

import (
	"encoding/hex"
	"testing"
)

func TestCompactSizeEncodeDecode(t *testing.T) {
	cases := []struct {
		name string
		val  uint64
		hex  string
	}{
		{"zero", 0, "00"},
		{"one", 1, "01"},
		{"max_u8_minimal", 0xfc, "fc"},
		{"u16_boundary", 0xfd, "fdfd00"},
		{"u16_max", 0xffff, "fdffff"},
		{"u32_boundary", 0x10000, "fe00000100"},
		{"u32_max", 0xffffffff, "feffffffff"},
		{"u64_boundary", 0x100000000, "ff0000000001000000"},
		{"u64_max", 0xffffffffffffffff, "ffffffffffffffffff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			enc := EncodeCompactSize(tc.val)
			if hex.EncodeToString(enc) != tc.hex {
				t.Fatalf("encode mismatch: got %x want %s", enc, tc.hex)
			}
			dec, n, err := DecodeCompactSize(enc)
			if err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if n != len(enc) {
				t.Fatalf("decode consumed %d bytes, want %d", n, len(enc))
			}
			if dec.Value != tc.val {
				t.Fatalf("decode value mismatch: got %d want %d", dec.Value, tc.val)
			}
		})
	}
}

func TestCompactSizeNonMinimalRoundTrip(t *testing.T) {
	// 0xfd 0x01 0x00 encodes the value 1 using the 3-byte tag, even though
	// 1 fits in the 1-byte form. A decode-then-encode round trip must
	// reproduce the original bytes, not canonicalize to "01".
	nonMinimal, err := hex.DecodeString("fd0100")
	if err != nil {
		t.Fatal(err)
	}
	dec, n, err := DecodeCompactSize(nonMinimal)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if n != 3 {
		t.Fatalf("consumed %d bytes, want 3", n)
	}
	if dec.Value != 1 {
		t.Fatalf("value = %d, want 1", dec.Value)
	}
	if got := hex.EncodeToString(dec.Encode()); got != "fd0100" {
		t.Fatalf("re-encode = %s, want fd0100", got)
	}
}

func TestCompactSizeTruncated(t *testing.T) {
	_, _, err := DecodeCompactSize([]byte{0xfd, 0x01})
	if err == nil {
		t.Fatal("expected error on truncated compact size")
	}
}
