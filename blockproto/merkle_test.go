package blockproto

import "testing"

func mkHash(b byte) [32]byte {
	var h [32]byte
	h[0] = b
	return h
}

func TestComputeMerkleRootSingle(t *testing.T) {
	h := mkHash(1)
	got := ComputeMerkleRoot([][32]byte{h})
	if got != h {
		t.Fatalf("single-element root should equal the element itself")
	}
}

func TestComputeMerkleRootOddDuplication(t *testing.T) {
	a, b, c := mkHash(1), mkHash(2), mkHash(3)

	// An odd level duplicates its last hash before pairing, so three
	// leaves must produce the same root as four leaves with the third
	// repeated.
	odd := ComputeMerkleRoot([][32]byte{a, b, c})
	padded := ComputeMerkleRoot([][32]byte{a, b, c, c})
	if odd != padded {
		t.Fatalf("odd-level duplication mismatch: %x != %x", odd, padded)
	}
}

func TestComputeMerkleRootEmpty(t *testing.T) {
	if got := ComputeMerkleRoot(nil); got != ([32]byte{}) {
		t.Fatalf("empty input should yield the zero hash, got %x", got)
	}
}

func TestComputeMerkleRootDeterministic(t *testing.T) {
	ids := [][32]byte{mkHash(1), mkHash(2), mkHash(3), mkHash(4), mkHash(5)}
	first := ComputeMerkleRoot(ids)
	second := ComputeMerkleRoot(ids)
	if first != second {
		t.Fatalf("merkle root must be deterministic for the same input")
	}
}
