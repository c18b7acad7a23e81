package blockproto

import (
	"crypto/sha256"
	"fmt"
	"math"
)

// doubleSHA256 computes SHA256(SHA256(b)), the hash used throughout the
// Bitcoin wire format for block and transaction identifiers.
func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// toIntLen converts a CompactSize-derived count/length to an int, rejecting
// values above math.MaxInt32. It does not compare v with the bytes left in
// the input; a length that passes here but exceeds them fails later, at
// the read.
func toIntLen(v uint64, field string) (int, error) {
	if v > math.MaxInt32 {
		return 0, &DecodeError{Code: ErrInvalidFormat, Msg: fmt.Sprintf("%s too large: %d", field, v)}
	}
	return int(v), nil
}
