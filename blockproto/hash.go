package blockproto

import "encoding/hex"

// DisplayHash returns h hex-encoded in reversed byte order, matching the
// convention block explorers and RPC output use for block and transaction
// hashes (the wire and storage order is exactly backwards from it).
func DisplayHash(h [32]byte) string {
	var rev [32]byte
	for i := range h {
		rev[i] = h[31-i]
	}
	return hex.EncodeToString(rev[:])
}
