package script

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

// hash160 computes RIPEMD160(SHA256(b)), the digest Bitcoin-derived chains
// use for P2PKH and P2SH hashes.
func hash160(b []byte) []byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// base58CheckEncode encodes payload with a leading version byte and a
// trailing 4-byte double-SHA-256 checksum, the legacy address convention
// shared by every coin in the custom dialect regardless of which byte
// value they assign to which script kind.
func base58CheckEncode(version byte, payload []byte) string {
	buf := make([]byte, 0, 1+len(payload)+4)
	buf = append(buf, version)
	buf = append(buf, payload...)
	first := sha256.Sum256(buf)
	second := sha256.Sum256(first[:])
	buf = append(buf, second[:4]...)
	return base58.Encode(buf)
}

// CustomParams carries the per-coin address-version bytes the custom
// dialect needs; unlike the Bitcoin dialect it can't look these up from a
// shared chaincfg.Params table, since every alt-coin picks its own.
type CustomParams struct {
	P2PKHVersion byte
	P2SHVersion  byte
}

// deriveCustomAddress derives the address string for a classified
// pattern under the custom dialect's arbitrary version bytes. P2PK
// addresses are derived the same way a P2PKH spend of that key would be:
// hash the pubkey, then base58check with the P2PKH version.
func deriveCustomAddress(pat Pattern, ops []op, params CustomParams) (string, bool) {
	switch pat.Kind {
	case KindP2PKH:
		return base58CheckEncode(params.P2PKHVersion, ops[2].Data), true
	case KindP2SH:
		return base58CheckEncode(params.P2SHVersion, ops[1].Data), true
	case KindP2PK:
		return base58CheckEncode(params.P2PKHVersion, hash160(ops[0].Data)), true
	default:
		return "", false
	}
}
