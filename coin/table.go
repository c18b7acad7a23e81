package coin

import "encoding/hex"

// mustHashFromDisplayHex decodes a hash given in display (reversed) hex
// order — the form block explorers and this package's literals use — into
// the internal byte order blockproto.BlockHeader.Hash and
// blockproto.DisplayHash expect.
func mustHashFromDisplayHex(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("coin: invalid genesis hash literal: " + s)
	}
	var out [32]byte
	for i := range b {
		out[i] = b[len(b)-1-i]
	}
	return out
}

// Table is the built-in set of chains this reader ships knowing how to
// walk. Real deployments typically load a broader table from
// configuration; this one exists so the reader is runnable out of the
// box.
var Table = map[string]Params{
	"bitcoin": {
		Name:           "bitcoin",
		Magic:          0xd9b4bef9,
		AddressVersion: 0x00,
		GenesisHash:    mustHashFromDisplayHex("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"),
		DefaultFolder:  ".bitcoin/blocks",
	},
	"bitcoin-testnet": {
		Name:           "bitcoin-testnet",
		Magic:          0x0709110b,
		AddressVersion: 0x6f,
		GenesisHash:    mustHashFromDisplayHex("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"),
		DefaultFolder:  ".bitcoin/testnet3/blocks",
	},
	"namecoin": {
		Name:                    "namecoin",
		Magic:                   0xf9beb4fe,
		AddressVersion:          0x34,
		ScriptHashVersion:       0x0d,
		GenesisHash:             mustHashFromDisplayHex("000000000062b72c5e2ceb45fbc8587e807ad6a27ac6564ebf485b7f74b64e7c"),
		AuxPowActivationVersion: 0x00620002,
		DefaultFolder:           ".namecoin/blocks",
	},
}

// Lookup returns the named chain's parameters.
func Lookup(name string) (Params, bool) {
	p, ok := Table[name]
	return p, ok
}
