// Package coin holds the per-chain parameter record and a small table of
// concrete chains. The table is data; only the record shape and the
// functions that consume it are logic.
package coin

// Params identifies one blockchain dialect. It is constructed once at
// startup and shared read-only by every component that needs it.
type Params struct {
	Name string

	// Magic is the 4-byte value block files use to tag block boundaries
	// on disk. The reader never re-validates it, but it is still part of
	// the chain's identity.
	Magic uint32

	// AddressVersion is the base58check version prefix byte for P2PKH
	// addresses on this chain. 0x00 (Bitcoin mainnet) and
	// 0x6f (Bitcoin testnet) select the btcutil/chaincfg dialect; any
	// other value selects the custom legacy-walker dialect.
	AddressVersion byte
	// ScriptHashVersion is the base58check version prefix byte for P2SH
	// addresses. Only consulted by the custom dialect.
	ScriptHashVersion byte

	// GenesisHash is the chain's block-0 hash, in the same internal byte
	// order blockproto.BlockHeader.Hash returns.
	GenesisHash [32]byte

	// AuxPowActivationVersion is the header version at and above which
	// this chain's blocks carry an AuxPow extension. Zero means the
	// chain never uses AuxPow.
	AuxPowActivationVersion uint32

	// DefaultFolder is the chain's block-file directory, relative to the
	// user's home directory, used when --blockchain-dir is not given.
	DefaultFolder string
}

// IsBitcoinDialect reports whether scripts on this chain should be
// evaluated via the btcutil/chaincfg address path rather than the custom
// legacy walker.
func (p Params) IsBitcoinDialect() bool {
	return p.AddressVersion == 0x00 || p.AddressVersion == 0x6f
}
