package blockproto

// BlockHeaderBytes is the canonical on-the-wire size of a block header:
// version(4) + prev_hash(32) + merkle_root(32) + timestamp(4) + bits(4) + nonce(4).
const BlockHeaderBytes = 80

// BlockHeader is the fixed-size portion of a block, identical in shape to
// every Bitcoin-derived chain's header.
type BlockHeader struct {
	Version       uint32
	PrevBlockHash [32]byte
	MerkleRoot    [32]byte
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

// parseBlockHeader reads the 80-byte header in field order from cur.
func parseBlockHeader(cur *cursor) (BlockHeader, error) {
	version, err := cur.readU32LE()
	if err != nil {
		return BlockHeader{}, err
	}
	prev, err := cur.readHash()
	if err != nil {
		return BlockHeader{}, err
	}
	merkle, err := cur.readHash()
	if err != nil {
		return BlockHeader{}, err
	}
	timestamp, err := cur.readU32LE()
	if err != nil {
		return BlockHeader{}, err
	}
	bits, err := cur.readU32LE()
	if err != nil {
		return BlockHeader{}, err
	}
	nonce, err := cur.readU32LE()
	if err != nil {
		return BlockHeader{}, err
	}
	return BlockHeader{
		Version:       version,
		PrevBlockHash: prev,
		MerkleRoot:    merkle,
		Timestamp:     timestamp,
		Bits:          bits,
		Nonce:         nonce,
	}, nil
}

// Bytes serializes the header back to its canonical 80-byte wire form.
func (h BlockHeader) Bytes() []byte {
	out := make([]byte, 0, BlockHeaderBytes)
	out = AppendU32LE(out, h.Version)
	out = append(out, h.PrevBlockHash[:]...)
	out = append(out, h.MerkleRoot[:]...)
	out = AppendU32LE(out, h.Timestamp)
	out = AppendU32LE(out, h.Bits)
	out = AppendU32LE(out, h.Nonce)
	return out
}

// Hash returns the header's double-SHA-256 hash, in internal (not
// display/reversed) byte order.
func (h BlockHeader) Hash() [32]byte {
	return doubleSHA256(h.Bytes())
}
