package blockproto

// MerkleBranch is a merkle authentication path: a sequence of sibling
// hashes paired with a side-mask bit vector indicating, for each sibling,
// whether it belongs on the left or right of the node being authenticated.
type MerkleBranch struct {
	Hashes   [][32]byte
	SideMask uint32
}

func parseMerkleBranch(cur *cursor) (MerkleBranch, error) {
	count, err := cur.readCompactSize()
	if err != nil {
		return MerkleBranch{}, err
	}
	n, err := toIntLen(count.Value, "merkle_branch_count")
	if err != nil {
		return MerkleBranch{}, err
	}
	hashes := make([][32]byte, 0, n)
	for i := 0; i < n; i++ {
		h, err := cur.readHash()
		if err != nil {
			return MerkleBranch{}, err
		}
		hashes = append(hashes, h)
	}
	sideMask, err := cur.readU32LE()
	if err != nil {
		return MerkleBranch{}, err
	}
	return MerkleBranch{Hashes: hashes, SideMask: sideMask}, nil
}

// AuxPow is the merge-mining proof-of-work extension some chains graft onto
// their block header: a coinbase transaction from the parent chain, the
// two merkle branches tying that coinbase to the parent block's merkle
// root and to the auxiliary chain's own merkle tree of merge-mined chains,
// and the raw parent block header. A block's AuxPow is parsed for cursor
// advancement only: its proof-of-work is never independently verified.
type AuxPow struct {
	CoinbaseTx      *Tx
	ParentBlockHash [32]byte
	CoinbaseBranch  MerkleBranch
	ChainBranch     MerkleBranch
	ParentHeader    BlockHeader
}

// parseAuxPow reads an AuxPow extension in the field order the reference
// client writes it: coinbase tx, parent block hash, coinbase merkle
// branch, chain merkle branch, then the raw 80-byte parent header.
func parseAuxPow(cur *cursor) (AuxPow, error) {
	coinbaseTx, err := parseTransaction(cur)
	if err != nil {
		return AuxPow{}, err
	}
	parentHash, err := cur.readHash()
	if err != nil {
		return AuxPow{}, err
	}
	coinbaseBranch, err := parseMerkleBranch(cur)
	if err != nil {
		return AuxPow{}, err
	}
	chainBranch, err := parseMerkleBranch(cur)
	if err != nil {
		return AuxPow{}, err
	}
	parentHeader, err := parseBlockHeader(cur)
	if err != nil {
		return AuxPow{}, err
	}
	return AuxPow{
		CoinbaseTx:      coinbaseTx,
		ParentBlockHash: parentHash,
		CoinbaseBranch:  coinbaseBranch,
		ChainBranch:     chainBranch,
		ParentHeader:    parentHeader,
	}, nil
}
