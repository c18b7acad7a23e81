package blockproto

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseOptions carries the per-chain knobs ParseBlock needs that cannot be
// inferred from the block bytes themselves.
type ParseOptions struct {
	// AuxPowActivationVersion is the block version at and above which this
	// chain's headers carry an AuxPow extension. Zero means the chain never
	// uses AuxPow.
	AuxPowActivationVersion uint32
}

// Block is one fully parsed block: its header, an optional merge-mining
// proof extension, and its transactions in on-disk order.
type Block struct {
	Header BlockHeader
	AuxPow *AuxPow
	Txs    []*Tx
}

// HasAuxPow reports whether this block carried an AuxPow extension.
func (b *Block) HasAuxPow() bool {
	return b.AuxPow != nil
}

// ParseBlock decodes one block from data, which must contain exactly the
// block's bytes (the 4-byte magic and size prefix have already been
// stripped by the caller): header, optional AuxPow extension, transaction
// count, then that many transactions. Transaction boundaries are
// data-dependent so the decode loop itself is single-threaded; txid
// hashing afterward fans out across transactions (see BlockHashes).
func ParseBlock(data []byte, opts ParseOptions) (*Block, error) {
	cur := newCursor(data)

	header, err := parseBlockHeader(cur)
	if err != nil {
		return nil, err
	}

	var auxPow *AuxPow
	if opts.AuxPowActivationVersion != 0 && header.Version >= opts.AuxPowActivationVersion {
		ap, err := parseAuxPow(cur)
		if err != nil {
			return nil, err
		}
		auxPow = &ap
	}

	txCount, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	n, err := toIntLen(txCount.Value, "tx_count")
	if err != nil {
		return nil, err
	}

	// Transactions are variable length, so their byte offsets can only be
	// discovered by parsing sequentially. Carve out each transaction's span
	// first, then hash+finalize the spans concurrently.
	txs := make([]*Tx, n)
	for i := 0; i < n; i++ {
		tx, err := parseTransaction(cur)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	if err := BlockHashes(txs); err != nil {
		return nil, err
	}

	return &Block{Header: header, AuxPow: auxPow, Txs: txs}, nil
}

// BlockHashes computes every transaction's txid concurrently using a
// bounded worker pool: txid hashing is the dominant per-block CPU cost and
// transactions are independent of one another, so there is no reason to
// serialize it the way span-carving must be.
func BlockHashes(txs []*Tx) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, tx := range txs {
		tx := tx
		g.Go(func() error {
			tx.Txid = doubleSHA256(tx.noWitnessBytes())
			return nil
		})
	}
	return g.Wait()
}
