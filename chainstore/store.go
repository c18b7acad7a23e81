// Package chainstore binds a chainindex.Index to a blkfile.Set, turning
// a height into a fully parsed block.
package chainstore

import (
	"fmt"

	"github.com/chainwalk/blockwalker/blkfile"
	"github.com/chainwalk/blockwalker/blockproto"
	"github.com/chainwalk/blockwalker/chainindex"
	"github.com/chainwalk/blockwalker/script"
)

// ValidationError reports a failed optional integrity check: a
// merkle-root mismatch, a genesis-hash mismatch, or a prev-hash chain
// discontinuity. It is only ever raised when verification is enabled.
type ValidationError struct {
	Height uint64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at height %d: %s", e.Height, e.Reason)
}

// Store binds a chainindex.Index and a blkfile.Set together.
type Store struct {
	index        *chainindex.Index
	files        *blkfile.Set
	opts         blockproto.ParseOptions
	scriptParams script.Params
	verify       bool
	genesis      [32]byte
}

// Config configures a Store.
type Config struct {
	Verify                  bool
	GenesisHash             [32]byte
	AuxPowActivationVersion uint32
	ScriptParams            script.Params
}

// New binds index and files for reading, with the given verification
// policy.
func New(index *chainindex.Index, files *blkfile.Set, cfg Config) *Store {
	return &Store{
		index:        index,
		files:        files,
		opts:         blockproto.ParseOptions{AuxPowActivationVersion: cfg.AuxPowActivationVersion},
		scriptParams: cfg.ScriptParams,
		verify:       cfg.Verify,
		genesis:      cfg.GenesisHash,
	}
}

// MaxHeight returns the highest height the bound index retains.
func (s *Store) MaxHeight() uint64 { return s.index.MaxHeight() }

// MinHeight returns the lowest height the bound index retains.
func (s *Store) MinHeight() uint64 { return s.index.MinHeight() }

// GetBlock looks up the index record for height, dispatches to the
// owning block file, parses, optionally verifies, and closes the file if
// this was its last referenced height.
//
// A missing height (absent from the index) is reported via the bool
// return, not an error: it means no block was retained at that height
// within the loaded range.
func (s *Store) GetBlock(height uint64) (*blockproto.Block, bool, error) {
	rec, ok := s.index.Get(height)
	if !ok {
		return nil, false, nil
	}

	bf, ok := s.files.Get(rec.FileIndex)
	if !ok {
		return nil, false, fmt.Errorf("chain storage: height %d references file index %d, which is not in the block-file set", height, rec.FileIndex)
	}

	block, err := bf.ReadBlock(rec.DataOffset, s.opts)
	if err != nil {
		return nil, false, fmt.Errorf("chain storage: read block at height %d: %w", height, err)
	}

	if err := blockproto.EvaluateBlockOutputs(block.Txs, s.scriptParams); err != nil {
		return nil, false, fmt.Errorf("chain storage: evaluate output scripts at height %d: %w", height, err)
	}

	if maxForFile, ok := s.index.MaxHeightForFile(rec.FileIndex); ok && height == maxForFile {
		if err := bf.Close(); err != nil {
			return nil, false, fmt.Errorf("chain storage: close file index %d after height %d: %w", rec.FileIndex, height, err)
		}
	}

	if s.verify {
		if err := s.verifyBlock(block, height); err != nil {
			return nil, false, err
		}
	}

	return block, true, nil
}

// verifyBlock recomputes the merkle root, pins the genesis hash at
// height 0, and checks prev-hash continuity against the index record one
// height below.
func (s *Store) verifyBlock(block *blockproto.Block, height uint64) error {
	txids := make([][32]byte, len(block.Txs))
	for i, tx := range block.Txs {
		txids[i] = tx.Txid
	}
	if got := blockproto.ComputeMerkleRoot(txids); got != block.Header.MerkleRoot {
		return &ValidationError{Height: height, Reason: "merkle root mismatch"}
	}

	if height == 0 {
		if block.Header.Hash() != s.genesis {
			return &ValidationError{Height: height, Reason: "genesis hash mismatch"}
		}
		return nil
	}

	prevRec, ok := s.index.Get(height - 1)
	if !ok {
		return &ValidationError{Height: height, Reason: "no index record for previous height to check continuity against"}
	}
	if block.Header.PrevBlockHash != prevRec.BlockHash {
		return &ValidationError{Height: height, Reason: "prev-hash chain discontinuity"}
	}
	return nil
}
