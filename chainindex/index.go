package chainindex

import (
	"fmt"
	"path/filepath"

	"github.com/chainwalk/blockwalker/blockproto"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// blockIndexKeyPrefix is the single ASCII-'b' byte that tags a
// block-index entry's key, as opposed to the store's other key families
// (file info, transaction index, reindex flags, etc.) which this reader
// ignores entirely.
const blockIndexKeyPrefix = 'b'

// Range bounds the heights ChainIndex retains after the full scan.
// End is inclusive; a nil End means "up to the highest height observed".
type Range struct {
	Start uint64
	End   *uint64
}

// IsTrivial reports whether r is the default (0, unbounded) range, in
// which case no records are dropped for being outside it.
func (r Range) IsTrivial() bool {
	return r.Start == 0 && r.End == nil
}

// Index is the ordered height→Record mapping built from the node's
// block-index database, plus the derived file-index→max-height map used
// to decide when a block file can be closed.
type Index struct {
	byHeight        map[uint64]Record
	maxHeightByFile map[uint32]uint64
	minHeight       uint64
	maxHeight       uint64
}

// Open decodes dataDir/index (a LevelDB store) into an Index, trimmed to
// r. Open is read-only: it never writes to the node's data directory,
// matching the leveldb.OpenFile read path used elsewhere in the pack for
// opening a running node's on-disk database without disturbing it.
func Open(dataDir string, r Range) (*Index, error) {
	dbPath := filepath.Join(dataDir, "index")
	db, err := leveldb.OpenFile(dbPath, &opt.Options{
		Compression: opt.NoCompression,
		ReadOnly:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("open block index %s: %w", dbPath, err)
	}
	defer db.Close()

	byHeight := make(map[uint64]Record)
	iter := db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		if len(key) != 33 || key[0] != blockIndexKeyPrefix {
			continue
		}
		rec, err := decodeRecord(key, iter.Value())
		if err != nil {
			return nil, err
		}
		if !Retained(rec.Status) {
			continue
		}
		byHeight[rec.Height] = rec
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate block index %s: %w", dbPath, err)
	}

	return newIndex(byHeight, r)
}

// decodeRecord parses one block-index value: a sequence of leveldb-varint
// fields (version, height, status, tx_count, file_index, data_offset),
// optionally followed by further fields this reader ignores. The block
// hash is the 32 bytes of key following the 'b' prefix, kept in
// the same internal byte order blockproto uses for header hashes (no
// reversal), so it compares directly against BlockHeader.PrevBlockHash.
func decodeRecord(key, value []byte) (Record, error) {
	var hash [32]byte
	copy(hash[:], key[1:33])

	fields, err := readLevelDBVarints(value, 6)
	if err != nil {
		return Record{}, fmt.Errorf("decode block index value for %x: %w", hash, err)
	}

	return Record{
		BlockHash:  hash,
		Version:    uint32(fields[0]),
		Height:     fields[1],
		Status:     fields[2],
		TxCount:    fields[3],
		FileIndex:  uint32(fields[4]),
		DataOffset: int64(fields[5]),
	}, nil
}

func readLevelDBVarints(buf []byte, count int) ([]uint64, error) {
	out := make([]uint64, 0, count)
	pos := 0
	for i := 0; i < count; i++ {
		v, n, err := blockproto.ReadLevelDBVarint(buf[pos:])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		pos += n
	}
	return out, nil
}

// newIndex applies range trimming and computes the derived maps over an
// already-decoded set of retained records.
func newIndex(byHeight map[uint64]Record, r Range) (*Index, error) {
	if len(byHeight) == 0 {
		return nil, fmt.Errorf("chain index: no retained block records")
	}

	var observedMax uint64
	for h := range byHeight {
		if h > observedMax {
			observedMax = h
		}
	}

	maxHeight := observedMax
	if r.End != nil && *r.End < maxHeight {
		maxHeight = *r.End
	}

	minHeight := r.Start
	if !r.IsTrivial() {
		// The -1 preserves the previous block available for prev-hash
		// verification at the start of the parse range.
		lowerBound := minHeight
		if lowerBound > 0 {
			lowerBound--
		}
		for h := range byHeight {
			if h < lowerBound || h > maxHeight {
				delete(byHeight, h)
			}
		}
		minHeight = lowerBound
	}

	maxHeightByFile := make(map[uint32]uint64)
	for _, rec := range byHeight {
		if cur, ok := maxHeightByFile[rec.FileIndex]; !ok || rec.Height > cur {
			maxHeightByFile[rec.FileIndex] = rec.Height
		}
	}

	return &Index{
		byHeight:        byHeight,
		maxHeightByFile: maxHeightByFile,
		minHeight:       minHeight,
		maxHeight:       maxHeight,
	}, nil
}

// Get returns the record at height, if any. A missing height is not an
// error: it means no block was on the main chain and on local disk at
// that height within the loaded range.
func (idx *Index) Get(height uint64) (Record, bool) {
	rec, ok := idx.byHeight[height]
	return rec, ok
}

// MaxHeightForFile returns the highest retained height stored in
// fileIndex, used to decide when that file's handle can be closed.
func (idx *Index) MaxHeightForFile(fileIndex uint32) (uint64, bool) {
	h, ok := idx.maxHeightByFile[fileIndex]
	return h, ok
}

// MinHeight returns the lowest retained height (the trimmed range's
// lower bound, inclusive of the preserved prev-hash predecessor).
func (idx *Index) MinHeight() uint64 { return idx.minHeight }

// MaxHeight returns the highest retained height.
func (idx *Index) MaxHeight() uint64 { return idx.maxHeight }

// Len returns the number of retained records.
func (idx *Index) Len() int { return len(idx.byHeight) }
