package blkfile

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/chainwalk/blockwalker/blockproto"
)

// buildMinimalBlockBytes returns a minimal well-formed block: an 80-byte
// header plus a single coinbase transaction with no inputs' worth of
// scripts, sufficient to exercise ReadBlock without needing real chain
// data.
func buildMinimalBlockBytes() []byte {
	header := make([]byte, blockproto.BlockHeaderBytes)
	var out []byte
	out = append(out, header...)
	out = append(out, 0x01) // tx count = 1

	// one transaction: version, 1 input (coinbase), 1 output, locktime
	var tx []byte
	tx = append(tx, 0x01, 0x00, 0x00, 0x00) // version
	tx = append(tx, 0x01)                   // input count
	tx = append(tx, make([]byte, 32)...)    // prev txid (zero)
	tx = append(tx, 0xff, 0xff, 0xff, 0xff) // prev index
	tx = append(tx, 0x00)                   // script len 0
	tx = append(tx, 0x00, 0x00, 0x00, 0x00) // sequence
	tx = append(tx, 0x01)                   // output count
	tx = append(tx, make([]byte, 8)...)     // value 0
	tx = append(tx, 0x00)                   // script len 0
	tx = append(tx, 0x00, 0x00, 0x00, 0x00) // locktime
	out = append(out, tx...)
	return out
}

func writeBlockFile(t *testing.T, path string, magic uint32, blocks [][]byte, xorKey []byte) []int64 {
	t.Helper()
	offsets := make([]int64, 0, len(blocks))
	var buf []byte
	for _, b := range blocks {
		var rec []byte
		magicBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(magicBytes, magic)
		rec = append(rec, magicBytes...)
		sizeBytes := make([]byte, 4)
		binary.LittleEndian.PutUint32(sizeBytes, uint32(len(b)))
		rec = append(rec, sizeBytes...)
		rec = append(rec, b...)
		offsets = append(offsets, int64(len(buf)+8))
		buf = append(buf, rec...)
	}
	if len(xorKey) > 0 {
		for i := range buf {
			buf[i] ^= xorKey[i%len(xorKey)]
		}
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write block file: %v", err)
	}
	return offsets
}

func TestReadBlockPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blk00000.dat")
	blockBytes := buildMinimalBlockBytes()
	offsets := writeBlockFile(t, path, 0xd9b4bef9, [][]byte{blockBytes}, nil)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	bf := NewBlockFile(path, info.Size(), nil)
	block, err := bf.ReadBlock(offsets[0], blockproto.ParseOptions{})
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if len(block.Txs) != 1 {
		t.Fatalf("tx count = %d, want 1", len(block.Txs))
	}
	if !bf.IsOpen() {
		t.Fatalf("expected file to be open after read")
	}
	if err := bf.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if bf.IsOpen() {
		t.Fatalf("expected file to be closed")
	}
}

func TestReadBlockWithXORKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blk00000.dat")
	key := []byte{0x42, 0x17, 0x9a}
	blockBytes := buildMinimalBlockBytes()
	offsets := writeBlockFile(t, path, 0xd9b4bef9, [][]byte{blockBytes}, key)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	bf := NewBlockFile(path, info.Size(), key)
	block, err := bf.ReadBlock(offsets[0], blockproto.ParseOptions{})
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if len(block.Txs) != 1 {
		t.Fatalf("tx count = %d, want 1", len(block.Txs))
	}
}

func TestReadBlockMultipleRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blk00000.dat")
	b1 := buildMinimalBlockBytes()
	b2 := buildMinimalBlockBytes()
	offsets := writeBlockFile(t, path, 0xd9b4bef9, [][]byte{b1, b2}, nil)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	bf := NewBlockFile(path, info.Size(), nil)
	for i, off := range offsets {
		if _, err := bf.ReadBlock(off, blockproto.ParseOptions{}); err != nil {
			t.Fatalf("ReadBlock[%d]: %v", i, err)
		}
	}
}
