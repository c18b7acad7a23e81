package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chainwalk/blockwalker/blockproto"
	"github.com/chainwalk/blockwalker/chainindex"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

func encodeLevelDBVarint(n uint64) []byte {
	var tmp [10]byte
	length := 0
	for {
		tmp[length] = byte(n & 0x7f)
		if length > 0 {
			tmp[length] |= 0x80
		}
		if n <= 0x7f {
			break
		}
		n = (n >> 7) - 1
		length++
	}
	out := make([]byte, 0, length+1)
	for i := length; i >= 0; i-- {
		out = append(out, tmp[i])
	}
	return out
}

func buildCoinbaseBlockBytes() []byte {
	header := make([]byte, blockproto.BlockHeaderBytes)
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
	out := append([]byte{}, header...)
	out = append(out, 0x01)
	out = append(out, tx...)
	return out
}

// writeFixtureDataDir sets up a minimal node data directory: a LevelDB
// "index" database with one retained block-0 record and a blk00000.dat
// holding the matching bytes.
func writeFixtureDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	blockBytes := buildCoinbaseBlockBytes()
	var fileBuf []byte
	fileBuf = append(fileBuf, 0xf9, 0xbe, 0xb4, 0xd9) // magic, unused
	sizeBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(sizeBytes, uint32(len(blockBytes)))
	fileBuf = append(fileBuf, sizeBytes...)
	offset := int64(len(fileBuf))
	fileBuf = append(fileBuf, blockBytes...)
	if err := os.WriteFile(filepath.Join(dir, "blk00000.dat"), fileBuf, 0o644); err != nil {
		t.Fatalf("write block file: %v", err)
	}

	dbPath := filepath.Join(dir, "index")
	db, err := leveldb.OpenFile(dbPath, &opt.Options{Compression: opt.NoCompression})
	if err != nil {
		t.Fatalf("open fixture leveldb: %v", err)
	}
	key := make([]byte, 33)
	key[0] = 'b'
	var val []byte
	val = append(val, encodeLevelDBVarint(1)...)
	val = append(val, encodeLevelDBVarint(0)...)
	val = append(val, encodeLevelDBVarint(chainindex.StatusValidChain|chainindex.StatusHaveData)...)
	val = append(val, encodeLevelDBVarint(1)...)
	val = append(val, encodeLevelDBVarint(0)...)
	val = append(val, encodeLevelDBVarint(uint64(offset))...)
	if err := db.Put(key, val, nil); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close fixture leveldb: %v", err)
	}
	return dir
}

func TestRunWalksFixtureChain(t *testing.T) {
	dir := writeFixtureDataDir(t)
	var out, errOut bytes.Buffer
	code := run([]string{"--coin", "bitcoin", "--blockchain-dir", dir, "--start", "0"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("run() = %d, stderr=%s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "1 blocks") {
		t.Fatalf("expected stats output to mention 1 block, got %q", out.String())
	}
}

func TestRunRejectsUnknownCoin(t *testing.T) {
	dir := writeFixtureDataDir(t)
	var out, errOut bytes.Buffer
	code := run([]string{"--coin", "not-a-real-coin", "--blockchain-dir", dir}, &out, &errOut)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
	if errOut.Len() == 0 {
		t.Fatalf("expected error output")
	}
}

func TestRunRejectsInvalidRange(t *testing.T) {
	dir := writeFixtureDataDir(t)
	var out, errOut bytes.Buffer
	code := run([]string{"--coin", "bitcoin", "--blockchain-dir", dir, "--start", "5", "--end", "5"}, &out, &errOut)
	if code != 1 {
		t.Fatalf("run() = %d, want 1", code)
	}
}
