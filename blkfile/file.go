// Package blkfile provides access to the node's on-disk block files: the
// blkNNNNN.dat family that holds the raw, node-written blockchain data.
package blkfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/chainwalk/blockwalker/blockproto"
)

// BlockFile owns the path, size, and optional XOR key of one on-disk block
// file. A buffered reader is opened lazily on first use and dropped on
// Close; while closed, BlockFile holds no file descriptor.
type BlockFile struct {
	path   string
	size   int64
	xorKey []byte

	f      *os.File
	reader *bufio.Reader
	// readerPos tracks the absolute file offset the buffered reader is
	// currently positioned at, so ReadBlock can tell whether a Seek is
	// necessary instead of re-seeking on every call.
	readerPos int64
}

// NewBlockFile wraps path (with on-disk size size) for later reads. xorKey
// may be nil, meaning the file's bytes are stored unmasked.
func NewBlockFile(path string, size int64, xorKey []byte) *BlockFile {
	return &BlockFile{path: path, size: size, xorKey: xorKey}
}

// Path returns the block file's path.
func (bf *BlockFile) Path() string { return bf.path }

// Size returns the on-disk size recorded at discovery time.
func (bf *BlockFile) Size() int64 { return bf.size }

// IsOpen reports whether a file descriptor is currently held open.
func (bf *BlockFile) IsOpen() bool { return bf.f != nil }

// Open creates the buffered reader if it doesn't already exist. It is safe
// to call when already open.
func (bf *BlockFile) Open() error {
	if bf.f != nil {
		return nil
	}
	f, err := os.Open(bf.path)
	if err != nil {
		return fmt.Errorf("open block file %s: %w", bf.path, err)
	}
	bf.f = f
	bf.reader = bufio.NewReaderSize(f, 1<<20)
	bf.readerPos = 0
	return nil
}

// Close drops the buffered reader and the underlying file descriptor. It is
// safe to call when already closed.
func (bf *BlockFile) Close() error {
	if bf.f == nil {
		return nil
	}
	err := bf.f.Close()
	bf.f = nil
	bf.reader = nil
	bf.readerPos = 0
	if err != nil {
		return fmt.Errorf("close block file %s: %w", bf.path, err)
	}
	return nil
}

// readAt reads exactly n bytes starting at absolute offset off, demasking
// with the XOR key if one is configured. Positional semantics (the XOR
// keystream is keyed on absolute file offset, not reader-relative offset)
// are preserved across seeks.
func (bf *BlockFile) readAt(off int64, n int) ([]byte, error) {
	if err := bf.Open(); err != nil {
		return nil, err
	}
	if off != bf.readerPos {
		if _, err := bf.f.Seek(off, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek block file %s: %w", bf.path, err)
		}
		bf.reader.Reset(bf.f)
		bf.readerPos = off
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(bf.reader, buf); err != nil {
		return nil, fmt.Errorf("read block file %s at %d: %w", bf.path, off, err)
	}
	bf.readerPos += int64(n)
	bf.demask(buf, off)
	return buf, nil
}

// demask XORs buf in place, where buf[i] held the byte at absolute file
// offset absOff+i.
func (bf *BlockFile) demask(buf []byte, absOff int64) {
	if len(bf.xorKey) == 0 {
		return
	}
	klen := int64(len(bf.xorKey))
	for i := range buf {
		buf[i] ^= bf.xorKey[(absOff+int64(i))%klen]
	}
}

// ReadBlock seeks to offset-4, reads the 4-byte little-endian block-size
// field the node wrote there, then reads and parses exactly that many
// bytes as a block. The magic 4 bytes
// further back (offset-8) is not re-read: the index already committed to
// this block by pointing at it.
func (bf *BlockFile) ReadBlock(offset int64, opts blockproto.ParseOptions) (*blockproto.Block, error) {
	if offset < 4 {
		return nil, fmt.Errorf("read block from %s: offset %d too small for size prefix", bf.path, offset)
	}
	sizeField, err := bf.readAt(offset-4, 4)
	if err != nil {
		return nil, err
	}
	size := binary.LittleEndian.Uint32(sizeField)
	data, err := bf.readAt(offset, int(size))
	if err != nil {
		return nil, err
	}
	block, err := blockproto.ParseBlock(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse block from %s at %d: %w", bf.path, offset, err)
	}
	return block, nil
}
