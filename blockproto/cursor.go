package blockproto

import "encoding/binary"

// cursor is a forward-only reader over an in-memory byte slice. A block's
// bytes are read in full from the block file before decoding begins (see
// blkfile.BlockFile.ReadBlock), so the decoder never blocks on I/O mid-parse;
// cursor only tracks the read position within that slice.
type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, decodeErr(ErrUnexpectedEOF, "truncated read")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readHash() ([32]byte, error) {
	var h [32]byte
	b, err := c.readExact(32)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

func (c *cursor) readU8() (uint8, error) {
	b, err := c.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) readU16LE() (uint16, error) {
	b, err := c.readExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// readCompactSize reads a Bitcoin CompactSize varint, remembering the tag
// width it was encoded with so a later re-encode can reproduce the exact
// original bytes even for a non-minimal encoding (see CompactSize.Encode).
func (c *cursor) readCompactSize() (CompactSize, error) {
	tag, err := c.readU8()
	if err != nil {
		return CompactSize{}, err
	}
	switch {
	case tag <= 0xfc:
		return CompactSize{Value: uint64(tag), tagWidth: 1}, nil
	case tag == 0xfd:
		v, err := c.readU16LE()
		if err != nil {
			return CompactSize{}, err
		}
		return CompactSize{Value: uint64(v), tagWidth: 3}, nil
	case tag == 0xfe:
		v, err := c.readU32LE()
		if err != nil {
			return CompactSize{}, err
		}
		return CompactSize{Value: uint64(v), tagWidth: 5}, nil
	default: // 0xff
		v, err := c.readU64LE()
		if err != nil {
			return CompactSize{}, err
		}
		return CompactSize{Value: v, tagWidth: 9}, nil
	}
}

// AppendU16LE appends v as a 2-byte little-endian value to dst.
func AppendU16LE(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU32LE appends v as a 4-byte little-endian value to dst.
func AppendU32LE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// AppendU64LE appends v as an 8-byte little-endian value to dst.
func AppendU64LE(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}
