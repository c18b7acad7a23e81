package blockproto

// CompactSize is Bitcoin's variable-length integer encoding for lengths and
// counts on the wire. Unlike a plain uint64, it remembers the tag width it
// was decoded with so that re-encoding a value read from a non-minimal
// (over-long) encoding reproduces the original bytes instead of silently
// canonicalizing them.
type CompactSize struct {
	Value uint64

	// tagWidth is the number of bytes the tag+payload occupied on the wire
	// (1, 3, 5, or 9). Zero means "not yet observed on the wire": Encode
	// falls back to the minimal width for that Value.
	tagWidth int
}

// NewCompactSize wraps v for encoding in its minimal form.
func NewCompactSize(v uint64) CompactSize {
	return CompactSize{Value: v}
}

// DecodeCompactSize decodes one CompactSize value from the front of buf.
// It returns the decoded value and the number of bytes consumed.
func DecodeCompactSize(buf []byte) (CompactSize, int, error) {
	cur := newCursor(buf)
	cs, err := cur.readCompactSize()
	if err != nil {
		return CompactSize{}, 0, err
	}
	return cs, cur.pos, nil
}

// Encode serializes the value using the symmetric shortest form, unless it
// was decoded from a non-minimal encoding, in which case the original tag
// width is reproduced.
func (c CompactSize) Encode() []byte {
	width := c.tagWidth
	if width == 0 {
		width = minimalWidth(c.Value)
	}
	switch width {
	case 1:
		return []byte{byte(c.Value)}
	case 3:
		return AppendU16LE([]byte{0xfd}, uint16(c.Value))
	case 5:
		return AppendU32LE([]byte{0xfe}, uint32(c.Value))
	default:
		return AppendU64LE([]byte{0xff}, c.Value)
	}
}

func minimalWidth(v uint64) int {
	switch {
	case v <= 0xfc:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffff_ffff:
		return 5
	default:
		return 9
	}
}

// EncodeCompactSize encodes n in its minimal CompactSize form.
func EncodeCompactSize(n uint64) []byte {
	return NewCompactSize(n).Encode()
}

// AppendCompactSize encodes n in minimal CompactSize form and appends it to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	return append(dst, EncodeCompactSize(n)...)
}
