// Package chainindex decodes the node's block-index key-value store into
// an ordered height→location map, filtering to blocks that are both part
// of the validated main chain and present on local disk.
package chainindex

// Status bits carried in a block-index record's status field.
// Only VALID_CHAIN and HAVE_DATA are consulted; the remainder of the
// node's status bit space (validity levels below VALID_CHAIN, "failed",
// "has undo data", etc.) is irrelevant to a read-only height walk.
const (
	StatusValidChain uint64 = 4
	StatusHaveData   uint64 = 8
)

// Record is one retained block-index entry.
type Record struct {
	BlockHash  [32]byte
	Version    uint32
	Height     uint64
	Status     uint64
	TxCount    uint64
	FileIndex  uint32
	DataOffset int64
}

// Retained reports whether a record with this status should be kept: both
// VALID_CHAIN and HAVE_DATA must be set.
func Retained(status uint64) bool {
	return status&StatusValidChain != 0 && status&StatusHaveData != 0
}
