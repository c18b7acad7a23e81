// Package script classifies transaction output scripts (locking scripts)
// into recognised spending patterns and, where possible, derives the
// human-readable address associated with that pattern.
package script

// ScriptError describes why a script could not be walked or classified.
type ScriptError string

const (
	// ErrUnexpectedEOF means a push opcode announced more bytes than the
	// script holds.
	ErrUnexpectedEOF ScriptError = "UNEXPECTED_EOF"
	// ErrInvalidFormat means a position expected to hold pushed data held
	// an opcode instead.
	ErrInvalidFormat ScriptError = "INVALID_FORMAT"
)

// Kind enumerates the recognised output script shapes.
type Kind string

const (
	KindP2PK           Kind = "p2pk"
	KindP2PKH          Kind = "p2pkh"
	KindP2SH           Kind = "p2sh"
	KindP2WPKH         Kind = "p2wpkh"
	KindP2WSH          Kind = "p2wsh"
	KindP2TR           Kind = "p2tr"
	KindWitnessProgram Kind = "witness_program"
	KindMultisig       Kind = "multisig"
	KindOpReturn       Kind = "op_return"
	KindUnspendable    Kind = "unspendable"
	KindNotRecognised  Kind = "not_recognised"
	KindError          Kind = "error"
)

// Pattern is the tagged-union result of classifying one output script.
// Only the fields relevant to Kind are populated; the rest are zero.
type Pattern struct {
	Kind Kind

	// OpReturnData is the payload for KindOpReturn: on the Bitcoin dialect,
	// every byte after OP_RETURN and the opcode that follows it; on the
	// custom dialect, the data of the single push after OP_RETURN.
	OpReturnData []byte
	// OpReturnText is OpReturnData decoded as lossy UTF-8; OpReturnValid
	// reports whether the payload was valid UTF-8 to begin with.
	OpReturnText  string
	OpReturnValid bool

	// MultisigM and MultisigN describe an m-of-n multisig for KindMultisig.
	MultisigM int
	MultisigN int

	// WitnessVersion and WitnessProgram describe any segwit-shaped output,
	// populated for KindP2WPKH, KindP2WSH, KindP2TR and KindWitnessProgram.
	WitnessVersion int
	WitnessProgram []byte

	Err ScriptError
}
