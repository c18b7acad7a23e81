package script

import (
	"strings"
	"unicode/utf8"
)

// evaluateCustom classifies scr for coins outside the mainnet/testnet
// Bitcoin address-byte convention: disassemble into a stack of pushes and
// opcodes, then match the whole stack against the fixed templates below.
// A truncated push is tolerated on this path — altcoin chains carry enough
// junk outputs that a hard error per output would be noise — so it
// classifies as NotRecognised; any other walk failure keeps its error.
func evaluateCustom(scr []byte, params CustomParams) (Pattern, string, bool) {
	ops, err := disassemble(scr)
	if err != nil {
		we, _ := err.(*walkError)
		if we != nil && we.code == ErrUnexpectedEOF {
			return Pattern{Kind: KindNotRecognised}, "", false
		}
		code := ErrInvalidFormat
		if we != nil {
			code = we.code
		}
		return Pattern{Kind: KindError, Err: code}, "", false
	}

	pat := classify(ops)
	addr, ok := deriveCustomAddress(pat, ops, params)
	return pat, addr, ok
}

// classify matches a disassembled script against the fixed output
// templates. The template set is deliberately closed: bech32/taproot
// shapes only exist on the Bitcoin-style dialect, and the one multisig
// recognised is the 2-of-3 form.
func classify(ops []op) Pattern {
	if p, ok := matchP2PKH(ops); ok {
		return p
	}
	if p, ok := matchP2PK(ops); ok {
		return p
	}
	if p, ok := matchP2SH(ops); ok {
		return p
	}
	if p, ok := matchOpReturn(ops); ok {
		return p
	}
	if p, ok := matchMultisig(ops); ok {
		return p
	}
	return Pattern{Kind: KindNotRecognised}
}

// matchP2PKH matches OP_DUP OP_HASH160 <20-byte-hash> OP_EQUALVERIFY OP_CHECKSIG.
func matchP2PKH(ops []op) (Pattern, bool) {
	if len(ops) != 5 {
		return Pattern{}, false
	}
	if ops[0].IsPush || ops[0].Opcode != opDup {
		return Pattern{}, false
	}
	if ops[1].IsPush || ops[1].Opcode != opHash160 {
		return Pattern{}, false
	}
	if !ops[2].IsPush || len(ops[2].Data) != 20 {
		return Pattern{}, false
	}
	if ops[3].IsPush || ops[3].Opcode != opEqualVerify {
		return Pattern{}, false
	}
	if ops[4].IsPush || ops[4].Opcode != opCheckSig {
		return Pattern{}, false
	}
	return Pattern{Kind: KindP2PKH}, true
}

// matchP2PK matches <pubkey> OP_CHECKSIG.
func matchP2PK(ops []op) (Pattern, bool) {
	if len(ops) != 2 {
		return Pattern{}, false
	}
	if !ops[0].IsPush {
		return Pattern{}, false
	}
	if ops[1].IsPush || ops[1].Opcode != opCheckSig {
		return Pattern{}, false
	}
	return Pattern{Kind: KindP2PK}, true
}

// matchP2SH matches OP_HASH160 <20-byte-hash> OP_EQUAL.
func matchP2SH(ops []op) (Pattern, bool) {
	if len(ops) != 3 {
		return Pattern{}, false
	}
	if ops[0].IsPush || ops[0].Opcode != opHash160 {
		return Pattern{}, false
	}
	if !ops[1].IsPush || len(ops[1].Data) != 20 {
		return Pattern{}, false
	}
	if ops[2].IsPush || ops[2].Opcode != opEqual {
		return Pattern{}, false
	}
	return Pattern{Kind: KindP2SH}, true
}

// matchMultisig matches the one multisig template recognised,
// OP_2 <pubkey> <pubkey> <pubkey> OP_3 OP_CHECKMULTISIG.
// TODO: generalize to m-of-n once a consumer actually needs it.
func matchMultisig(ops []op) (Pattern, bool) {
	if len(ops) != 6 {
		return Pattern{}, false
	}
	if ops[0].IsPush || ops[0].Opcode != op2 {
		return Pattern{}, false
	}
	for _, pk := range ops[1:4] {
		if !pk.IsPush {
			return Pattern{}, false
		}
	}
	if ops[4].IsPush || ops[4].Opcode != op3 {
		return Pattern{}, false
	}
	if ops[5].IsPush || ops[5].Opcode != opCheckMultisig {
		return Pattern{}, false
	}
	return Pattern{Kind: KindMultisig, MultisigM: 2, MultisigN: 3}, true
}

// matchOpReturn matches OP_RETURN <data>, decoding the payload as lossy
// UTF-8 (invalid sequences become U+FFFD).
func matchOpReturn(ops []op) (Pattern, bool) {
	if len(ops) != 2 {
		return Pattern{}, false
	}
	if ops[0].IsPush || ops[0].Opcode != opReturn {
		return Pattern{}, false
	}
	if !ops[1].IsPush {
		return Pattern{}, false
	}
	data := ops[1].Data
	return Pattern{
		Kind:          KindOpReturn,
		OpReturnData:  data,
		OpReturnText:  strings.ToValidUTF8(string(data), "�"),
		OpReturnValid: utf8.Valid(data),
	}, true
}
