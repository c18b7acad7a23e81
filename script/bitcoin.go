package script

import (
	"strings"
	"unicode/utf8"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// maxScriptSize is the consensus limit on a script's byte length; anything
// longer can never be spent.
const maxScriptSize = 10000

// evaluateBitcoin classifies scr with fixed byte predicates over the
// standard output shapes and derives addresses through btcutil rather than
// a hand-rolled encoder. The template walker (and its 2-of-3 multisig
// template) belongs to the custom dialect only; bare multisig outputs on
// mainnet/testnet fall through to NotRecognised here.
func evaluateBitcoin(scr []byte, chainParams *chaincfg.Params) (Pattern, string, bool) {
	switch {
	case isOpReturn(scr):
		data := opReturnPayload(scr)
		return Pattern{
			Kind:          KindOpReturn,
			OpReturnData:  data,
			OpReturnText:  strings.ToValidUTF8(string(data), "�"),
			OpReturnValid: utf8.Valid(data),
		}, "", false

	case isUnspendable(scr):
		return Pattern{Kind: KindUnspendable}, "", false

	case isP2PK(scr):
		pat := Pattern{Kind: KindP2PK}
		addr, err := btcutil.NewAddressPubKey(scr[1:len(scr)-1], chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true

	case isP2PKH(scr):
		pat := Pattern{Kind: KindP2PKH}
		addr, err := btcutil.NewAddressPubKeyHash(scr[3:23], chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true

	case isP2SH(scr):
		pat := Pattern{Kind: KindP2SH}
		addr, err := btcutil.NewAddressScriptHashFromHash(scr[2:22], chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true

	case isWitnessProgram(scr):
		return evaluateWitnessProgram(scr, chainParams)

	default:
		return Pattern{Kind: KindNotRecognised}, "", false
	}
}

// isOpReturn reports whether scr is a data-carrier output: the first
// opcode is OP_RETURN.
func isOpReturn(scr []byte) bool {
	return len(scr) > 0 && scr[0] == opReturn
}

// opReturnPayload extracts the embedded data from an OP_RETURN script,
// skipping the OP_RETURN byte and the push opcode that follows it.
func opReturnPayload(scr []byte) []byte {
	if len(scr) <= 2 {
		return nil
	}
	return scr[2:]
}

func isUnspendable(scr []byte) bool {
	return len(scr) > maxScriptSize
}

// isP2PK matches <33-or-65-byte pubkey push> OP_CHECKSIG.
func isP2PK(scr []byte) bool {
	switch len(scr) {
	case 35:
		return scr[0] == 33 && scr[34] == opCheckSig
	case 67:
		return scr[0] == 65 && scr[66] == opCheckSig
	default:
		return false
	}
}

// isP2PKH matches OP_DUP OP_HASH160 <20-byte push> OP_EQUALVERIFY OP_CHECKSIG.
func isP2PKH(scr []byte) bool {
	return len(scr) == 25 &&
		scr[0] == opDup && scr[1] == opHash160 && scr[2] == 20 &&
		scr[23] == opEqualVerify && scr[24] == opCheckSig
}

// isP2SH matches OP_HASH160 <20-byte push> OP_EQUAL.
func isP2SH(scr []byte) bool {
	return len(scr) == 23 &&
		scr[0] == opHash160 && scr[1] == 20 && scr[22] == opEqual
}

// isWitnessProgram matches the BIP141 shape: a version opcode (OP_0 or
// OP_1 through OP_16) followed by a single direct push of 2 to 40 bytes.
func isWitnessProgram(scr []byte) bool {
	if len(scr) < 4 || len(scr) > 42 {
		return false
	}
	if scr[0] != op0 && (scr[0] < op1 || scr[0] > op16) {
		return false
	}
	return int(scr[1]) == len(scr)-2
}

func evaluateWitnessProgram(scr []byte, chainParams *chaincfg.Params) (Pattern, string, bool) {
	version := 0
	if scr[0] != op0 {
		version = int(scr[0]-op1) + 1
	}
	program := scr[2:]

	switch {
	case version == 0 && len(program) == 20:
		pat := Pattern{Kind: KindP2WPKH, WitnessVersion: version, WitnessProgram: program}
		addr, err := btcutil.NewAddressWitnessPubKeyHash(program, chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true
	case version == 0 && len(program) == 32:
		pat := Pattern{Kind: KindP2WSH, WitnessVersion: version, WitnessProgram: program}
		addr, err := btcutil.NewAddressWitnessScriptHash(program, chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true
	case version == 1 && len(program) == 32:
		pat := Pattern{Kind: KindP2TR, WitnessVersion: version, WitnessProgram: program}
		addr, err := btcutil.NewAddressTaproot(program, chainParams)
		if err != nil {
			return pat, "", false
		}
		return pat, addr.EncodeAddress(), true
	default:
		return Pattern{Kind: KindWitnessProgram, WitnessVersion: version, WitnessProgram: program}, "", false
	}
}
