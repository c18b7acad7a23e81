package script

import "github.com/btcsuite/btcd/chaincfg"

// Dialect selects which classification and address-derivation convention
// Evaluate uses.
type Dialect int

const (
	// DialectBitcoin classifies with fixed script predicates and encodes
	// addresses via btcutil/chaincfg: mainnet and testnet, and any coin
	// that kept Bitcoin's address-version bytes.
	DialectBitcoin Dialect = iota
	// DialectCustom disassembles the script and matches it against a
	// closed template set, deriving addresses from a coin-specific
	// version byte via manual base58check.
	DialectCustom
)

// Params configures Evaluate for one coin's dialect.
type Params struct {
	Dialect Dialect

	// ChainParams is required when Dialect is DialectBitcoin.
	ChainParams *chaincfg.Params
	// Custom is required when Dialect is DialectCustom.
	Custom CustomParams
}

// Evaluate classifies scr under the dialect params selects and, where the
// pattern carries a derivable address, returns it. Classification failure
// is a per-output outcome carried in the Pattern, never an error return.
func Evaluate(scr []byte, params Params) (Pattern, string, bool) {
	switch params.Dialect {
	case DialectBitcoin:
		return evaluateBitcoin(scr, params.ChainParams)
	default:
		return evaluateCustom(scr, params.Custom)
	}
}
