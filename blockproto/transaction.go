package blockproto

import "github.com/chainwalk/blockwalker/script"

// TxOutPoint identifies the previous output an input spends.
type TxOutPoint struct {
	PrevTxid [32]byte
	PrevVout uint32
}

// IsCoinbasePrevout reports whether this outpoint is the coinbase sentinel:
// an all-zero previous txid and previous index 0xFFFFFFFF.
func (o TxOutPoint) IsCoinbasePrevout() bool {
	return o.PrevTxid == [32]byte{} && o.PrevVout == 0xFFFFFFFF
}

// OutpointKey returns the byte-concatenation convention (txid || index_le32)
// consumer callbacks use to key a (txid, index) pair in a hash map. The core
// itself never needs to hash this key; it only exposes the convention.
func OutpointKey(o TxOutPoint) []byte {
	out := make([]byte, 0, 36)
	out = append(out, o.PrevTxid[:]...)
	out = AppendU32LE(out, o.PrevVout)
	return out
}

// TxInput is one spend reference within a transaction.
type TxInput struct {
	PrevOutpoint    TxOutPoint
	SignatureScript []byte
	Sequence        uint32
}

// TxOutput is one value+locking-script pair produced by a transaction. Once
// evaluated (see Tx.EvaluateOutputs), Pattern and Address are populated.
type TxOutput struct {
	Value        uint64
	PubkeyScript []byte

	Pattern    script.Pattern
	Address    string
	HasAddress bool
}

// Tx is a fully parsed transaction. Txid is populated by BlockHashes once
// every transaction in the containing block has been decoded, not while
// this transaction itself is being parsed.
type Tx struct {
	Version  uint32
	Inputs   []TxInput
	Outputs  []TxOutput
	Locktime uint32

	// HasWitness is true iff BIP141 segwit framing (marker 0x00, flag 0x01)
	// was present on the wire. Witness payload bytes are consumed while
	// parsing but are never retained.
	HasWitness bool

	Txid [32]byte
}

// IsCoinbase reports whether tx has exactly one input whose previous
// outpoint is the coinbase sentinel.
func (tx *Tx) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].PrevOutpoint.IsCoinbasePrevout()
}

func parseInput(cur *cursor) (TxInput, error) {
	prevTxid, err := cur.readHash()
	if err != nil {
		return TxInput{}, err
	}
	prevVout, err := cur.readU32LE()
	if err != nil {
		return TxInput{}, err
	}
	scriptLen, err := cur.readCompactSize()
	if err != nil {
		return TxInput{}, err
	}
	n, err := toIntLen(scriptLen.Value, "script_sig_len")
	if err != nil {
		return TxInput{}, err
	}
	sig, err := cur.readExact(n)
	if err != nil {
		return TxInput{}, err
	}
	sequence, err := cur.readU32LE()
	if err != nil {
		return TxInput{}, err
	}
	return TxInput{
		PrevOutpoint:    TxOutPoint{PrevTxid: prevTxid, PrevVout: prevVout},
		SignatureScript: append([]byte(nil), sig...),
		Sequence:        sequence,
	}, nil
}

func parseOutput(cur *cursor) (TxOutput, error) {
	value, err := cur.readU64LE()
	if err != nil {
		return TxOutput{}, err
	}
	scriptLen, err := cur.readCompactSize()
	if err != nil {
		return TxOutput{}, err
	}
	n, err := toIntLen(scriptLen.Value, "pubkey_script_len")
	if err != nil {
		return TxOutput{}, err
	}
	pubkeyScript, err := cur.readExact(n)
	if err != nil {
		return TxOutput{}, err
	}
	return TxOutput{
		Value:        value,
		PubkeyScript: append([]byte(nil), pubkeyScript...),
	}, nil
}

// parseWitnessStack consumes (but does not retain) a compact-size item
// count followed, for each item, by a compact-size length and that many
// bytes.
func parseWitnessStack(cur *cursor) error {
	itemCount, err := cur.readCompactSize()
	if err != nil {
		return err
	}
	n, err := toIntLen(itemCount.Value, "witness_item_count")
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		itemLen, err := cur.readCompactSize()
		if err != nil {
			return err
		}
		ln, err := toIntLen(itemLen.Value, "witness_item_len")
		if err != nil {
			return err
		}
		if _, err := cur.readExact(ln); err != nil {
			return err
		}
	}
	return nil
}

// parseTransaction reads one transaction from cur, following BIP141 segwit
// framing: if the byte immediately after the version is 0x00, it's a
// marker, the next byte is the flag, and the real input count follows.
func parseTransaction(cur *cursor) (*Tx, error) {
	version, err := cur.readU32LE()
	if err != nil {
		return nil, err
	}

	hasWitness := false
	inputCount, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	if inputCount.Value == 0 {
		flag, err := cur.readU8()
		if err != nil {
			return nil, err
		}
		if flag != 0x01 {
			return nil, decodeErr(ErrInvalidFormat, "unsupported segwit flag")
		}
		hasWitness = true
		inputCount, err = cur.readCompactSize()
		if err != nil {
			return nil, err
		}
	}

	nIn, err := toIntLen(inputCount.Value, "input_count")
	if err != nil {
		return nil, err
	}
	inputs := make([]TxInput, 0, nIn)
	for i := 0; i < nIn; i++ {
		in, err := parseInput(cur)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}

	outputCount, err := cur.readCompactSize()
	if err != nil {
		return nil, err
	}
	nOut, err := toIntLen(outputCount.Value, "output_count")
	if err != nil {
		return nil, err
	}
	outputs := make([]TxOutput, 0, nOut)
	for i := 0; i < nOut; i++ {
		out, err := parseOutput(cur)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	if hasWitness {
		for i := 0; i < nIn; i++ {
			if err := parseWitnessStack(cur); err != nil {
				return nil, err
			}
		}
	}

	locktime, err := cur.readU32LE()
	if err != nil {
		return nil, err
	}

	tx := &Tx{
		Version:    version,
		Inputs:     inputs,
		Outputs:    outputs,
		Locktime:   locktime,
		HasWitness: hasWitness,
	}
	return tx, nil
}

// noWitnessBytes re-serializes tx in the canonical non-segwit form:
// version || in_count || inputs || out_count || outputs || locktime. This is the
// wire shape a transaction's txid is always computed over, with or without
// witness data present on disk.
func (tx *Tx) noWitnessBytes() []byte {
	out := make([]byte, 0, 64)
	out = AppendU32LE(out, tx.Version)
	out = AppendCompactSize(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = append(out, in.PrevOutpoint.PrevTxid[:]...)
		out = AppendU32LE(out, in.PrevOutpoint.PrevVout)
		out = AppendCompactSize(out, uint64(len(in.SignatureScript)))
		out = append(out, in.SignatureScript...)
		out = AppendU32LE(out, in.Sequence)
	}
	out = AppendCompactSize(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = AppendU64LE(out, o.Value)
		out = AppendCompactSize(out, uint64(len(o.PubkeyScript)))
		out = append(out, o.PubkeyScript...)
	}
	out = AppendU32LE(out, tx.Locktime)
	return out
}
