package blockproto

import (
	"runtime"

	"github.com/chainwalk/blockwalker/script"
	"golang.org/x/sync/errgroup"
)

// EvaluateOutputs classifies every output script in tx and, where the coin
// dialect permits, derives its address, populating TxOutput.Pattern,
// Address and HasAddress in place. Outputs are evaluated concurrently: a
// transaction commonly carries many outputs and classification of one has
// no bearing on any other.
func (tx *Tx) EvaluateOutputs(params script.Params) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range tx.Outputs {
		i := i
		g.Go(func() error {
			out := &tx.Outputs[i]
			pat, addr, ok := script.Evaluate(out.PubkeyScript, params)
			out.Pattern = pat
			out.Address = addr
			out.HasAddress = ok
			return nil
		})
	}
	return g.Wait()
}

// EvaluateBlockOutputs runs EvaluateOutputs across every transaction in a
// block, one errgroup task per transaction.
func EvaluateBlockOutputs(txs []*Tx, params script.Params) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, tx := range txs {
		tx := tx
		g.Go(func() error {
			return tx.EvaluateOutputs(params)
		})
	}
	return g.Wait()
}
