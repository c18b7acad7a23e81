package main

import (
	"fmt"
	"io"

	"github.com/chainwalk/blockwalker/blockproto"
)

// statsConsumer is the one concrete chainwalk.Consumer this CLI ships:
// it tallies blocks and transactions and prints a summary on completion.
// Richer consumers (CSV dump, UTXO tracking, balances) plug in through
// the same interface; this one exists so the CLI is runnable end to end.
type statsConsumer struct {
	out io.Writer

	blocks uint64
	txs    uint64
	outs   uint64
}

func newStatsConsumer(out io.Writer) *statsConsumer {
	return &statsConsumer{out: out}
}

func (s *statsConsumer) OnStart(height uint64) error {
	fmt.Fprintf(s.out, "starting at height %d\n", height)
	return nil
}

func (s *statsConsumer) OnBlock(block *blockproto.Block, height uint64) error {
	s.blocks++
	s.txs += uint64(len(block.Txs))
	for _, tx := range block.Txs {
		s.outs += uint64(len(tx.Outputs))
	}
	return nil
}

func (s *statsConsumer) OnComplete(finalHeight uint64) error {
	fmt.Fprintf(s.out, "done at height %d: %d blocks, %d transactions, %d outputs\n",
		finalHeight, s.blocks, s.txs, s.outs)
	return nil
}

func (s *statsConsumer) ShowProgress() bool { return true }
