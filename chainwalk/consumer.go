// Package chainwalk drives the height-ordered block walk, iterating a
// configured height range and handing each parsed block to a
// caller-supplied Consumer.
package chainwalk

import "github.com/chainwalk/blockwalker/blockproto"

// Consumer is the interface the walk exposes to callback code:
// statistics dumpers, CSV writers, UTXO trackers, and the like. Any error returned from these
// hooks is fatal to the run.
type Consumer interface {
	OnStart(height uint64) error
	OnBlock(block *blockproto.Block, height uint64) error
	OnComplete(finalHeight uint64) error

	// ShowProgress reports whether the driver should emit its periodic
	// progress line for this run. Consumers that write their own progress
	// output (e.g. a bar keyed to a different metric) return false here.
	ShowProgress() bool
}
