package chainwalk

import (
	"fmt"
	"io"
	"time"

	"github.com/chainwalk/blockwalker/blockproto"
)

// BlockSource is the subset of chainstore.Store the driver needs: fetching
// a block by height and knowing how high the loaded range goes. Expressed
// as an interface so the driver can be tested without a real
// chainindex/blkfile pair backing it.
type BlockSource interface {
	GetBlock(height uint64) (block *blockproto.Block, ok bool, err error)
	MaxHeight() uint64
}

// progressInterval is the fixed wall-clock cadence between progress lines.
const progressInterval = 10 * time.Second

// Config configures a Driver run.
type Config struct {
	// Start is the first height to deliver to the consumer, inclusive.
	Start uint64
	// End is the last height to deliver, inclusive. Nil means "walk to
	// the source's MaxHeight()".
	End *uint64

	// ProgressWriter receives periodic progress lines. Defaults to
	// io.Discard if nil.
	ProgressWriter io.Writer

	// now and progressEvery are overridable for tests; production code
	// leaves them zero and gets time.Now / progressInterval.
	now           func() time.Time
	progressEvery time.Duration
}

// Driver iterates heights from Config.Start through the resolved end
// height, fetching each block from source and handing it to consumer in
// ascending order.
type Driver struct {
	source   BlockSource
	consumer Consumer
	cfg      Config
}

// New builds a Driver bound to source and consumer.
func New(source BlockSource, consumer Consumer, cfg Config) *Driver {
	if cfg.now == nil {
		cfg.now = time.Now
	}
	if cfg.progressEvery == 0 {
		cfg.progressEvery = progressInterval
	}
	if cfg.ProgressWriter == nil {
		cfg.ProgressWriter = io.Discard
	}
	return &Driver{source: source, consumer: consumer, cfg: cfg}
}

// Run walks the configured height range, invoking the consumer's
// lifecycle hooks on start and completion and OnBlock for every height in
// between. Any error — from the source or from the consumer — is fatal
// and stops the run immediately.
func (d *Driver) Run() error {
	end := d.source.MaxHeight()
	if d.cfg.End != nil {
		end = *d.cfg.End
	}

	if err := d.consumer.OnStart(d.cfg.Start); err != nil {
		return fmt.Errorf("consumer on_start: %w", err)
	}

	showProgress := d.consumer.ShowProgress()
	lastReport := d.cfg.now()
	lastHeight := d.cfg.Start
	var finalHeight uint64

	for h := d.cfg.Start; h <= end; h++ {
		block, ok, err := d.source.GetBlock(h)
		if err != nil {
			return fmt.Errorf("get block at height %d: %w", h, err)
		}
		if ok {
			if err := d.consumer.OnBlock(block, h); err != nil {
				return fmt.Errorf("consumer on_block at height %d: %w", h, err)
			}
		}
		finalHeight = h

		if showProgress {
			now := d.cfg.now()
			if elapsed := now.Sub(lastReport); elapsed >= d.cfg.progressEvery {
				rate := float64(h-lastHeight) / elapsed.Seconds()
				remaining := uint64(0)
				if end > h {
					remaining = end - h
				}
				fmt.Fprintf(d.cfg.ProgressWriter, "height=%d remaining=%d rate=%.1f blocks/s\n", h, remaining, rate)
				lastReport = now
				lastHeight = h
			}
		}
	}

	if err := d.consumer.OnComplete(finalHeight); err != nil {
		return fmt.Errorf("consumer on_complete: %w", err)
	}
	return nil
}
