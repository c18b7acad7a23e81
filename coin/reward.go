package coin

// halvingInterval is the number of blocks between subsidy halvings on a
// Bitcoin-derived chain.
const halvingInterval = 210_000

// initialBlockReward is the block-0 era subsidy, in satoshis.
const initialBlockReward = 50 * 100_000_000

// BaseReward computes the block subsidy at height before fees, ignoring
// any tail-emission floor: base_reward(h) = (50e8) >> (h / 210000). This
// is informational context for consumer callbacks (e.g. a balances
// tracker crediting a coinbase output); the reader itself never checks a
// block's coinbase value against it.
func BaseReward(height uint64) uint64 {
	halvings := height / halvingInterval
	if halvings >= 64 {
		return 0
	}
	return initialBlockReward >> halvings
}
