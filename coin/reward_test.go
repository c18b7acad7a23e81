package coin

import "testing"

func TestBaseReward(t *testing.T) {
	tests := []struct {
		height uint64
		want   uint64
	}{
		{0, 5_000_000_000},
		{209_999, 5_000_000_000},
		{210_000, 2_500_000_000},
		{419_999, 2_500_000_000},
		{420_000, 1_250_000_000},
		{629_999, 1_250_000_000},
		{630_000, 625_000_000},
	}
	for _, tt := range tests {
		if got := BaseReward(tt.height); got != tt.want {
			t.Fatalf("BaseReward(%d) = %d, want %d", tt.height, got, tt.want)
		}
	}
}
