package reservemath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFlatFee(t *testing.T) {
	f := FeeEnum{Kind: FeeFlat, FlatBps: 100} // 1%
	bal := PoolBalance{SolReservesLamports: 1_000_000}
	out := f.Apply(bal, 100_000)
	assert.Equal(t, uint64(99_000), out)
}

func TestApplyLiquidityLinearAtFullReserves(t *testing.T) {
	f := FeeEnum{Kind: FeeLiquidityLinear, MaxLiqBps: 10, ZeroLiqBps: 500}
	bal := PoolBalance{SolReservesLamports: 1_000_000}
	// Unstaking a tiny amount leaves reserves nearly full, so the bps
	// charged should sit close to MaxLiqBps.
	out := f.Apply(bal, 1)
	assert.LessOrEqual(t, out, uint64(1))
}

func TestApplyLiquidityLinearAtDrainedReserves(t *testing.T) {
	f := FeeEnum{Kind: FeeLiquidityLinear, MaxLiqBps: 10, ZeroLiqBps: 500}
	bal := PoolBalance{SolReservesLamports: 1_000_000}
	out := f.Apply(bal, 1_000_000)
	// Draining reserves to zero charges close to ZeroLiqBps (5%).
	assert.InDelta(t, 950_000, out, 1)
}

func TestReverseFromRemRoundTrips(t *testing.T) {
	f := FeeEnum{Kind: FeeFlat, FlatBps: 100}
	bal := PoolBalance{SolReservesLamports: 10_000_000}
	targetOut := uint64(500_000)

	gross, ok := f.ReverseFromRem(bal, targetOut)
	require.True(t, ok)
	assert.GreaterOrEqual(t, f.Apply(bal, gross), targetOut)
	if gross > 0 {
		assert.Less(t, f.Apply(bal, gross-1), targetOut)
	}
}

func TestReverseFromRemZeroTarget(t *testing.T) {
	f := FeeEnum{Kind: FeeFlat, FlatBps: 100}
	bal := PoolBalance{SolReservesLamports: 10_000_000}
	gross, ok := f.ReverseFromRem(bal, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), gross)
}

func TestReverseFromRemUnreachableTarget(t *testing.T) {
	f := FeeEnum{Kind: FeeFlat, FlatBps: 100}
	bal := PoolBalance{SolReservesLamports: 1_000}
	_, ok := f.ReverseFromRem(bal, 10_000_000)
	assert.False(t, ok)
}

func TestReverseFromRemEmptyReserves(t *testing.T) {
	f := FeeEnum{Kind: FeeFlat, FlatBps: 100}
	bal := PoolBalance{SolReservesLamports: 0}
	_, ok := f.ReverseFromRem(bal, 1)
	assert.False(t, ok)
}
