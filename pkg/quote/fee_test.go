package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRouterFeeBpsZeroOut(t *testing.T) {
	out, fee := ApplyRouterFeeBps(0, 10)
	assert.Equal(t, uint64(0), out)
	assert.Equal(t, uint64(0), fee)
}

func TestApplyRouterFeeBpsZeroBps(t *testing.T) {
	out, fee := ApplyRouterFeeBps(1_000_000, 0)
	assert.Equal(t, uint64(1_000_000), out, "bps=0 must not apply the max(1,.) floor")
	assert.Equal(t, uint64(0), fee)
}

func TestApplyRouterFeeBpsFloorsUpToOne(t *testing.T) {
	// 1 at 1 bps would floor to 0; the spec requires at least 1 lamport of
	// fee whenever out is non-zero and bps is non-zero.
	out, fee := ApplyRouterFeeBps(1, 1)
	assert.Equal(t, uint64(1), fee)
	assert.Equal(t, uint64(0), out)
}

func TestApplyRouterFeeBpsTypical(t *testing.T) {
	out, fee := ApplyRouterFeeBps(1_000_000, 10)
	require.Equal(t, uint64(1_000), fee)
	assert.Equal(t, uint64(999_000), out)
}

func TestApplyRouterFeeBpsNeverExceedsOut(t *testing.T) {
	out, fee := ApplyRouterFeeBps(1, 10000)
	assert.Equal(t, uint64(1), fee)
	assert.Equal(t, uint64(0), out)
}

func TestWithRouterFeeTokenZeroOutBypassesFee(t *testing.T) {
	q := TokenQuote{InAmount: 100, OutAmount: 0}
	wrapped := WithRouterFeeToken(q, 10)
	assert.Equal(t, uint64(0), wrapped.RouterFee)
	assert.Equal(t, q, wrapped.Quote)
}

func TestWithRouterFeeDepositStakeAppliesFee(t *testing.T) {
	q := DepositStakeQuote{Out: 1_000_000}
	wrapped := WithRouterFeeDepositStake(q, 10)
	assert.Equal(t, uint64(1_000), wrapped.RouterFee)
	assert.Equal(t, uint64(999_000), wrapped.Quote.Out)
}
