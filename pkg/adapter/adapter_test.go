package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func TestIsVoteSpecificKnownSentinels(t *testing.T) {
	for _, sentinel := range []error{
		routererr.ErrWrongValidatorAccountOrIdx,
		routererr.ErrValidatorNotFound,
		routererr.ErrIncorrectDepositVoteAddress,
		routererr.ErrIncorrectWithdrawVoteAddr,
		routererr.ErrStakeLamportsNotEqualToMin,
	} {
		wrapped := routererr.UserErr("SPL", sentinel)
		assert.True(t, IsVoteSpecific(wrapped), "%v should be vote-specific", sentinel)
	}
}

func TestIsVoteSpecificTerminalSentinels(t *testing.T) {
	for _, sentinel := range []error{
		routererr.ErrNotEnoughLiquidity,
		routererr.ErrExchangeRateStale,
		routererr.ErrValidatorWithMoreStake,
	} {
		wrapped := routererr.PoolErr("Reserve", sentinel)
		assert.False(t, IsVoteSpecific(wrapped), "%v should not be vote-specific", sentinel)
	}
}

func TestIsVoteSpecificUnrelatedError(t *testing.T) {
	assert.False(t, IsVoteSpecific(errors.New("boom")))
}

func TestClassifyRoundTripsThroughStakeQuoteError(t *testing.T) {
	cause := routererr.UserErr("SPL", routererr.ErrValidatorNotFound)
	sqe := Classify(cause)
	assert.True(t, sqe.IsVoteSpecific())
	assert.True(t, errors.Is(sqe, routererr.ErrValidatorNotFound))
}
