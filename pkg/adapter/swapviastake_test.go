package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/reservemath"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

type stubDepositStakeQuoter struct {
	quote quote.DepositStakeQuote
	err   error
}

func (s stubDepositStakeQuoter) QuoteDepositStake(stake quote.ActiveStakeParams) (quote.DepositStakeQuote, error) {
	return s.quote, s.err
}

func TestPrefundSwapViaStakeSkipsVoteSpecificCandidate(t *testing.T) {
	bad := stubWithdrawStakeQuoter{err: routererr.UserErr("SPL", routererr.ErrValidatorNotFound)}
	good := stubWithdrawStakeQuoter{quote: quote.WithdrawStakeQuote{
		Out: quote.ActiveStakeParams{Lamports: quote.StakeAccountLamports{Staked: 10_000_000}},
	}}
	deposit := stubDepositStakeQuoter{quote: quote.DepositStakeQuote{Out: 5_000_000}}
	bal := reservemath.PoolBalance{SolReservesLamports: 100_000_000}

	result, err := PrefundSwapViaStake([]WithdrawStakeQuoter{bad, good}, deposit, 1_000_000, bal, flatFee(0))
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), result.Deposit.Out)
}

func TestPrefundSwapViaStakeStopsOnTerminalError(t *testing.T) {
	terminal := stubWithdrawStakeQuoter{err: routererr.PoolErr("Reserve", routererr.ErrNotEnoughLiquidity)}
	deposit := stubDepositStakeQuoter{quote: quote.DepositStakeQuote{Out: 5_000_000}}
	bal := reservemath.PoolBalance{SolReservesLamports: 100_000_000}

	_, err := PrefundSwapViaStake([]WithdrawStakeQuoter{terminal}, deposit, 1_000_000, bal, flatFee(0))
	require.Error(t, err)
}

func TestPrefundSwapViaStakeNoMatchWhenAllCandidatesExhausted(t *testing.T) {
	bad := stubWithdrawStakeQuoter{err: routererr.UserErr("SPL", routererr.ErrValidatorNotFound)}
	deposit := stubDepositStakeQuoter{quote: quote.DepositStakeQuote{Out: 5_000_000}}
	bal := reservemath.PoolBalance{SolReservesLamports: 100_000_000}

	_, err := PrefundSwapViaStake([]WithdrawStakeQuoter{bad, bad}, deposit, 1_000_000, bal, flatFee(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, routererr.ErrNoMatch)
}

// reserveAfterPrefundStub implements DepositStakeQuoterAfterPrefund to
// verify PrefundSwapViaStake advances the deposit quoter's liquidity
// before quoting, when the deposit target is the reserve pool.
type reserveAfterPrefundStub struct {
	stubDepositStakeQuoter
	seenSlumdogTarget uint64
}

func (r *reserveAfterPrefundStub) AfterPrefund(slumdogTargetLamports uint64) DepositStakeQuoterAfterPrefund {
	clone := *r
	clone.seenSlumdogTarget = slumdogTargetLamports
	return &clone
}

func TestPrefundSwapViaStakeAdvancesReserveLiquidity(t *testing.T) {
	good := stubWithdrawStakeQuoter{quote: quote.WithdrawStakeQuote{
		Out: quote.ActiveStakeParams{Lamports: quote.StakeAccountLamports{Staked: 10_000_000}},
	}}
	deposit := &reserveAfterPrefundStub{stubDepositStakeQuoter: stubDepositStakeQuoter{quote: quote.DepositStakeQuote{Out: 1}}}
	bal := reservemath.PoolBalance{SolReservesLamports: 100_000_000}

	_, err := PrefundSwapViaStake([]WithdrawStakeQuoter{good}, deposit, 1_000_000, bal, flatFee(0))
	require.NoError(t, err)
	assert.Greater(t, deposit.seenSlumdogTarget, uint64(0))
}
