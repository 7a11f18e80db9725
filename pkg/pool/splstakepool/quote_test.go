package splstakepool

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func testVote(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	return solana.PublicKeyFromBytes(b[:])
}

func newTestState() *State {
	voteA := testVote(1)
	voteB := testVote(2)
	return &State{
		Meta: ImmutableMeta{
			DepositAuthPda: testVote(9),
		},
		StakePool: &StakePool{
			StakeDepositAuthority: testVote(9),
			TotalLamports:         10_000_000,
			PoolTokenSupply:       10_000_000,
			PreferredWithdrawValidator: OptionPubkey{IsSome: true, Key: voteA},
		},
		ValidatorList: &ValidatorList{
			Validators: []ValidatorStakeInfo{
				{VoteAccountAddress: voteA, ActiveStakeLamports: 0},
				{VoteAccountAddress: voteB, ActiveStakeLamports: 5_000_000},
			},
		},
	}
}

func TestQuoteWithdrawStakeFallsBackWhenPreferredIsExhausted(t *testing.T) {
	s := newTestState()
	q, err := s.QuoteWithdrawStake(1_000_000, nil)
	require.NoError(t, err)
	assert.Equal(t, testVote(2), q.Out.Vote, "exhausted preferred validator must fall back to max-stake")
}

func TestQuoteWithdrawStakeRejectsWrongVoteAgainstPreferred(t *testing.T) {
	s := newTestState()
	wrong := testVote(3)
	_, err := s.QuoteWithdrawStake(1_000_000, &wrong)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.ErrIncorrectWithdrawVoteAddr))
}

func TestQuoteWithdrawStakeRejectsAmountAboveActiveStake(t *testing.T) {
	s := newTestState()
	s.StakePool.PreferredWithdrawValidator = OptionPubkey{} // no preference, so the vote param is taken as-is
	vote := testVote(2)
	_, err := s.QuoteWithdrawStake(9_000_000, &vote)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.ErrStakeLamportsNotEqualToMin))
}

func TestQuoteDepositStakeUnknownValidatorRejected(t *testing.T) {
	s := newTestState()
	stake := quote.ActiveStakeParams{
		Vote:     testVote(99),
		Lamports: quote.StakeAccountLamports{Staked: 1_000_000},
	}
	_, err := s.QuoteDepositStake(stake)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.ErrValidatorNotFound))
}

func TestQuoteDepositStakeReferralFeeRoutedIntoOut(t *testing.T) {
	s := newTestState()
	s.StakePool.StakeDepositFee = Fee{Numerator: 1, Denominator: 100} // 1%
	s.StakePool.StakeReferralFee = 50                                 // 50% of the fee goes to referral

	stake := quote.ActiveStakeParams{
		Vote:     testVote(1),
		Lamports: quote.StakeAccountLamports{Staked: 1_000_000},
	}
	q, err := s.QuoteDepositStake(stake)
	require.NoError(t, err)

	tokensOut := uint64(1_000_000) // 1:1 ratio in newTestState
	fee := tokensOut / 100
	referral := fee / 2
	managerFee := fee - referral

	assert.Equal(t, tokensOut-fee+referral, q.Out, "referral must be added back into Out, not folded into Fee")
	assert.Equal(t, managerFee, q.Fee)
}

func TestQuoteWithdrawSolRejectsWhenExceedsReserveLiquidity(t *testing.T) {
	s := newTestState()
	reserve := uint64(100)
	s.ReserveStakeLamports = &reserve

	_, err := s.QuoteWithdrawSol(1_000_000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.ErrNotEnoughLiquidity))
}
