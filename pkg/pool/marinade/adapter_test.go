package marinade

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func testKey(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	return solana.PublicKeyFromBytes(b[:])
}

func newTestAdapter() *AdapterState {
	vote := testKey(1)
	legBalance := uint64(2_000_000)
	return &AdapterState{
		Meta: ImmutableMeta{
			Program:           testKey(10),
			StateAddr:         testKey(11),
			ValidatorList:     testKey(12),
			MsolMintAuthority: testKey(13),
			LiqPoolSolLegPda:  testKey(14),
			LiqPoolMsolLeg:    testKey(16),
		},
		State: &State{
			MsolMint: testKey(15),
			ValidatorSystem: ValidatorSystem{
				TotalActiveBalance: 8_000_000,
			},
			LiqPool: LiqPool{
				MsolLeg: testKey(16),
			},
			AvailableReserveBalance: 2_000_000,
			MsolSupply:              10_000_000,
		},
		ValidatorRecords: &ValidatorRecords{
			Validators: []ValidatorRecord{{ValidatorAccount: vote, ActiveBalance: 8_000_000}},
		},
		MsolLegBalance: &legBalance,
	}
}

func TestQuoteDepositSolUsesTotalBalanceRatio(t *testing.T) {
	a := newTestAdapter()
	q, err := a.QuoteDepositSol(1_000_000)
	require.NoError(t, err)
	// totalLamports = 10_000_000. effectiveMsolSupply excludes the liquidity
	// pool's own 2_000_000 mSOL from the 10_000_000 supply, leaving
	// 8_000_000 -> 1_000_000 * 8_000_000 / 10_000_000 = 800_000.
	assert.Equal(t, uint64(800_000), q.OutAmount)
	assert.Equal(t, uint64(0), q.FeeAmount)
}

func TestQuoteDepositSolExcludesLiqPoolInventoryFromSupply(t *testing.T) {
	a := newTestAdapter()
	*a.MsolLegBalance = 0
	q, err := a.QuoteDepositSol(1_000_000)
	require.NoError(t, err)
	// No liquidity-pool inventory to exclude -> full 10_000_000 supply, 1:1.
	assert.Equal(t, uint64(1_000_000), q.OutAmount)
}

func TestQuoteDepositSolRequiresFreshState(t *testing.T) {
	a := &AdapterState{Meta: ImmutableMeta{StateAddr: testKey(11)}}
	_, err := a.QuoteDepositSol(1_000_000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.AccountMissing(testKey(11))))
}

func TestQuoteDepositSolRequiresFreshMsolLegBalance(t *testing.T) {
	a := newTestAdapter()
	a.MsolLegBalance = nil
	_, err := a.QuoteDepositSol(1_000_000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.AccountMissing(a.Meta.LiqPoolMsolLeg)))
}

func TestQuoteDepositStakeRejectsUnknownValidatorWithoutAutoAdd(t *testing.T) {
	a := newTestAdapter()
	stake := quote.ActiveStakeParams{Vote: testKey(99), Lamports: quote.StakeAccountLamports{Staked: 1_000_000}}
	_, err := a.QuoteDepositStake(stake)
	require.Error(t, err)
	assert.True(t, errors.Is(err, routererr.ErrWrongValidatorAccountOrIdx))
}

func TestQuoteDepositStakeAllowsUnknownValidatorWithAutoAdd(t *testing.T) {
	a := newTestAdapter()
	a.State.ValidatorSystem.AutoAddValidatorEnabled = 1
	stake := quote.ActiveStakeParams{Vote: testKey(99), Lamports: quote.StakeAccountLamports{Staked: 1_000_000}}
	q, err := a.QuoteDepositStake(stake)
	require.NoError(t, err)
	assert.Equal(t, uint64(800_000), q.Out)
	assert.Equal(t, uint64(0), q.Fee, "Marinade deposit-stake charges no router-visible fee")
}

func TestDepositStakeSufAccsDerivesDuplicationFlag(t *testing.T) {
	a := newTestAdapter()
	vote := testKey(1)
	keys, signers, writable, err := a.DepositStakeSufAccs(vote)
	require.NoError(t, err)
	require.Len(t, keys, 7)
	require.Len(t, signers, 7)
	require.Len(t, writable, 7)

	wantFlag, _, err := marinadeDuplicationFlag(a.Meta.StateAddr, vote, a.Meta.Program)
	require.NoError(t, err)
	assert.Equal(t, wantFlag, keys[3])
	assert.True(t, writable[3])

	other, _, err := marinadeDuplicationFlag(a.Meta.StateAddr, testKey(2), a.Meta.Program)
	require.NoError(t, err)
	assert.NotEqual(t, wantFlag, other, "duplication flag must vary by vote account")
}

func TestDepositSolSufAccsShape(t *testing.T) {
	a := newTestAdapter()
	keys, signers, writable := a.DepositSolSufAccs()
	require.Len(t, keys, 6)
	require.Len(t, signers, 6)
	require.Len(t, writable, 6)
	assert.Equal(t, a.Meta.Program, keys[0])
	assert.False(t, writable[0])
	assert.Equal(t, a.Meta.LiqPoolMsolLeg, keys[2])
	assert.True(t, writable[2])
}
