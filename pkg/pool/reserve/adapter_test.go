package reserve

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/quote"
)

func testKey(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	return solana.PublicKeyFromBytes(b[:])
}

func newTestAdapter() *AdapterState {
	reserves := uint64(5_000_000)
	return &AdapterState{
		Meta: ImmutableMeta{
			Program:             testKey(10),
			PoolAddr:            testKey(11),
			FeeAddr:             testKey(12),
			ProtocolFeeAddr:     testKey(13),
			PoolSolReservesAddr: testKey(14),
		},
		Pool:            &Pool{IncomingStake: 1_000_000},
		Fee:             &Fee{Kind: 0, FlatBps: 100}, // flat 1%
		ProtocolFee:     &ProtocolFee{FeeRatioBps: 1000},
		PoolSolReserves: &reserves,
	}
}

func TestQuoteDepositStakeAppliesLpAndProtocolFee(t *testing.T) {
	a := newTestAdapter()
	stake := quote.ActiveStakeParams{Vote: testKey(1), Lamports: quote.StakeAccountLamports{Staked: 1_000_000}}
	q, err := a.QuoteDepositStake(stake)
	require.NoError(t, err)
	// LP curve: flat 1% of 1_000_000 = 10_000. Protocol: 10% of 1_000_000 = 100_000.
	assert.Equal(t, uint64(890_000), q.Out)
	assert.Equal(t, uint64(110_000), q.Fee)
}

func TestQuoteDepositStakeRequiresFreshProtocolFee(t *testing.T) {
	a := newTestAdapter()
	a.ProtocolFee = nil
	_, err := a.QuoteDepositStake(quote.ActiveStakeParams{Vote: testKey(1), Lamports: quote.StakeAccountLamports{Staked: 1_000_000}})
	assert.Error(t, err)
}

func TestAfterPrefundAdvancesBalanceWithoutMutatingOriginal(t *testing.T) {
	a := newTestAdapter()
	// A flat fee ignores liquidity; use the liquidity-linear curve so the
	// quote depends on the reserves AfterPrefund advances.
	a.Fee = &Fee{Kind: 1, MaxLiqBps: 10, ZeroLiqBps: 500}
	advanced := a.AfterPrefund(500_000).(*AdapterState)

	assert.Equal(t, uint64(0), a.pendingSlumdog, "AfterPrefund must clone, not mutate, the receiver")
	assert.Equal(t, uint64(500_000), advanced.pendingSlumdog)

	stake := quote.ActiveStakeParams{Vote: testKey(1), Lamports: quote.StakeAccountLamports{Staked: 1_000_000}}
	before, err := a.QuoteDepositStake(stake)
	require.NoError(t, err)
	after, err := advanced.QuoteDepositStake(stake)
	require.NoError(t, err)
	assert.NotEqual(t, before.Out, after.Out, "a pending slumdog outflow must shift the fee curve's liquidity input")
}

func TestAfterPrefundOutflowNeverExceedsReserves(t *testing.T) {
	a := newTestAdapter()
	advanced := a.AfterPrefund(50_000_000).(*AdapterState) // far larger than reserves
	bal := advanced.balance()
	assert.True(t, bal.SolReservesLamports == 0 || bal.SolReservesLamports <= *a.PoolSolReserves)
}

func TestDepositStakeSufAccsDerivesRecordPda(t *testing.T) {
	a := newTestAdapter()
	stakeAccount := testKey(20)
	keys, signers, writable, err := a.DepositStakeSufAccs(stakeAccount)
	require.NoError(t, err)
	require.Len(t, keys, 10)
	require.Len(t, signers, 10)
	require.Len(t, writable, 10)
	assert.True(t, writable[5], "the record PDA must be writable, it is created on deposit")
}
