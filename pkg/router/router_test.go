package router

import (
	"encoding/binary"
	"sort"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/pool/splstakepool"
)

func testKey(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	return solana.PublicKeyFromBytes(b[:])
}

func TestSwapMintsExpandMatchesUpdateTable(t *testing.T) {
	inp, out := testKey(1), testKey(2)

	cases := []struct {
		kind SwapMintsKind
		want []PoolUpdate
	}{
		{SwapDepositSol, []PoolUpdate{{Mint: out, Type: UpdateDepositSol}}},
		{SwapDepositStake, []PoolUpdate{{Mint: out, Type: UpdateDepositStake}}},
		{SwapWithdrawSol, []PoolUpdate{{Mint: inp, Type: UpdateWithdrawSol}}},
		{SwapPrefundWithdrawStake, []PoolUpdate{
			{Mint: inp, Type: UpdateWithdrawStake},
			{Mint: consts.NativeMint, Type: UpdateDepositStake},
		}},
		{SwapPrefundSwapViaStake, []PoolUpdate{
			{Mint: inp, Type: UpdateWithdrawStake},
			{Mint: out, Type: UpdateDepositStake},
			{Mint: consts.NativeMint, Type: UpdateDepositStake},
		}},
	}

	for _, c := range cases {
		got := SwapMints{Kind: c.kind, Inp: inp, Out: out}.Expand()
		assert.Equal(t, c.want, got)
	}
}

func TestAccountsToUpdateDedupsAndSorts(t *testing.T) {
	r := NewSanctumRouter()
	mint := testKey(1)
	meta, err := splstakepool.NewImmutableMeta(testKey(2), testKey(3), testKey(4), testKey(5))
	require.NoError(t, err)
	r.Spl[mint] = &splstakepool.State{Meta: meta}

	swap := []SwapMints{
		{Kind: SwapDepositStake, Out: mint},
		{Kind: SwapDepositStake, Out: mint}, // duplicate route should not duplicate accounts
	}
	accounts := r.AccountsToUpdate(swap)

	seen := make(map[solana.PublicKey]struct{})
	for _, a := range accounts {
		_, dup := seen[a]
		assert.False(t, dup, "account %s listed more than once", a)
		seen[a] = struct{}{}
	}

	sorted := append([]solana.PublicKey{}, accounts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	assert.Equal(t, sorted, accounts)

	assert.Contains(t, accounts, consts.SysvarClock)
}

func TestInitIsIdempotent(t *testing.T) {
	r := NewSanctumRouter()
	mint := testKey(1)
	spec := InitSpec{Spl: []SplPoolSpec{{
		Program:       testKey(2),
		StakePool:     testKey(3),
		ValidatorList: testKey(4),
		ReserveStake:  testKey(5),
		PoolMint:      mint,
	}}}

	require.NoError(t, r.Init(spec))
	first := r.Spl[mint]

	require.NoError(t, r.Init(spec))
	assert.Same(t, first, r.Spl[mint], "re-running Init must not replace an existing pool's state")
}

func TestDecodeClockRoundTrips(t *testing.T) {
	data := make([]byte, ClockAccountDataSize)
	binary.LittleEndian.PutUint64(data[16:24], 123)

	clock, err := DecodeClock(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), clock.Epoch)
}

func TestDecodeClockRejectsWrongLength(t *testing.T) {
	_, err := DecodeClock([]byte{1, 2, 3})
	assert.Error(t, err)
}
