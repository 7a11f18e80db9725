package ix

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/sanctum-router/pkg/consts"
)

func TestEncodeAmountRoundTrips(t *testing.T) {
	data := EncodeAmount(DiscStakeWrappedSol, 1_000_000_000)
	require.Len(t, data, 9)

	disc, amount, err := DecodeAmount(data)
	require.NoError(t, err)
	assert.Equal(t, DiscStakeWrappedSol, disc)
	assert.Equal(t, uint64(1_000_000_000), amount)
}

func TestEncodeAmountSeedRoundTrips(t *testing.T) {
	data := EncodeAmountSeed(DiscPrefundWithdrawStake, 42, 7)
	require.Len(t, data, 13)

	disc, amount, seed, err := DecodeAmountSeed(data)
	require.NoError(t, err)
	assert.Equal(t, DiscPrefundWithdrawStake, disc)
	assert.Equal(t, uint64(42), amount)
	assert.Equal(t, uint32(7), seed)
}

func TestEncodeBare(t *testing.T) {
	data := EncodeBare(DiscDepositStake)
	assert.Equal(t, []byte{byte(DiscDepositStake)}, data)
}

func TestDecodeAmountRejectsWrongLength(t *testing.T) {
	_, _, err := DecodeAmount([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestMetaRejectsMismatchedLengths(t *testing.T) {
	keys := []solana.PublicKey{solana.SystemProgramID}
	_, err := Meta(keys, []bool{true, false}, []bool{true})
	assert.Error(t, err)
}

func TestMetaBuildsAccountMetas(t *testing.T) {
	keys := []solana.PublicKey{solana.SystemProgramID, solana.TokenProgramID}
	metas, err := Meta(keys, []bool{true, false}, []bool{false, true})
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.True(t, metas[0].IsSigner)
	assert.False(t, metas[0].IsWritable)
	assert.False(t, metas[1].IsSigner)
	assert.True(t, metas[1].IsWritable)
}

func TestNewInstructionConcatenatesAccountsAndSetsProgram(t *testing.T) {
	prefix := []*solana.AccountMeta{solana.NewAccountMeta(solana.SystemProgramID, true, true)}
	suffix := []*solana.AccountMeta{solana.NewAccountMeta(solana.TokenProgramID, false, false)}

	i := NewInstruction(EncodeBare(DiscDepositStake), prefix, suffix)
	assert.Equal(t, consts.SanctumRouterProgram, i.ProgramID())
	assert.Equal(t, 2, len(i.Accounts()))
	data, err := i.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(DiscDepositStake)}, data)
}
