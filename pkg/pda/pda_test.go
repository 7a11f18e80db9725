package pda

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(seed byte) solana.PublicKey {
	var b [32]byte
	b[0] = seed
	return solana.PublicKeyFromBytes(b[:])
}

func TestFeeTokenAccountIsDeterministic(t *testing.T) {
	mint := testKey(1)
	a1, b1, err := FeeTokenAccount(mint)
	require.NoError(t, err)
	a2, b2, err := FeeTokenAccount(mint)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestFeeTokenAccountVariesByMint(t *testing.T) {
	a1, _, err := FeeTokenAccount(testKey(1))
	require.NoError(t, err)
	a2, _, err := FeeTokenAccount(testKey(2))
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestBridgeStakeVariesBySeed(t *testing.T) {
	user := testKey(1)
	a1, _, err := BridgeStake(user, 0)
	require.NoError(t, err)
	a2, _, err := BridgeStake(user, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a1, a2)
}

func TestSlumdogStakeIsDeterministic(t *testing.T) {
	bridge := testKey(5)
	a1, err := SlumdogStake(bridge)
	require.NoError(t, err)
	a2, err := SlumdogStake(bridge)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
}

func TestValidatorStakeSeededDiffersFromUnseeded(t *testing.T) {
	vote := testKey(1)
	pool := testKey(2)
	program := testKey(3)
	unseeded, _, err := ValidatorStake(vote, pool, program, nil)
	require.NoError(t, err)
	seed := uint32(1)
	seeded, _, err := ValidatorStake(vote, pool, program, &seed)
	require.NoError(t, err)
	assert.NotEqual(t, unseeded, seeded)
}
