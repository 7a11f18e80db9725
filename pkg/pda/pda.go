// Package pda derives every program-derived address the router and its
// instruction builders need, delegating the actual bump search to
// solana-go's FindProgramAddress rather than reimplementing the on-curve
// rejection loop by hand.
package pda

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func u32le(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// FeeTokenAccount derives the aggregator's fee token account for mint.
func FeeTokenAccount(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte("fee"), mint.Bytes()},
		consts.SanctumRouterProgram,
	)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("fee_token_account")
	}
	return addr, bump, nil
}

// BridgeStake derives the bridge stake account seeded on the user and an
// arbitrary caller-chosen seed (incremented by the caller across retries to
// find a fresh, unused bridge stake address).
func BridgeStake(user solana.PublicKey, seed uint32) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{[]byte("bridge_stake"), user.Bytes(), u32le(seed)},
		consts.SanctumRouterProgram,
	)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("bridge_stake")
	}
	return addr, bump, nil
}

// SlumdogStake derives the slumdog stake address split off bridgeStake via
// create-with-seed under the stake program.
func SlumdogStake(bridgeStake solana.PublicKey) (solana.PublicKey, error) {
	addr, err := solana.CreateWithSeed(bridgeStake, "slumdog", consts.StakeProgram)
	if err != nil {
		return solana.PublicKey{}, routererr.InvalidPda("slumdog_stake")
	}
	return addr, nil
}

// ReserveStakeAccountRecord derives the reserve pool's per-stake-account
// bookkeeping PDA.
func ReserveStakeAccountRecord(reservePool, stakeAccount, reserveProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{reservePool.Bytes(), stakeAccount.Bytes()},
		reserveProgram,
	)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("reserve_stake_account_record")
	}
	return addr, bump, nil
}

// SplWithdrawAuthority derives a SPL stake-pool's withdraw authority.
func SplWithdrawAuthority(stakePool, splProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return splAuthority(stakePool, splProgram, "withdraw")
}

// SplDepositAuthority derives a SPL stake-pool's default deposit authority.
func SplDepositAuthority(stakePool, splProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	return splAuthority(stakePool, splProgram, "deposit")
}

func splAuthority(stakePool, splProgram solana.PublicKey, which string) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{stakePool.Bytes(), []byte(which)},
		splProgram,
	)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("spl_" + which + "_authority")
	}
	return addr, bump, nil
}

// ValidatorStake derives a SPL stake-pool validator's stake account. seed
// is nil for the unseeded (legacy) derivation.
func ValidatorStake(vote, stakePool solana.PublicKey, splProgram solana.PublicKey, seed *uint32) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{vote.Bytes(), stakePool.Bytes()}
	if seed != nil {
		seeds = append(seeds, u32le(*seed))
	}
	addr, bump, err := solana.FindProgramAddress(seeds, splProgram)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("validator_stake")
	}
	return addr, bump, nil
}

// MarinadeDuplicationFlag derives Marinade's per-validator duplication-flag
// PDA.
func MarinadeDuplicationFlag(state, vote, marinadeProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{state.Bytes(), []byte("unique_accounts"), vote.Bytes()},
		marinadeProgram,
	)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("marinade_duplication_flag")
	}
	return addr, bump, nil
}
