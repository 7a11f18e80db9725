package splstakepool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// DepositSolSufAccsLen is the fixed suffix-account count for a
// StakeWrappedSol instruction targeting an SPL stake pool.
const DepositSolSufAccsLen = 7

// WithdrawSolSufAccsLen is the fixed suffix-account count for a
// WithdrawWrappedSol instruction.
const WithdrawSolSufAccsLen = 9

// DepositStakeSufAccsLen is the fixed suffix-account count for a
// DepositStake instruction.
const DepositStakeSufAccsLen = 12

// WithdrawStakeSufAccsLen is the fixed suffix-account count for a
// PrefundWithdrawStake instruction.
const WithdrawStakeSufAccsLen = 10

// DepositSolSufAccs returns the suffix accounts appended for a
// StakeWrappedSol instruction targeting this pool.
func (s *State) DepositSolSufAccs() ([DepositSolSufAccsLen]solana.PublicKey, [DepositSolSufAccsLen]bool, [DepositSolSufAccsLen]bool) {
	sp := s.StakePool
	keys := [DepositSolSufAccsLen]solana.PublicKey{
		s.Meta.StakePoolProgram,
		s.Meta.StakePoolAddr,
		s.Meta.WithdrawAuthPda,
		sp.ReserveStake,
		sp.ManagerFeeAccount,
		sp.PoolMint,
		sp.TokenProgramID,
	}
	writable := [DepositSolSufAccsLen]bool{false, true, false, true, true, true, false}
	var signer [DepositSolSufAccsLen]bool
	return keys, signer, writable
}

// WithdrawSolSufAccs returns the suffix accounts for a WithdrawWrappedSol
// instruction.
func (s *State) WithdrawSolSufAccs() ([WithdrawSolSufAccsLen]solana.PublicKey, [WithdrawSolSufAccsLen]bool, [WithdrawSolSufAccsLen]bool) {
	sp := s.StakePool
	keys := [WithdrawSolSufAccsLen]solana.PublicKey{
		s.Meta.StakePoolProgram,
		s.Meta.StakePoolAddr,
		s.Meta.WithdrawAuthPda,
		sp.ReserveStake,
		sp.ManagerFeeAccount,
		sp.PoolMint,
		sp.TokenProgramID,
		consts.SysvarClock,
		consts.StakeProgram,
	}
	writable := [WithdrawSolSufAccsLen]bool{false, true, false, true, true, true, false, false, false}
	var signer [WithdrawSolSufAccsLen]bool
	return keys, signer, writable
}

// DepositStakeSufAccs returns the suffix accounts for a DepositStake
// instruction, given the validator the input stake is delegated to.
func (s *State) DepositStakeSufAccs(vote solana.PublicKey) ([DepositStakeSufAccsLen]solana.PublicKey, [DepositStakeSufAccsLen]bool, [DepositStakeSufAccsLen]bool, error) {
	validatorStake, _, err := validatorStakeAddress(vote, s.Meta.StakePoolAddr, s.Meta.StakePoolProgram)
	if err != nil {
		return [DepositStakeSufAccsLen]solana.PublicKey{}, [DepositStakeSufAccsLen]bool{}, [DepositStakeSufAccsLen]bool{}, err
	}
	sp := s.StakePool
	keys := [DepositStakeSufAccsLen]solana.PublicKey{
		s.Meta.StakePoolProgram,
		s.Meta.StakePoolAddr,
		s.Meta.ValidatorList,
		s.Meta.DepositAuthPda,
		s.Meta.WithdrawAuthPda,
		validatorStake,
		sp.ReserveStake,
		sp.ManagerFeeAccount,
		sp.PoolMint,
		sp.TokenProgramID,
		consts.SysvarClock,
		consts.StakeProgram,
	}
	writable := [DepositStakeSufAccsLen]bool{false, true, true, false, false, true, true, true, true, false, false, false}
	var signer [DepositStakeSufAccsLen]bool
	return keys, signer, writable, nil
}

// WithdrawStakeSufAccs returns the suffix accounts for a
// PrefundWithdrawStake instruction, given the chosen withdrawal validator.
// The 10 accounts follow the original SplWithdrawStakeIxSuffixAccs field
// order: spl_stake_pool_program,
// spl_stake_pool, validator_list, withdraw_authority, stake_to_split,
// manager_fee, clock, token_program, stake_program, system_program.
func (s *State) WithdrawStakeSufAccs(vote solana.PublicKey) ([WithdrawStakeSufAccsLen]solana.PublicKey, [WithdrawStakeSufAccsLen]bool, [WithdrawStakeSufAccsLen]bool, error) {
	validatorStake, _, err := validatorStakeAddress(vote, s.Meta.StakePoolAddr, s.Meta.StakePoolProgram)
	if err != nil {
		return [WithdrawStakeSufAccsLen]solana.PublicKey{}, [WithdrawStakeSufAccsLen]bool{}, [WithdrawStakeSufAccsLen]bool{}, err
	}
	sp := s.StakePool
	keys := [WithdrawStakeSufAccsLen]solana.PublicKey{
		s.Meta.StakePoolProgram,
		s.Meta.StakePoolAddr,
		s.Meta.ValidatorList,
		s.Meta.WithdrawAuthPda,
		validatorStake,
		sp.ManagerFeeAccount,
		consts.SysvarClock,
		sp.TokenProgramID,
		consts.StakeProgram,
		consts.SystemProgram,
	}
	writable := [WithdrawStakeSufAccsLen]bool{false, true, true, false, true, true, false, false, false, false}
	var signer [WithdrawStakeSufAccsLen]bool
	return keys, signer, writable, nil
}

func validatorStakeAddress(vote, stakePool, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{vote.Bytes(), stakePool.Bytes()}, program)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("validator_stake")
	}
	return addr, bump, nil
}
