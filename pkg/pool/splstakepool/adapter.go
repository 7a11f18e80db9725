package splstakepool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/pda"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// ImmutableMeta is the per-pool metadata known at Init time, before any
// account data has been fetched.
type ImmutableMeta struct {
	StakePoolProgram solana.PublicKey
	StakePoolAddr    solana.PublicKey
	ValidatorList    solana.PublicKey
	ReserveStake     solana.PublicKey
	DepositAuthPda   solana.PublicKey
	WithdrawAuthPda  solana.PublicKey
}

// NewImmutableMeta derives DepositAuthPda/WithdrawAuthPda and builds an
// ImmutableMeta for a stake pool; ValidatorList/ReserveStake are filled in
// from the pool's own on-chain fields by the caller once it has fetched and
// decoded StakePoolAddr's account data (Init only needs the accounts
// needed to do so, not the decoded struct itself).
func NewImmutableMeta(stakePoolProgram, stakePoolAddr, validatorList, reserveStake solana.PublicKey) (ImmutableMeta, error) {
	depositAuth, _, err := pda.SplDepositAuthority(stakePoolAddr, stakePoolProgram)
	if err != nil {
		return ImmutableMeta{}, err
	}
	withdrawAuth, _, err := pda.SplWithdrawAuthority(stakePoolAddr, stakePoolProgram)
	if err != nil {
		return ImmutableMeta{}, err
	}
	return ImmutableMeta{
		StakePoolProgram: stakePoolProgram,
		StakePoolAddr:    stakePoolAddr,
		ValidatorList:    validatorList,
		ReserveStake:     reserveStake,
		DepositAuthPda:   depositAuth,
		WithdrawAuthPda:  withdrawAuth,
	}, nil
}

// State is the full per-mint adapter state held by the router's cache: the
// immutable metadata plus freshness slots populated by Update.
type State struct {
	Meta ImmutableMeta

	StakePool            *StakePool
	ValidatorList        *ValidatorList
	ReserveStakeLamports *uint64
	CurrEpoch            *uint64
}

// AccountsToUpdate enumerates the pubkeys a full refresh of this pool needs.
func (s *State) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{s.Meta.StakePoolAddr, s.Meta.ValidatorList, s.Meta.ReserveStake, consts.SysvarClock}
}

// Update decodes freshly fetched account bytes into the state's freshness
// slots. accounts must contain, at minimum, StakePoolAddr and
// ValidatorList; ReserveStake is optional (operations that don't need it
// still work without a reserve-stake lamport figure). The clock sysvar is
// not read from accounts: the current epoch arrives as currEpoch.
func (s *State) Update(accounts map[solana.PublicKey][]byte, decodeStakePool func([]byte) (*StakePool, error), decodeValidatorList func([]byte) (*ValidatorList, error), currEpoch *uint64) error {
	spData, ok := accounts[s.Meta.StakePoolAddr]
	if !ok {
		return routererr.AccountMissing(s.Meta.StakePoolAddr)
	}
	sp, err := decodeStakePool(spData)
	if err != nil {
		return routererr.InvalidData("stake_pool", err)
	}

	vlData, ok := accounts[s.Meta.ValidatorList]
	if !ok {
		return routererr.AccountMissing(s.Meta.ValidatorList)
	}
	vl, err := decodeValidatorList(vlData)
	if err != nil {
		return routererr.InvalidData("validator_list", err)
	}

	s.StakePool = sp
	s.ValidatorList = vl
	if rsData, ok := accounts[s.Meta.ReserveStake]; ok {
		lamports := lamportsFromAccountData(rsData)
		s.ReserveStakeLamports = &lamports
	}
	s.CurrEpoch = currEpoch
	return nil
}

// lamportsFromAccountData extracts the raw lamport balance an RPC account
// fetch attaches ahead of the stake account's own data; callers that only
// have data bytes (not the full account envelope) should instead decode
// the stake account and sum its meta lamports themselves. This helper
// exists for the common case where the consumer already resolved the
// lamport balance and encoded it as a little-endian uint64.
func lamportsFromAccountData(data []byte) uint64 {
	if len(data) < 8 {
		return 0
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(data[i]) << (8 * i)
	}
	return v
}
