// Package splstakepool adapts the SPL stake-pool program to the router's
// pool-agnostic quoter interfaces and supplies its suffix accounts through
// methods on State.
package splstakepool

import "github.com/gagliardetto/solana-go"

// StakePool mirrors the subset of the SPL stake-pool program's on-chain
// StakePool account this router needs to quote against.
type StakePool struct {
	AccountType                 uint8
	Manager                     solana.PublicKey
	Staker                      solana.PublicKey
	StakeDepositAuthority       solana.PublicKey
	StakeWithdrawBumpSeed       uint8
	ValidatorList               solana.PublicKey
	ReserveStake                solana.PublicKey
	PoolMint                    solana.PublicKey
	ManagerFeeAccount           solana.PublicKey
	TokenProgramID              solana.PublicKey
	TotalLamports               uint64
	PoolTokenSupply             uint64
	LastUpdateEpoch             uint64
	Lockup                      [24]byte
	EpochFee                    Fee
	NextEpochFee                OptionFee
	PreferredDepositValidator   OptionPubkey
	PreferredWithdrawValidator  OptionPubkey
	StakeDepositFee             Fee
	StakeWithdrawalFee          Fee
	NextStakeWithdrawalFee      OptionFee
	StakeReferralFee            uint8
	SolDepositAuthority         OptionPubkey
	SolDepositFee               Fee
	SolReferralFee              uint8
	SolWithdrawAuthority        OptionPubkey
	SolWithdrawalFee            Fee
	NextSolWithdrawalFee        OptionFee
	LastEpochPoolTokenSupply    uint64
	LastEpochTotalLamports      uint64
}

// Fee is a numerator/denominator ratio, as the SPL stake-pool program
// encodes every fee field.
type Fee struct {
	Numerator   uint64
	Denominator uint64
}

// Apply returns floor(amount * f.Numerator / f.Denominator), or 0 if the
// denominator is zero (the on-chain convention for "no fee configured").
func (f Fee) Apply(amount uint64) uint64 {
	if f.Denominator == 0 {
		return 0
	}
	return amount * f.Numerator / f.Denominator
}

// OptionFee and OptionPubkey model Borsh's Option<T> as an explicit
// presence flag followed by the value, matching the on-chain encoding.
type OptionFee struct {
	IsSome bool
	Fee    Fee
}

type OptionPubkey struct {
	IsSome bool
	Key    solana.PublicKey
}

// ValidatorStakeInfo is one entry of the stake pool's validator list.
type ValidatorStakeInfo struct {
	ActiveStakeLamports      uint64
	TransientStakeLamports   uint64
	LastUpdateEpoch          uint64
	TransientSeedSuffix      uint64
	UnusedU32                uint32
	ValidatorSeedSuffix      uint32
	Status                   uint8
	VoteAccountAddress       solana.PublicKey
}

// ValidatorList is the stake pool's validator-list account: a header plus
// a flat array of per-validator entries.
type ValidatorList struct {
	AccountType    uint8
	MaxValidators  uint32
	Validators     []ValidatorStakeInfo
}

// FindByVote returns the validator entry delegated to vote, if present.
func (v ValidatorList) FindByVote(vote solana.PublicKey) (ValidatorStakeInfo, bool) {
	for _, vsi := range v.Validators {
		if vsi.VoteAccountAddress.Equals(vote) {
			return vsi, true
		}
	}
	return ValidatorStakeInfo{}, false
}

// MaxActiveStake returns the validator entry with the greatest active
// stake, excluding any vote in excludeVotes.
func (v ValidatorList) MaxActiveStake(excludeVotes ...solana.PublicKey) (ValidatorStakeInfo, bool) {
	excluded := func(vote solana.PublicKey) bool {
		for _, e := range excludeVotes {
			if e.Equals(vote) {
				return true
			}
		}
		return false
	}
	var best ValidatorStakeInfo
	found := false
	for _, vsi := range v.Validators {
		if excluded(vsi.VoteAccountAddress) {
			continue
		}
		if !found || vsi.ActiveStakeLamports > best.ActiveStakeLamports {
			best = vsi
			found = true
		}
	}
	return best, found
}
