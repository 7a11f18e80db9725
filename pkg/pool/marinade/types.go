// Package marinade adapts the Marinade liquid-staking program to the
// router's pool-agnostic quoter interfaces and supplies its suffix accounts
// through methods on AdapterState.
package marinade

import "github.com/gagliardetto/solana-go"

// State mirrors the subset of Marinade's on-chain State account this
// router needs to quote against.
type State struct {
	MsolMint                 solana.PublicKey
	AdminAuthority           solana.PublicKey
	ValidatorSystem          ValidatorSystem
	LiqPool                  LiqPool
	AvailableReserveBalance  uint64
	MsolSupply               uint64
	RentExemptForTokenAcc    uint64
	RewardFeeBp              uint16
}

type ValidatorSystem struct {
	ValidatorList            solana.PublicKey
	ManagerAuthority         solana.PublicKey
	TotalValidatorScore      uint32
	TotalActiveBalance       uint64
	AutoAddValidatorEnabled  uint8
}

type LiqPool struct {
	LpMint        solana.PublicKey
	SolLegPda     solana.PublicKey
	MsolLeg       solana.PublicKey
	LpLiquidityTarget uint64
}

// ValidatorRecord is one entry of Marinade's validator list.
type ValidatorRecord struct {
	ValidatorAccount solana.PublicKey
	ActiveBalance    uint64
	Score            uint32
}

// ValidatorRecords is the decoded validator-list account.
type ValidatorRecords struct {
	Validators []ValidatorRecord
}

func (v ValidatorRecords) Contains(vote solana.PublicKey) bool {
	for _, r := range v.Validators {
		if r.ValidatorAccount.Equals(vote) {
			return true
		}
	}
	return false
}
