// Package lido adapts the Solido (Lido for Solana) program to the router's
// withdraw-stake quoter interface and supplies its withdraw-stake suffix
// accounts through a method on AdapterState. Lido supports no
// other operation, per SPEC_FULL.md section 4.5.
package lido

import "github.com/gagliardetto/solana-go"

// State mirrors the subset of Solido's on-chain Lido account this router
// needs.
type State struct {
	StSolMint          solana.PublicKey
	ExchangeRate       ExchangeRate
	RewardsWithdrawAuthority solana.PublicKey
}

// ExchangeRate is Solido's epoch-pinned stSOL<->SOL conversion rate.
type ExchangeRate struct {
	ComputedInEpoch  uint64
	StSolSupply      uint64
	SolBalance       uint64
}

// Validator is one entry of Solido's validator list.
type Validator struct {
	VoteAccountAddress    solana.PublicKey
	EffectiveStakeBalance uint64
}

// ValidatorList is the decoded validator-list account.
type ValidatorList struct {
	Validators []Validator
}

// MaxEffectiveStake returns the validator with the greatest effective
// stake balance.
func (v ValidatorList) MaxEffectiveStake() (Validator, bool) {
	var best Validator
	found := false
	for _, val := range v.Validators {
		if !found || val.EffectiveStakeBalance > best.EffectiveStakeBalance {
			best = val
			found = true
		}
	}
	return best, found
}
