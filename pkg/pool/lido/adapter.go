package lido

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// ImmutableMeta is Solido's static program/account metadata.
type ImmutableMeta struct {
	Program              solana.PublicKey
	StateAddr            solana.PublicKey
	ValidatorListAddr    solana.PublicKey
	WithdrawAuthorityPda solana.PublicKey
	StSolMint            solana.PublicKey
}

// AdapterState is Solido's full per-router state.
type AdapterState struct {
	Meta ImmutableMeta

	State         *State
	ValidatorList *ValidatorList
	CurrEpoch     *uint64
}

func (a *AdapterState) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{a.Meta.StateAddr, a.Meta.ValidatorListAddr}
}

func (a *AdapterState) Update(accounts map[solana.PublicKey][]byte, currEpoch *uint64) error {
	stData, ok := accounts[a.Meta.StateAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.StateAddr)
	}
	st, err := DecodeState(stData)
	if err != nil {
		return routererr.InvalidData("lido_state", err)
	}

	vlData, ok := accounts[a.Meta.ValidatorListAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.ValidatorListAddr)
	}
	vl, err := DecodeValidatorList(vlData)
	if err != nil {
		return routererr.InvalidData("lido_validator_list", err)
	}

	a.State = st
	a.ValidatorList = vl
	a.CurrEpoch = currEpoch
	return nil
}

func maxWithdrawLamports(effectiveStakeBalance uint64) uint64 {
	return effectiveStakeBalance
}

// QuoteWithdrawStake implements Solido's withdraw-stake rules from
// SPEC_FULL.md section 4.5: only the maximum-effective-stake validator is
// eligible, exchange rate must be fresh this epoch, and the requested
// amount must not exceed that validator's withdrawable balance.
func (a *AdapterState) QuoteWithdrawStake(tokens uint64, vote *solana.PublicKey) (quote.WithdrawStakeQuote, error) {
	if a.State == nil || a.ValidatorList == nil {
		return quote.WithdrawStakeQuote{}, routererr.AccountMissing(a.Meta.StateAddr)
	}
	if a.CurrEpoch != nil && *a.CurrEpoch > a.State.ExchangeRate.ComputedInEpoch {
		return quote.WithdrawStakeQuote{}, routererr.PoolErr("Lido", routererr.ErrExchangeRateStale)
	}

	best, ok := a.ValidatorList.MaxEffectiveStake()
	if !ok {
		return quote.WithdrawStakeQuote{}, routererr.PoolErr("Lido", routererr.ErrNoMatch)
	}
	if vote != nil && !vote.Equals(best.VoteAccountAddress) {
		return quote.WithdrawStakeQuote{}, routererr.UserErr("Lido", routererr.ErrValidatorWithMoreStake)
	}

	lamports := lamportsForStSol(tokens, a.State.ExchangeRate)
	if lamports > maxWithdrawLamports(best.EffectiveStakeBalance) {
		return quote.WithdrawStakeQuote{}, routererr.UserErr("Lido", routererr.ErrInvalidAmount)
	}

	return quote.WithdrawStakeQuote{
		Inp: tokens,
		Out: quote.ActiveStakeParams{
			Vote: best.VoteAccountAddress,
			Lamports: quote.StakeAccountLamports{
				Staked:   lamports,
				Unstaked: 0,
			},
		},
		Fee: 0,
	}, nil
}

func lamportsForStSol(tokens uint64, rate ExchangeRate) uint64 {
	if rate.StSolSupply == 0 {
		return tokens
	}
	return tokens * rate.SolBalance / rate.StSolSupply
}

// WithdrawStakeSufAccsLen is the fixed suffix-account count for a
// PrefundWithdrawStake instruction targeting Solido.
const WithdrawStakeSufAccsLen = 5

// WithdrawStakeSufAccs returns the suffix accounts for a
// PrefundWithdrawStake instruction; it re-validates that vote matches the
// largest-stake validator (a Lido-specific check performed again at
// instruction-build time, not just at quote time, per the original
// binding's prefund_withdraw_stake_ix).
func (a *AdapterState) WithdrawStakeSufAccs(vote solana.PublicKey) ([WithdrawStakeSufAccsLen]solana.PublicKey, [WithdrawStakeSufAccsLen]bool, [WithdrawStakeSufAccsLen]bool, error) {
	best, ok := a.ValidatorList.MaxEffectiveStake()
	if !ok {
		return [WithdrawStakeSufAccsLen]solana.PublicKey{}, [WithdrawStakeSufAccsLen]bool{}, [WithdrawStakeSufAccsLen]bool{}, routererr.PoolErr("Lido", routererr.ErrNoMatch)
	}
	if !vote.Equals(best.VoteAccountAddress) {
		return [WithdrawStakeSufAccsLen]solana.PublicKey{}, [WithdrawStakeSufAccsLen]bool{}, [WithdrawStakeSufAccsLen]bool{}, routererr.UserErr("Lido", routererr.ErrValidatorWithMoreStake)
	}
	keys := [WithdrawStakeSufAccsLen]solana.PublicKey{
		a.Meta.Program,
		a.Meta.StateAddr,
		a.Meta.ValidatorListAddr,
		a.Meta.WithdrawAuthorityPda,
		best.VoteAccountAddress,
	}
	writable := [WithdrawStakeSufAccsLen]bool{false, true, true, false, false}
	var signer [WithdrawStakeSufAccsLen]bool
	return keys, signer, writable, nil
}
