package router

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/adapter"
	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/pool/splstakepool"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// DepositSolQuoterFor resolves the adapter that can quote a native-lamport
// deposit into mint, if any.
func (r *SanctumRouter) DepositSolQuoterFor(mint solana.PublicKey) (adapter.DepositSolQuoter, error) {
	if sp, ok := r.Spl[mint]; ok {
		return sp, nil
	}
	if r.Marinade != nil && mint.Equals(r.Marinade.Meta.MsolMint) {
		return r.Marinade, nil
	}
	return nil, routererr.RouterMissing(mint)
}

// WithdrawSolQuoterFor resolves the adapter that can quote burning mint for
// native lamports. Only SPL stake pools support this operation.
func (r *SanctumRouter) WithdrawSolQuoterFor(mint solana.PublicKey) (adapter.WithdrawSolQuoter, error) {
	if sp, ok := r.Spl[mint]; ok {
		return sp, nil
	}
	return nil, routererr.RouterMissing(mint)
}

// DepositStakeQuoterFor resolves the adapter that can quote consuming a
// stake account for mint. mint == consts.NativeMint routes to the reserve
// pool's instant-unstake quoter.
func (r *SanctumRouter) DepositStakeQuoterFor(mint solana.PublicKey) (adapter.DepositStakeQuoter, error) {
	if mint.Equals(consts.NativeMint) {
		if r.Reserve == nil {
			return nil, routererr.RouterMissing(mint)
		}
		return r.Reserve, nil
	}
	if sp, ok := r.Spl[mint]; ok {
		return sp, nil
	}
	if r.Marinade != nil && mint.Equals(r.Marinade.Meta.MsolMint) {
		return r.Marinade, nil
	}
	return nil, routererr.RouterMissing(mint)
}

// WithdrawStakeQuoterFor resolves a single adapter that can quote burning
// mint for a stake account, for callers (PrefundWithdrawStake) that already
// know which validator they want rather than needing candidate iteration.
func (r *SanctumRouter) WithdrawStakeQuoterFor(mint solana.PublicKey) (adapter.WithdrawStakeQuoter, error) {
	if sp, ok := r.Spl[mint]; ok {
		return sp, nil
	}
	if r.Lido != nil && mint.Equals(r.Lido.Meta.StSolMint) {
		return r.Lido, nil
	}
	return nil, routererr.RouterMissing(mint)
}

// splWithdrawCandidate binds one SPL validator-list entry's vote to a
// WithdrawStakeQuoter, ignoring whatever vote the caller passes through --
// each candidate speaks for exactly one validator. This is the concrete
// struct SPEC_FULL.md section 9 refers to when it says the swap-via-stake
// loop iterates a slice of concrete candidates rather than boxing a single
// polymorphic quoter.
type splWithdrawCandidate struct {
	state *splstakepool.State
	vote  solana.PublicKey
}

func (c splWithdrawCandidate) QuoteWithdrawStake(tokens uint64, _ *solana.PublicKey) (quote.WithdrawStakeQuote, error) {
	return c.state.QuoteWithdrawStake(tokens, &c.vote)
}

// WithdrawStakeCandidatesFor expands mint's withdraw-stake quoter into one
// candidate per validator worth trying during swap-via-stake iteration
// (SPEC_FULL.md section 4.4). SPL pools offer one candidate per validator
// in their list, since a wrong-vote or stake-too-small rejection there is
// vote-specific and worth retrying with a different validator. Lido offers
// exactly one candidate (its internally-resolved max-effective-stake
// validator) since its rejections are never vote-specific -- iterating
// Lido's own validator list would just stop the search on the first
// non-eligible entry instead of finding the one that works.
func (r *SanctumRouter) WithdrawStakeCandidatesFor(mint solana.PublicKey) ([]adapter.WithdrawStakeQuoter, error) {
	if sp, ok := r.Spl[mint]; ok {
		if sp.ValidatorList == nil {
			return nil, routererr.AccountMissing(sp.Meta.ValidatorList)
		}
		candidates := make([]adapter.WithdrawStakeQuoter, 0, len(sp.ValidatorList.Validators))
		for _, vsi := range sp.ValidatorList.Validators {
			candidates = append(candidates, splWithdrawCandidate{state: sp, vote: vsi.VoteAccountAddress})
		}
		return candidates, nil
	}
	if r.Lido != nil && mint.Equals(r.Lido.Meta.StSolMint) {
		return []adapter.WithdrawStakeQuoter{r.Lido}, nil
	}
	return nil, routererr.RouterMissing(mint)
}
