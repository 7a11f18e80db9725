package adapter

import (
	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/reservemath"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// PrefundSwapViaStakeResult pairs the withdraw leg and deposit leg quotes
// found by PrefundSwapViaStake.
type PrefundSwapViaStakeResult struct {
	Withdraw quote.Prefund[quote.WithdrawStakeQuote]
	Deposit  quote.DepositStakeQuote
}

// DepositStakeQuoterAfterPrefund is implemented by deposit quoters (only
// the reserve pool, in practice) whose liquidity must be advanced to
// reflect the withdraw leg's slumdog instant-unstake before quoting the
// deposit leg. Adapters that don't need this simulation simply don't
// implement it; PrefundSwapViaStake checks with a type assertion.
type DepositStakeQuoterAfterPrefund interface {
	DepositStakeQuoter
	AfterPrefund(slumdogTargetLamports uint64) DepositStakeQuoterAfterPrefund
}

// PrefundSwapViaStake implements the candidate-iteration loop from
// SPEC_FULL.md section 4.4: each withdrawCandidate is one validator's worth
// of withdraw-stake liquidity on the input pool; the first candidate whose
// withdraw quote and subsequent deposit quote both succeed wins. Errors
// classified as vote-specific advance to the next candidate; any other
// error stops the search immediately.
func PrefundSwapViaStake(
	withdrawCandidates []WithdrawStakeQuoter,
	depositQuoter DepositStakeQuoter,
	inputTokens uint64,
	reservesBalance reservemath.PoolBalance,
	reservesFee reservemath.FeeEnum,
) (PrefundSwapViaStakeResult, error) {
	var zero PrefundSwapViaStakeResult

	for _, w := range withdrawCandidates {
		wsq, err := QuotePrefundWithdrawStake(w, inputTokens, nil, reservesBalance, reservesFee)
		if err != nil {
			if IsVoteSpecific(err) {
				continue
			}
			return zero, err
		}

		dq := depositQuoter
		if afp, ok := dq.(DepositStakeQuoterAfterPrefund); ok {
			slumdogTarget := wsq.PrefundFee + consts.StakeAccountRentExemptLamports
			dq = afp.AfterPrefund(slumdogTarget)
		}

		dsq, err := dq.QuoteDepositStake(wsq.Quote.Out)
		if err != nil {
			if IsVoteSpecific(err) {
				continue
			}
			return zero, routererr.PoolErr("DepositStake", err)
		}

		return PrefundSwapViaStakeResult{Withdraw: wsq, Deposit: dsq}, nil
	}

	return zero, routererr.PoolErr("SwapViaStake", routererr.ErrNoMatch)
}
