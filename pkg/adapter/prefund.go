package adapter

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/reservemath"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// QuotePrefundWithdrawStake is the default algorithm layered on top of any
// pool's WithdrawStakeQuoter: it quotes the underlying withdrawal, checks
// the reserve has enough liquidity to prefund rent exemption on the new
// stake account, and shaves the flash-loan repayment off the withdrawn
// stake's lamports. See SPEC_FULL.md section 4.3.
func QuotePrefundWithdrawStake(
	w WithdrawStakeQuoter,
	tokens uint64,
	vote *solana.PublicKey,
	reservesBalance reservemath.PoolBalance,
	reservesFee reservemath.FeeEnum,
) (quote.Prefund[quote.WithdrawStakeQuote], error) {
	var zero quote.Prefund[quote.WithdrawStakeQuote]

	wq, err := w.QuoteWithdrawStake(tokens, vote)
	if err != nil {
		return zero, err
	}

	floor := consts.PrefundFlashLoanLamports + consts.ZeroDataAccRentExemptLamports
	if reservesBalance.SolReservesLamports < floor {
		return zero, routererr.PoolErr("Reserve", routererr.ErrNotEnoughLiquidity)
	}

	slumdogTarget, ok := reservesFee.ReverseFromRem(reservesBalance, consts.PrefundFlashLoanLamports)
	if !ok {
		return zero, routererr.InternalErr("Reserve", errInternal("reverse_from_rem had no solution"))
	}

	prefundFee := uint64(0)
	if slumdogTarget > consts.StakeAccountRentExemptLamports {
		prefundFee = slumdogTarget - consts.StakeAccountRentExemptLamports
	}

	if wq.Out.Lamports.Staked < prefundFee {
		return zero, routererr.InternalErr("Reserve", errInternal("withdrawal too small to repay prefund flash loan"))
	}
	wq.Out.Lamports.Staked -= prefundFee
	wq.Out.Lamports.Unstaked = consts.StakeAccountRentExemptLamports

	return quote.Prefund[quote.WithdrawStakeQuote]{Quote: wq, PrefundFee: prefundFee}, nil
}

type internalErrString string

func (e internalErrString) Error() string { return string(e) }

func errInternal(msg string) error { return internalErrString(msg) }
