// Package pkg is the top-level façade: a thin, synchronous wrapper over
// pkg/router's pool cache, pkg/adapter's quoting algorithms and
// pkg/builder's instruction assembly. It holds no state of its own beyond
// what *router.SanctumRouter already owns, per SPEC_FULL.md section 6.
package pkg

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/adapter"
	"github.com/solana-zh/sanctum-router/pkg/builder"
	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/ix"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/router"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// SanctumRouter is the router handle. Every façade function below either
// constructs one or takes one by pointer; none of them hold state outside
// it.
type SanctumRouter = router.SanctumRouter

// SwapMints, InitSpec and their constituent specs are re-exported so
// callers never need to import pkg/router directly.
type (
	SwapMints   = router.SwapMints
	InitSpec    = router.InitSpec
	SplPoolSpec = router.SplPoolSpec
	LidoSpec    = router.LidoSpec
	MarinadeSpec = router.MarinadeSpec
	ReserveSpec = router.ReserveSpec
)

const (
	SwapDepositSol           = router.SwapDepositSol
	SwapDepositStake         = router.SwapDepositStake
	SwapPrefundSwapViaStake  = router.SwapPrefundSwapViaStake
	SwapWithdrawSol          = router.SwapWithdrawSol
	SwapPrefundWithdrawStake = router.SwapPrefundWithdrawStake
)

// NewSanctumRouter constructs an empty router with default ambient config.
func NewSanctumRouter() *SanctumRouter {
	return router.NewSanctumRouter()
}

// InitAccounts lists the pubkeys a caller must fetch before calling Init.
func InitAccounts(splPools []solana.PublicKey) []solana.PublicKey {
	return router.InitAccounts(splPools)
}

// Init populates r's static per-pool metadata from spec. Idempotent.
func Init(r *SanctumRouter, spec InitSpec) error {
	return r.Init(spec)
}

// AccountsToUpdate lists the deduplicated, sorted pubkeys that must be
// fetched to satisfy every pool update swapMints implies.
func AccountsToUpdate(r *SanctumRouter, swapMints []SwapMints) []solana.PublicKey {
	return r.AccountsToUpdate(swapMints)
}

// Update applies swapMints's pool updates from freshly fetched accounts.
func Update(r *SanctumRouter, swapMints []SwapMints, accounts map[solana.PublicKey][]byte) error {
	return r.Update(swapMints, accounts)
}

// QuoteDepositSol quotes depositing lamports of native SOL for mint's LST.
// Per SPEC_FULL.md section 4.1, deposit-SOL carries no router fee.
func QuoteDepositSol(r *SanctumRouter, mint solana.PublicKey, lamports uint64) (quote.WithRouterFee[quote.TokenQuote], error) {
	q, err := r.DepositSolQuoterFor(mint)
	if err != nil {
		return quote.WithRouterFee[quote.TokenQuote]{}, err
	}
	tq, err := q.QuoteDepositSol(lamports)
	if err != nil {
		return quote.WithRouterFee[quote.TokenQuote]{}, err
	}
	return quote.WithRouterFeeToken(tq, consts.DepositSolBps), nil
}

// QuoteWithdrawSol quotes burning tokens of mint's LST for native SOL.
func QuoteWithdrawSol(r *SanctumRouter, mint solana.PublicKey, tokens uint64) (quote.WithRouterFee[quote.TokenQuote], error) {
	q, err := r.WithdrawSolQuoterFor(mint)
	if err != nil {
		return quote.WithRouterFee[quote.TokenQuote]{}, err
	}
	tq, err := q.QuoteWithdrawSol(tokens)
	if err != nil {
		return quote.WithRouterFee[quote.TokenQuote]{}, err
	}
	return quote.WithRouterFeeToken(tq, consts.WithdrawSolBps), nil
}

// QuoteDepositStake quotes consuming stake for mint's LST. This is the
// standalone deposit-stake operation, not the swap-via-stake leg, so the
// router fee always applies at the table's flat 10 bps -- the native-SOL
// exception in section 4.1 is specific to the composed swap-via-stake
// quote below.
func QuoteDepositStake(r *SanctumRouter, mint solana.PublicKey, stake quote.ActiveStakeParams) (quote.WithRouterFee[quote.DepositStakeQuote], error) {
	q, err := r.DepositStakeQuoterFor(mint)
	if err != nil {
		return quote.WithRouterFee[quote.DepositStakeQuote]{}, err
	}
	dsq, err := q.QuoteDepositStake(stake)
	if err != nil {
		return quote.WithRouterFee[quote.DepositStakeQuote]{}, err
	}
	return quote.WithRouterFeeDepositStake(dsq, consts.DepositStakeBps), nil
}

// QuotePrefundWithdrawStake quotes burning tokens of mint's LST for a
// freshly prefunded stake account delegated to vote (or the pool's own
// choice of validator when vote is nil). Per section 4.1, the pre-prefund
// withdraw-stake operation itself carries no router fee; the flash-loan
// prefund fee already deducted by adapter.QuotePrefundWithdrawStake is not
// a router fee and is reported separately via the envelope's PrefundFee.
func QuotePrefundWithdrawStake(r *SanctumRouter, mint solana.PublicKey, tokens uint64, vote *solana.PublicKey) (quote.Prefund[quote.WithdrawStakeQuote], error) {
	if r.Reserve == nil {
		return quote.Prefund[quote.WithdrawStakeQuote]{}, routererr.RouterMissing(consts.NativeMint)
	}
	w, err := r.WithdrawStakeQuoterFor(mint)
	if err != nil {
		return quote.Prefund[quote.WithdrawStakeQuote]{}, err
	}
	bal, fee := r.Reserve.PrefundParams()
	pf, err := adapter.QuotePrefundWithdrawStake(w, tokens, vote, bal, fee)
	if err != nil {
		return quote.Prefund[quote.WithdrawStakeQuote]{}, err
	}
	return pf, nil
}

// PrefundSwapViaStakeResult is the façade's swap-via-stake quote, with the
// deposit leg's router fee already applied.
type PrefundSwapViaStakeResult struct {
	Withdraw quote.Prefund[quote.WithdrawStakeQuote]
	Deposit  quote.WithRouterFee[quote.DepositStakeQuote]
}

// QuotePrefundSwapViaStake quotes the two-leg withdraw-then-deposit route
// from inputMint's LST to outputMint's LST described in SPEC_FULL.md
// section 4.4, iterating the input pool's withdraw-stake candidates until
// one produces a usable deposit quote. Per section 4.1, the deposit leg is
// charged 10 bps unless outputMint is native SOL, in which case it is
// charged none.
func QuotePrefundSwapViaStake(r *SanctumRouter, inputMint, outputMint solana.PublicKey, inputTokens uint64) (PrefundSwapViaStakeResult, error) {
	var zero PrefundSwapViaStakeResult
	if r.Reserve == nil {
		return zero, routererr.RouterMissing(consts.NativeMint)
	}
	candidates, err := r.WithdrawStakeCandidatesFor(inputMint)
	if err != nil {
		return zero, err
	}
	depositQuoter, err := r.DepositStakeQuoterFor(outputMint)
	if err != nil {
		return zero, err
	}
	bal, fee := r.Reserve.PrefundParams()

	result, err := adapter.PrefundSwapViaStake(candidates, depositQuoter, inputTokens, bal, fee)
	if err != nil {
		return zero, err
	}

	depositBps := consts.DepositStakeBps
	if outputMint.Equals(consts.NativeMint) {
		depositBps = 0
	}
	return PrefundSwapViaStakeResult{
		Withdraw: result.Withdraw,
		Deposit:  quote.WithRouterFeeDepositStake(result.Deposit, depositBps),
	}, nil
}

// DepositSolIx, WithdrawSolIx, DepositStakeIx, PrefundWithdrawStakeIx and
// PrefundSwapViaStakeIx build the five user-facing aggregator
// instructions. Each is a pure function of r's current cache plus the
// supplied accounts/amounts -- none of them fetch or mutate state.
func DepositSolIx(r *SanctumRouter, p builder.DepositSolParams, amountLamports uint64) (ix.Instruction, error) {
	return builder.DepositSolIx(r, p, amountLamports)
}

func WithdrawSolIx(r *SanctumRouter, p builder.WithdrawSolParams, amountTokens uint64) (ix.Instruction, error) {
	return builder.WithdrawSolIx(r, p, amountTokens)
}

func DepositStakeIx(r *SanctumRouter, p builder.DepositStakeParams) (ix.Instruction, error) {
	return builder.DepositStakeIx(r, p)
}

func PrefundWithdrawStakeIx(r *SanctumRouter, p builder.PrefundWithdrawStakeParams, amountTokens uint64) (ix.Instruction, error) {
	return builder.PrefundWithdrawStakeIx(r, p, amountTokens)
}

func PrefundSwapViaStakeIx(r *SanctumRouter, p builder.PrefundSwapViaStakeParams, amountTokens uint64) (ix.Instruction, error) {
	return builder.PrefundSwapViaStakeIx(r, p, amountTokens)
}
