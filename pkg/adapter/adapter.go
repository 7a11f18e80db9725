// Package adapter declares the pool-agnostic quoter interfaces the
// per-protocol adapters implement, the vote-specific error classifier, plus
// the default prefund-withdraw-stake algorithm layered on top of any
// WithdrawStakeQuoter. Suffix-account methods are not declared here (see
// below).
package adapter

import (
	"errors"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// DepositSolQuoter quotes depositing native lamports for LST tokens.
type DepositSolQuoter interface {
	QuoteDepositSol(lamports uint64) (quote.TokenQuote, error)
}

// WithdrawSolQuoter quotes burning LST tokens for native lamports.
type WithdrawSolQuoter interface {
	QuoteWithdrawSol(lamports uint64) (quote.TokenQuote, error)
}

// DepositStakeQuoter quotes consuming an active stake account for LST
// tokens.
type DepositStakeQuoter interface {
	QuoteDepositStake(stake quote.ActiveStakeParams) (quote.DepositStakeQuote, error)
}

// WithdrawStakeQuoter quotes burning LST tokens for an active stake
// account. vote is nil when the caller has no validator preference.
type WithdrawStakeQuoter interface {
	QuoteWithdrawStake(tokens uint64, vote *solana.PublicKey) (quote.WithdrawStakeQuote, error)
}

// Suffix-account methods (DepositSolSufAccs, WithdrawSolSufAccs,
// DepositStakeSufAccs, WithdrawStakeSufAccs) are declared directly on each
// pool adapter (splstakepool.State, marinade.AdapterState, lido.AdapterState,
// reserve.AdapterState) rather than as interfaces here. Each returns Go
// array types -- [N]solana.PublicKey, [N]bool, [N]bool -- sized to that
// pool and operation's fixed account count (the DepositSolSufAccsLen /
// WithdrawStakeSufAccsLen / ... constants declared alongside each), so a
// length mistake is a compile error rather than a runtime ix.Meta check.
// Array length is part of a Go type, so a single interface method cannot
// cover implementers whose arrays differ in length; pkg/builder dispatches
// to the concrete adapter types directly instead of through a shared
// interface here.

// StakeQuoteError classifies a quoting failure as retryable with a
// different validator candidate (vote-specific) or terminal for the pool.
type StakeQuoteError interface {
	error
	IsVoteSpecific() bool
}

// voteSpecificErr implements StakeQuoteError over one of the sentinel pool
// errors enumerated in SPEC_FULL.md section 4.2.
type voteSpecificErr struct {
	cause       error
	voteSpecific bool
}

func (e *voteSpecificErr) Error() string       { return e.cause.Error() }
func (e *voteSpecificErr) Unwrap() error       { return e.cause }
func (e *voteSpecificErr) IsVoteSpecific() bool { return e.voteSpecific }

// voteSpecificSet is the closed set of vote-specific sentinel errors named
// in SPEC_FULL.md section 4.2. Lido and Reserve never produce vote-specific
// errors and so never appear here.
var voteSpecificSet = map[error]struct{}{
	routererr.ErrWrongValidatorAccountOrIdx: {},
	routererr.ErrValidatorNotFound:          {},
	routererr.ErrIncorrectDepositVoteAddress: {},
	routererr.ErrIncorrectWithdrawVoteAddr:  {},
	routererr.ErrStakeLamportsNotEqualToMin: {},
}

// Classify wraps cause as a StakeQuoteError, consulting the closed
// vote-specific set. Pass the original sentinel (or a RouterError wrapping
// it) as cause.
func Classify(cause error) StakeQuoteError {
	for sentinel := range voteSpecificSet {
		if errors.Is(cause, sentinel) {
			return &voteSpecificErr{cause: cause, voteSpecific: true}
		}
	}
	return &voteSpecificErr{cause: cause, voteSpecific: false}
}

// IsVoteSpecific reports whether err, if it (or something it wraps)
// satisfies StakeQuoteError, is retryable with a different validator.
func IsVoteSpecific(err error) bool {
	var sqe StakeQuoteError
	if errors.As(err, &sqe) {
		return sqe.IsVoteSpecific()
	}
	for sentinel := range voteSpecificSet {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
