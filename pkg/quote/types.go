// Package quote defines the pool-agnostic quote vocabulary shared by every
// per-protocol adapter: plain token quotes, stake-account quotes, and the
// generic envelopes that record router and prefund fees on top of them.
package quote

import "github.com/gagliardetto/solana-go"

// StakeAccountLamports is an active stake account's delegated balance
// (Staked) and non-delegated balance (Unstaked: rent exemption plus any MEV
// tips). Total never overflows uint64 for any valid on-chain state.
type StakeAccountLamports struct {
	Staked   uint64
	Unstaked uint64
}

func (s StakeAccountLamports) Total() uint64 {
	return s.Staked + s.Unstaked
}

// ActiveStakeParams is a stake account plus the validator vote account it is
// delegated to.
type ActiveStakeParams struct {
	Vote     solana.PublicKey
	Lamports StakeAccountLamports
}

// TokenQuote is used for any token<->token leg where both sides are SPL
// token amounts (deposit-SOL, withdraw-SOL). FeeAmount is denominated in
// output tokens.
type TokenQuote struct {
	InAmount  uint64
	OutAmount uint64
	FeeAmount uint64
}

// DepositStakeQuote is the result of consuming a stake account and minting
// LST tokens. Fee is denominated in output tokens.
type DepositStakeQuote struct {
	Inp ActiveStakeParams
	Out uint64
	Fee uint64
}

// WithdrawStakeQuote is the result of burning LST tokens for a stake
// account. Fee is denominated in input (LST) tokens.
type WithdrawStakeQuote struct {
	Inp uint64
	Out ActiveStakeParams
	Fee uint64
}

// WithRouterFee envelopes any quote with the aggregator-level fee extracted
// on top of it, in output-token units.
type WithRouterFee[Q any] struct {
	Quote     Q
	RouterFee uint64
}

// WithRouterFeeZero wraps q with a zero router fee, used whenever the base
// quote's output amount is zero.
func WithRouterFeeZero[Q any](q Q) WithRouterFee[Q] {
	return WithRouterFee[Q]{Quote: q, RouterFee: 0}
}

// Prefund envelopes a WithdrawStakeQuote with the lamports sacrificed from
// the withdrawn stake to repay the rent-exemption flash loan.
type Prefund[Q any] struct {
	Quote      Q
	PrefundFee uint64
}
