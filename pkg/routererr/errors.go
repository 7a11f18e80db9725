// Package routererr defines the closed error taxonomy the router and its
// adapters report through. Every public entry point returns one of these
// types (recoverable via errors.As), never a bare fmt.Errorf string.
package routererr

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Tag is the taxonomy code prefixed onto every RouterError's message so a
// consumer can recover it by splitting on ":" without an errors.As call.
type Tag string

const (
	TagAccountMissing    Tag = "AccountMissing"
	TagInvalidPda        Tag = "InvalidPda"
	TagInvalidData       Tag = "InvalidData"
	TagRouterMissing     Tag = "RouterMissing"
	TagUnsupportedUpdate Tag = "UnsupportedUpdate"
	TagUserErr           Tag = "UserErr"
	TagPoolErr           Tag = "PoolErr"
	TagInternalErr       Tag = "InternalErr"
)

// RouterError is the common wrapper every taxonomy constructor below
// produces. Domain records which layer raised it (Reserve, WithdrawStake,
// DepositStake, Pool, ...); Cause is the wrapped original error, if any.
type RouterError struct {
	Tag     Tag
	Domain  string
	Message string
	Cause   error
}

func (e *RouterError) Error() string {
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Domain != "" {
		return fmt.Sprintf("%s(%s): %s", e.Tag, e.Domain, msg)
	}
	return fmt.Sprintf("%s: %s", e.Tag, msg)
}

func (e *RouterError) Unwrap() error { return e.Cause }

func newErr(tag Tag, domain, format string, args ...any) *RouterError {
	return &RouterError{Tag: tag, Domain: domain, Message: fmt.Sprintf(format, args...)}
}

// AccountMissing reports a required pubkey that was not present in the
// supplied account map.
func AccountMissing(key solana.PublicKey) *RouterError {
	return newErr(TagAccountMissing, "", "account %s missing from account map", key)
}

// InvalidPda reports PDA derivation failure (all candidate bumps exhausted).
func InvalidPda(context string) *RouterError {
	return newErr(TagInvalidPda, "", "invalid PDA: %s", context)
}

// InvalidData reports an account whose bytes failed to deserialize.
func InvalidData(context string, cause error) *RouterError {
	e := newErr(TagInvalidData, "", "invalid data: %s", context)
	e.Cause = cause
	return e
}

// RouterMissing reports that no adapter has been initialized for the given
// mint.
func RouterMissing(mint solana.PublicKey) *RouterError {
	return newErr(TagRouterMissing, "", "no router initialized for mint %s", mint)
}

// UnsupportedUpdate reports an update type a pool does not support.
func UnsupportedUpdate(updateType string, mint solana.PublicKey) *RouterError {
	return newErr(TagUnsupportedUpdate, "", "%s not supported by pool of mint %s", updateType, mint)
}

// UserErr wraps a pool's user-input-class error (amount too low, wrong
// validator, ...).
func UserErr(domain string, cause error) *RouterError {
	e := newErr(TagUserErr, domain, "%s", cause)
	e.Cause = cause
	return e
}

// PoolErr wraps a pool's transient/policy-class error (liquidity, pause,
// staleness, ...).
func PoolErr(domain string, cause error) *RouterError {
	e := newErr(TagPoolErr, domain, "%s", cause)
	e.Cause = cause
	return e
}

// InternalErr reports a pool-math calculation failure or invariant breach.
func InternalErr(domain string, cause error) *RouterError {
	e := newErr(TagInternalErr, domain, "%s", cause)
	e.Cause = cause
	return e
}

// Is lets errors.Is(err, target) match a *RouterError target on its Tag,
// and also on its Domain when the target's Domain is non-empty.
func (e *RouterError) Is(target error) bool {
	var re *RouterError
	if errors.As(target, &re) {
		return re.Tag == e.Tag && (re.Domain == "" || re.Domain == e.Domain)
	}
	return false
}

// Sentinel pool-condition errors shared across adapters; wrapped by PoolErr
// or UserErr as appropriate for the call site.
var (
	ErrNotEnoughLiquidity          = errors.New("not enough liquidity")
	ErrProgramIsPaused             = errors.New("program is paused")
	ErrStakeListAndPoolOutOfDate   = errors.New("stake list and pool out of date")
	ErrNoMatch                     = errors.New("no match")
	ErrValidatorNotFound           = errors.New("validator not found")
	ErrIncorrectDepositVoteAddress = errors.New("incorrect deposit vote address")
	ErrIncorrectWithdrawVoteAddr   = errors.New("incorrect withdraw vote address")
	ErrStakeLamportsNotEqualToMin  = errors.New("stake lamports not equal to minimum")
	ErrWrongValidatorAccountOrIdx  = errors.New("wrong validator account or index")
	ErrValidatorWithMoreStake      = errors.New("validator with more stake exists")
	ErrExchangeRateStale           = errors.New("exchange rate not updated in this epoch")
	ErrInvalidAmount               = errors.New("invalid amount")
)
