// Package reservemath implements the Sanctum reserve pool's unstake fee
// curve: a flat-or-liquidity-linear fee ratio over an instant-unstake, plus
// its inverse (solving for the gross unstake amount that yields a target
// net outflow from the pool's SOL reserves).
//
// The upstream reserve pool ships this as a standalone Rust crate; no Go
// port exists in the available corpus, so this is a from-scratch
// reimplementation of the same two-variant fee curve, built the way the
// teacher reimplements constant-product and concentrated-liquidity math for
// Raydium rather than depending on an unavailable upstream crate.
package reservemath

import "cosmossdk.io/math"

// PoolBalance is the reserve pool's liquidity snapshot consulted by every
// unstake quote.
type PoolBalance struct {
	PoolIncomingStake   uint64
	SolReservesLamports uint64
}

// FeeKind selects one of the two fee curve shapes the on-chain reserve pool
// supports.
type FeeKind int

const (
	// FeeFlat charges a constant bps fee regardless of pool utilization.
	FeeFlat FeeKind = iota
	// FeeLiquidityLinear interpolates linearly between MaxLiqBps (fee at
	// zero utilization) and ZeroLiqBps (fee once reserves are fully
	// drained), based on remaining reserves after the unstake.
	FeeLiquidityLinear
)

// FeeEnum is the reserve pool's configured fee curve.
type FeeEnum struct {
	Kind FeeKind

	// FeeFlat
	FlatBps uint64

	// FeeLiquidityLinear: fee (in bps) at max liquidity and at zero
	// liquidity remaining, interpolated by remaining-reserves fraction.
	MaxLiqBps  uint64
	ZeroLiqBps uint64
}

func clampBps(bps uint64) uint64 {
	if bps > 10000 {
		return 10000
	}
	return bps
}

// bpsAtRemaining returns the fee bps that applies when `remaining` lamports
// are left in the reserve out of a `total` lamport capacity, after the
// hypothetical unstake completes.
func (f FeeEnum) bpsAtRemaining(remaining, total uint64) uint64 {
	switch f.Kind {
	case FeeFlat:
		return clampBps(f.FlatBps)
	case FeeLiquidityLinear:
		if total == 0 {
			return clampBps(f.ZeroLiqBps)
		}
		// linear interpolation: bps = zero - (zero-max)*remaining/total
		maxBps := math.NewIntFromUint64(clampBps(f.MaxLiqBps))
		zeroBps := math.NewIntFromUint64(clampBps(f.ZeroLiqBps))
		rem := math.NewIntFromUint64(remaining)
		tot := math.NewIntFromUint64(total)
		diff := zeroBps.Sub(maxBps)
		adj := diff.Mul(rem).Quo(tot)
		bps := zeroBps.Sub(adj)
		if bps.IsNegative() {
			return 0
		}
		return clampBps(bps.Uint64())
	default:
		return 0
	}
}

// Apply quotes an instant-unstake of `stakeLamports` against a pool holding
// `bal`, returning the lamports paid out of the reserve (net of fee).
func (f FeeEnum) Apply(bal PoolBalance, stakeLamports uint64) uint64 {
	total := bal.SolReservesLamports
	remainingAfter := uint64(0)
	if bal.SolReservesLamports > stakeLamports {
		remainingAfter = bal.SolReservesLamports - stakeLamports
	}
	bps := f.bpsAtRemaining(remainingAfter, total)
	out := math.NewIntFromUint64(stakeLamports).
		Mul(math.NewIntFromUint64(10000 - bps)).
		Quo(math.NewIntFromUint64(10000))
	return out.Uint64()
}

// ApplyProtocolFeeBps charges the protocol's own cut of a gross unstake
// amount, on top of (not out of) the LP curve fee Apply already took: the
// upstream UnstakeQuote.fee the reserve program returns aggregates both the
// LP curve's share and the protocol vault's share via Fee::total(). Floors
// down, so a grossLamports smaller than 10000/bps charges zero protocol fee.
func ApplyProtocolFeeBps(grossLamports uint64, bps uint64) uint64 {
	if grossLamports == 0 || bps == 0 {
		return 0
	}
	fee := math.NewIntFromUint64(grossLamports).
		Mul(math.NewIntFromUint64(bps)).
		Quo(math.NewIntFromUint64(10000))
	return fee.Uint64()
}

// ReverseFromRem solves for the gross stake-lamports unstake amount that
// nets exactly `targetOut` lamports out of the reserve, given its current
// balance. Returns false if no solution exists (target exceeds what the
// reserve can ever pay out, i.e. fee would have to be negative).
//
// This is the inverse named in SPEC_FULL.md section 9 ("Prefund flash-loan
// coupling"): the prefund algorithm needs the gross unstake amount that
// repays exactly PrefundFlashLoanLamports net of the reserve's own fee.
func (f FeeEnum) ReverseFromRem(bal PoolBalance, targetOut uint64) (uint64, bool) {
	if targetOut == 0 {
		return 0, true
	}
	if bal.SolReservesLamports == 0 {
		return 0, false
	}
	// Binary search for the smallest gross amount g such that
	// Apply(bal, g) >= targetOut. The fee curve is monotonic
	// non-decreasing in the unstake size for both supported kinds, so a
	// binary search converges.
	lo, hi := uint64(0), bal.SolReservesLamports
	if f.Apply(bal, hi) < targetOut {
		return 0, false
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		if f.Apply(bal, mid) >= targetOut {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if f.Apply(bal, lo) < targetOut {
		return 0, false
	}
	return lo, true
}
