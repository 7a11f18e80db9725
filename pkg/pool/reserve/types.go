// Package reserve adapts the Sanctum reserve (instant-unstake) pool to the
// router's deposit-stake quoter interface: depositing a stake account here
// means instantly unstaking it for native SOL, funded out of the pool's
// reserves.
package reserve

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/reservemath"
)

// Pool mirrors the subset of the reserve program's on-chain Pool account
// this router needs.
type Pool struct {
	LpMint              solana.PublicKey
	IncomingStake       uint64
	TotalSolValueLamports uint64
}

// Fee mirrors the reserve program's Fee account: the unstake fee curve.
type Fee struct {
	Kind       uint8 // 0 = flat, 1 = liquidity-linear
	FlatBps    uint64
	MaxLiqBps  uint64
	ZeroLiqBps uint64
}

// ToFeeEnum converts the on-chain Fee representation to the reservemath
// stand-in curve.
func (f Fee) ToFeeEnum() reservemath.FeeEnum {
	if f.Kind == 0 {
		return reservemath.FeeEnum{Kind: reservemath.FeeFlat, FlatBps: f.FlatBps}
	}
	return reservemath.FeeEnum{Kind: reservemath.FeeLiquidityLinear, MaxLiqBps: f.MaxLiqBps, ZeroLiqBps: f.ZeroLiqBps}
}

// ProtocolFee mirrors the reserve program's ProtocolFee account: the
// protocol's own bps cut of a gross unstake amount, charged on top of (not
// out of) the LP curve fee.
type ProtocolFee struct {
	FeeRatioBps uint64
}
