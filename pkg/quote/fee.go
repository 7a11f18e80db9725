package quote

import "lukechampine.com/uint128"

// ApplyRouterFeeBps computes the router fee taken on top of out at bps basis
// points: floor(out*bps/10000), floored up to 1 whenever out is non-zero.
// The multiply is carried out in 128 bits so a uint64 out cannot overflow
// before the division, mirroring the teacher's own use of uint128 in its
// swap math. A bps of 0 means the operation charges no router fee at all
// (deposit-SOL, pre-prefund withdraw-stake) and bypasses the max(1,.) floor
// that otherwise applies to every non-zero out.
func ApplyRouterFeeBps(out uint64, bps uint64) (newOut uint64, routerFee uint64) {
	if out == 0 || bps == 0 {
		return out, 0
	}
	product := uint128.From64(out).Mul64(bps)
	fee := product.Div64(10000).Big().Uint64()
	if fee < 1 {
		fee = 1
	}
	if fee > out {
		fee = out
	}
	return out - fee, fee
}

// WithRouterFeeToken applies the router fee to a TokenQuote's OutAmount.
func WithRouterFeeToken(q TokenQuote, bps uint64) WithRouterFee[TokenQuote] {
	if q.OutAmount == 0 {
		return WithRouterFeeZero(q)
	}
	newOut, fee := ApplyRouterFeeBps(q.OutAmount, bps)
	q.OutAmount = newOut
	return WithRouterFee[TokenQuote]{Quote: q, RouterFee: fee}
}

// WithRouterFeeDepositStake applies the router fee to a DepositStakeQuote's
// Out. Callers pass bps=0 for the native-SOL-output exception described in
// SPEC_FULL.md section 4.1.
func WithRouterFeeDepositStake(q DepositStakeQuote, bps uint64) WithRouterFee[DepositStakeQuote] {
	if q.Out == 0 {
		return WithRouterFeeZero(q)
	}
	newOut, fee := ApplyRouterFeeBps(q.Out, bps)
	q.Out = newOut
	return WithRouterFee[DepositStakeQuote]{Quote: q, RouterFee: fee}
}
