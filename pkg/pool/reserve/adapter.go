package reserve

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/adapter"
	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/pda"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/reservemath"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// ImmutableMeta is the reserve program's static metadata.
type ImmutableMeta struct {
	Program            solana.PublicKey
	PoolAddr           solana.PublicKey
	FeeAddr            solana.PublicKey
	ProtocolFeeAddr    solana.PublicKey
	PoolSolReservesAddr solana.PublicKey
}

// AdapterState is the reserve pool's full per-router state.
type AdapterState struct {
	Meta ImmutableMeta

	Pool            *Pool
	Fee             *Fee
	ProtocolFee     *ProtocolFee
	PoolSolReserves *uint64

	// pendingSlumdog is non-zero only on a value returned by AfterPrefund:
	// it simulates the liquidity effect of the withdraw leg's slumdog
	// instant-unstake before quoting the deposit leg in a swap-via-stake.
	pendingSlumdog uint64
}

func (a *AdapterState) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{a.Meta.PoolAddr, a.Meta.FeeAddr, a.Meta.ProtocolFeeAddr, a.Meta.PoolSolReservesAddr}
}

func (a *AdapterState) Update(accounts map[solana.PublicKey][]byte, poolSolReservesLamports *uint64) error {
	poolData, ok := accounts[a.Meta.PoolAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.PoolAddr)
	}
	pool, err := DecodePool(poolData)
	if err != nil {
		return routererr.InvalidData("reserve_pool", err)
	}

	feeData, ok := accounts[a.Meta.FeeAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.FeeAddr)
	}
	fee, err := DecodeFee(feeData)
	if err != nil {
		return routererr.InvalidData("reserve_fee", err)
	}

	pfData, ok := accounts[a.Meta.ProtocolFeeAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.ProtocolFeeAddr)
	}
	pf, err := DecodeProtocolFee(pfData)
	if err != nil {
		return routererr.InvalidData("reserve_protocol_fee", err)
	}

	a.Pool = pool
	a.Fee = fee
	a.ProtocolFee = pf
	a.PoolSolReserves = poolSolReservesLamports
	return nil
}

func (a *AdapterState) requireFresh() error {
	if a.Pool == nil {
		return routererr.AccountMissing(a.Meta.PoolAddr)
	}
	if a.Fee == nil {
		return routererr.AccountMissing(a.Meta.FeeAddr)
	}
	if a.PoolSolReserves == nil {
		return routererr.AccountMissing(a.Meta.PoolSolReservesAddr)
	}
	return nil
}

func (a *AdapterState) balance() reservemath.PoolBalance {
	incoming := uint64(0)
	if a.Pool != nil {
		incoming = a.Pool.IncomingStake
	}
	reserves := uint64(0)
	if a.PoolSolReserves != nil {
		reserves = *a.PoolSolReserves
	}
	if a.pendingSlumdog > 0 {
		incoming += a.pendingSlumdog
		outflow := a.Fee.ToFeeEnum().Apply(reservemath.PoolBalance{PoolIncomingStake: incoming, SolReservesLamports: reserves}, a.pendingSlumdog)
		if outflow > reserves {
			outflow = reserves
		}
		reserves -= outflow
	}
	return reservemath.PoolBalance{PoolIncomingStake: incoming, SolReservesLamports: reserves}
}

// PrefundParams returns the reserve's current balance and fee curve, as
// consumed by adapter.QuotePrefundWithdrawStake.
func (a *AdapterState) PrefundParams() (reservemath.PoolBalance, reservemath.FeeEnum) {
	return a.balance(), a.Fee.ToFeeEnum()
}

// QuoteDepositStake quotes an instant-unstake: the stake account's total
// lamports are paid out as native SOL, net of the reserve's LP fee curve
// and the protocol's own cut (the protocol fee account's fee_ratios()), per
// the original's Fee::total() aggregation of both components.
func (a *AdapterState) QuoteDepositStake(stake quote.ActiveStakeParams) (quote.DepositStakeQuote, error) {
	if err := a.requireFresh(); err != nil {
		return quote.DepositStakeQuote{}, err
	}
	if a.ProtocolFee == nil {
		return quote.DepositStakeQuote{}, routererr.AccountMissing(a.Meta.ProtocolFeeAddr)
	}
	bal := a.balance()
	total := stake.Lamports.Total()
	lpOut := a.Fee.ToFeeEnum().Apply(bal, total)
	lpFee := uint64(0)
	if total > lpOut {
		lpFee = total - lpOut
	}
	protocolFee := reservemath.ApplyProtocolFeeBps(total, a.ProtocolFee.FeeRatioBps)
	out := lpOut
	if protocolFee > out {
		protocolFee = out
	}
	out -= protocolFee
	return quote.DepositStakeQuote{Inp: stake, Out: out, Fee: lpFee + protocolFee}, nil
}

// AfterPrefund returns a view of this adapter whose balance has been
// advanced to reflect the withdraw leg's slumdog instant-unstake, per
// SPEC_FULL.md section 4.4.
func (a *AdapterState) AfterPrefund(slumdogTargetLamports uint64) adapter.DepositStakeQuoterAfterPrefund {
	clone := *a
	clone.pendingSlumdog += slumdogTargetLamports
	return &clone
}

// DepositStakeSufAccsLen is the fixed suffix-account count for a
// DepositStake instruction targeting the reserve pool.
const DepositStakeSufAccsLen = 10

// DepositStakeSufAccs returns the suffix accounts for a DepositStake
// instruction targeting the reserve pool.
func (a *AdapterState) DepositStakeSufAccs(stakeAccount solana.PublicKey) ([DepositStakeSufAccsLen]solana.PublicKey, [DepositStakeSufAccsLen]bool, [DepositStakeSufAccsLen]bool, error) {
	record, _, err := pda.ReserveStakeAccountRecord(a.Meta.PoolAddr, stakeAccount, a.Meta.Program)
	if err != nil {
		return [DepositStakeSufAccsLen]solana.PublicKey{}, [DepositStakeSufAccsLen]bool{}, [DepositStakeSufAccsLen]bool{}, err
	}
	keys := [DepositStakeSufAccsLen]solana.PublicKey{
		a.Meta.Program,
		a.Meta.PoolAddr,
		a.Meta.PoolSolReservesAddr,
		a.Meta.FeeAddr,
		a.Meta.ProtocolFeeAddr,
		record,
		consts.SysvarClock,
		consts.SysvarStakeHistory,
		consts.StakeProgram,
		consts.SystemProgram,
	}
	writable := [DepositStakeSufAccsLen]bool{false, true, true, false, true, true, false, false, false, false}
	var signer [DepositStakeSufAccsLen]bool
	return keys, signer, writable, nil
}
