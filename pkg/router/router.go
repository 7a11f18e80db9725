// Package router implements the SanctumRouter pool cache: per-protocol
// adapter state keyed by LST mint, the typed partial-update lifecycle
// described in SPEC_FULL.md section 4.7, and mint-dispatch lookups the
// quote/ix façade builds on.
package router

import (
	"sort"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/config"
	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/pool/lido"
	"github.com/solana-zh/sanctum-router/pkg/pool/marinade"
	"github.com/solana-zh/sanctum-router/pkg/pool/reserve"
	"github.com/solana-zh/sanctum-router/pkg/pool/splstakepool"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// PoolUpdateType is one of the four refreshable operation classes named in
// SPEC_FULL.md section 4.7.
type PoolUpdateType int

const (
	UpdateDepositSol PoolUpdateType = iota
	UpdateDepositStake
	UpdateWithdrawSol
	UpdateWithdrawStake
)

func (t PoolUpdateType) String() string {
	switch t {
	case UpdateDepositSol:
		return "DepositSol"
	case UpdateDepositStake:
		return "DepositStake"
	case UpdateWithdrawSol:
		return "WithdrawSol"
	case UpdateWithdrawStake:
		return "WithdrawStake"
	default:
		return "Unknown"
	}
}

// PoolUpdate is a single (mint, type) refresh request.
type PoolUpdate struct {
	Mint solana.PublicKey
	Type PoolUpdateType
}

// SwapMints describes a route's input/output mints and expands to the set
// of pool updates required to quote or build it, per the table in
// SPEC_FULL.md section 4.7.
type SwapMints struct {
	Kind SwapMintsKind
	Inp  solana.PublicKey
	Out  solana.PublicKey
}

type SwapMintsKind int

const (
	SwapDepositSol SwapMintsKind = iota
	SwapDepositStake
	SwapPrefundSwapViaStake
	SwapWithdrawSol
	SwapPrefundWithdrawStake
)

// Expand maps a SwapMints value to its constituent pool updates.
func (s SwapMints) Expand() []PoolUpdate {
	switch s.Kind {
	case SwapDepositSol:
		return []PoolUpdate{{Mint: s.Out, Type: UpdateDepositSol}}
	case SwapDepositStake:
		return []PoolUpdate{{Mint: s.Out, Type: UpdateDepositStake}}
	case SwapPrefundSwapViaStake:
		return []PoolUpdate{
			{Mint: s.Inp, Type: UpdateWithdrawStake},
			{Mint: s.Out, Type: UpdateDepositStake},
			{Mint: consts.NativeMint, Type: UpdateDepositStake},
		}
	case SwapWithdrawSol:
		return []PoolUpdate{{Mint: s.Inp, Type: UpdateWithdrawSol}}
	case SwapPrefundWithdrawStake:
		return []PoolUpdate{
			{Mint: s.Inp, Type: UpdateWithdrawStake},
			{Mint: consts.NativeMint, Type: UpdateDepositStake},
		}
	default:
		return nil
	}
}

// SanctumRouter is the top-level pool cache. It owns all per-protocol
// adapter state; adapters are constructed as views into it on demand.
type SanctumRouter struct {
	cfg config.Config

	CurrEpoch *uint64

	Lido     *lido.AdapterState
	Marinade *marinade.AdapterState
	Reserve  *reserve.AdapterState
	Spl      map[solana.PublicKey]*splstakepool.State // keyed by pool mint
}

// NewSanctumRouter constructs an empty router with default ambient config.
func NewSanctumRouter() *SanctumRouter {
	return NewSanctumRouterWithConfig(config.Default())
}

// NewSanctumRouterWithConfig constructs an empty router with the given
// ambient config.
func NewSanctumRouterWithConfig(cfg config.Config) *SanctumRouter {
	return &SanctumRouter{cfg: cfg, Spl: make(map[solana.PublicKey]*splstakepool.State)}
}

// FindSplByMint looks up the SPL adapter for pool-token mint, if any.
func (r *SanctumRouter) FindSplByMint(mint solana.PublicKey) (*splstakepool.State, bool) {
	s, ok := r.Spl[mint]
	return s, ok
}

// AccountsToUpdate deduplicates and sorts the pubkeys needed to satisfy
// every PoolUpdate implied by swapMints.
func (r *SanctumRouter) AccountsToUpdate(swapMints []SwapMints) []solana.PublicKey {
	seen := make(map[solana.PublicKey]struct{})
	var out []solana.PublicKey
	add := func(keys []solana.PublicKey) {
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}

	for _, sm := range swapMints {
		for _, upd := range sm.Expand() {
			add(r.accountsForUpdate(upd))
		}
	}
	add([]solana.PublicKey{consts.SysvarClock})

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (r *SanctumRouter) accountsForUpdate(u PoolUpdate) []solana.PublicKey {
	if u.Mint.Equals(consts.NativeMint) {
		if r.Reserve != nil {
			return r.Reserve.AccountsToUpdate()
		}
		return nil
	}
	if r.Lido != nil && u.Mint.Equals(r.Lido.Meta.StSolMint) {
		return r.Lido.AccountsToUpdate()
	}
	if sp, ok := r.Spl[u.Mint]; ok {
		return sp.AccountsToUpdate()
	}
	if r.Marinade != nil && u.Mint.Equals(r.Marinade.Meta.MsolMint) {
		return r.Marinade.AccountsToUpdate()
	}
	return nil
}

// Update applies each (mint, type) pool update in order, logging progress
// through the ambient logger. On the first error, earlier updates remain
// committed and the error is returned immediately -- Update is not atomic
// across multiple pools, per SPEC_FULL.md section 5.
func (r *SanctumRouter) Update(swapMints []SwapMints, accounts map[solana.PublicKey][]byte) error {
	var clock *Clock
	if data, ok := accounts[consts.SysvarClock]; ok {
		c, err := DecodeClock(data)
		if err != nil {
			return routererr.InvalidData("clock", err)
		}
		clock = c
		r.CurrEpoch = &c.Epoch
	}

	for _, sm := range swapMints {
		for _, upd := range sm.Expand() {
			if err := r.applyUpdate(upd, accounts, clock); err != nil {
				return err
			}
			r.cfg.Logger.Debug().Str("mint", upd.Mint.String()).Str("type", upd.Type.String()).Msg("pool update applied")
		}
	}
	return nil
}

func (r *SanctumRouter) applyUpdate(u PoolUpdate, accounts map[solana.PublicKey][]byte, clock *Clock) error {
	if u.Mint.Equals(consts.NativeMint) {
		if r.Reserve == nil {
			return routererr.RouterMissing(u.Mint)
		}
		if u.Type != UpdateDepositStake {
			return routererr.UnsupportedUpdate(u.Type.String(), u.Mint)
		}
		var reserves *uint64
		if data, ok := accounts[r.Reserve.Meta.PoolSolReservesAddr]; ok {
			v := lamportsFromAccountData(data)
			reserves = &v
		}
		return r.Reserve.Update(accounts, reserves)
	}

	if r.Lido != nil && u.Mint.Equals(r.Lido.Meta.StSolMint) {
		if u.Type != UpdateWithdrawStake {
			return routererr.UnsupportedUpdate(u.Type.String(), u.Mint)
		}
		var epoch *uint64
		if clock != nil {
			epoch = &clock.Epoch
		}
		return r.Lido.Update(accounts, epoch)
	}

	if sp, ok := r.Spl[u.Mint]; ok {
		var epoch *uint64
		if clock != nil {
			epoch = &clock.Epoch
		}
		return sp.Update(accounts, splstakepool.DecodeStakePool, splstakepool.DecodeValidatorList, epoch)
	}

	if r.Marinade != nil && u.Mint.Equals(r.Marinade.Meta.MsolMint) {
		if u.Type != UpdateDepositSol && u.Type != UpdateDepositStake {
			return routererr.UnsupportedUpdate(u.Type.String(), u.Mint)
		}
		return r.Marinade.Update(accounts)
	}

	return routererr.RouterMissing(u.Mint)
}

func lamportsFromAccountData(data []byte) uint64 {
	if len(data) < 8 {
		return 0
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(data[i]) << (8 * i)
	}
	return v
}
