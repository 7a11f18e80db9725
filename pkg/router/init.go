package router

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/pool/lido"
	"github.com/solana-zh/sanctum-router/pkg/pool/marinade"
	"github.com/solana-zh/sanctum-router/pkg/pool/reserve"
	"github.com/solana-zh/sanctum-router/pkg/pool/splstakepool"
)

// SplPoolSpec names one SPL stake pool's static accounts, supplied by the
// caller when constructing the router.
type SplPoolSpec struct {
	Program       solana.PublicKey
	StakePool     solana.PublicKey
	ValidatorList solana.PublicKey
	ReserveStake  solana.PublicKey
	PoolMint      solana.PublicKey
}

// LidoSpec names Solido's static accounts.
type LidoSpec struct {
	Program              solana.PublicKey
	StateAddr            solana.PublicKey
	ValidatorListAddr    solana.PublicKey
	WithdrawAuthorityPda solana.PublicKey
	StSolMint            solana.PublicKey
}

// MarinadeSpec names Marinade's static accounts.
type MarinadeSpec struct {
	Program           solana.PublicKey
	StateAddr         solana.PublicKey
	ValidatorList     solana.PublicKey
	MsolMint          solana.PublicKey
	MsolMintAuthority solana.PublicKey
	LiqPoolSolLegPda  solana.PublicKey
	LiqPoolMsolLeg    solana.PublicKey
}

// ReserveSpec names the Sanctum reserve pool's static accounts.
type ReserveSpec struct {
	Program             solana.PublicKey
	PoolAddr            solana.PublicKey
	FeeAddr             solana.PublicKey
	ProtocolFeeAddr     solana.PublicKey
	PoolSolReservesAddr solana.PublicKey
}

// InitSpec is the full set of static pool metadata the router is
// constructed from. None of these fields require any account data to have
// been fetched yet -- that's what Update is for.
type InitSpec struct {
	Spl      []SplPoolSpec
	Lido     *LidoSpec
	Marinade *MarinadeSpec
	Reserve  *ReserveSpec
}

// Init populates r's immutable per-pool metadata. Calling Init again with
// the same spec is a no-op: existing freshness slots are left untouched.
func (r *SanctumRouter) Init(spec InitSpec) error {
	for _, s := range spec.Spl {
		if _, exists := r.Spl[s.PoolMint]; exists {
			continue
		}
		meta, err := splstakepool.NewImmutableMeta(s.Program, s.StakePool, s.ValidatorList, s.ReserveStake)
		if err != nil {
			return err
		}
		r.Spl[s.PoolMint] = &splstakepool.State{Meta: meta}
	}

	if spec.Lido != nil && r.Lido == nil {
		r.Lido = &lido.AdapterState{Meta: lido.ImmutableMeta{
			Program:              spec.Lido.Program,
			StateAddr:            spec.Lido.StateAddr,
			ValidatorListAddr:    spec.Lido.ValidatorListAddr,
			WithdrawAuthorityPda: spec.Lido.WithdrawAuthorityPda,
			StSolMint:            spec.Lido.StSolMint,
		}}
	}

	if spec.Marinade != nil && r.Marinade == nil {
		r.Marinade = &marinade.AdapterState{Meta: marinade.ImmutableMeta{
			Program:           spec.Marinade.Program,
			StateAddr:         spec.Marinade.StateAddr,
			ValidatorList:     spec.Marinade.ValidatorList,
			MsolMint:          spec.Marinade.MsolMint,
			MsolMintAuthority: spec.Marinade.MsolMintAuthority,
			LiqPoolSolLegPda:  spec.Marinade.LiqPoolSolLegPda,
			LiqPoolMsolLeg:    spec.Marinade.LiqPoolMsolLeg,
		}}
	}

	if spec.Reserve != nil && r.Reserve == nil {
		r.Reserve = &reserve.AdapterState{Meta: reserve.ImmutableMeta{
			Program:             spec.Reserve.Program,
			PoolAddr:            spec.Reserve.PoolAddr,
			FeeAddr:             spec.Reserve.FeeAddr,
			ProtocolFeeAddr:     spec.Reserve.ProtocolFeeAddr,
			PoolSolReservesAddr: spec.Reserve.PoolSolReservesAddr,
		}}
	}

	r.cfg.Logger.Info().Int("spl_pools", len(spec.Spl)).Msg("sanctum router initialized")
	return nil
}

// InitAccounts lists the pubkeys that must be fetched to call Init -- in
// this design Init requires no account data (all metadata is either
// supplied directly or PDA-derived), so this always returns the supplied
// stake pool addresses themselves, which Init's caller will typically want
// to fetch anyway to discover ValidatorList/ReserveStake before building
// the spec.
func InitAccounts(splPools []solana.PublicKey) []solana.PublicKey {
	return splPools
}
