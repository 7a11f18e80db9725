package marinade

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

// ImmutableMeta is Marinade's static program/account metadata.
type ImmutableMeta struct {
	Program           solana.PublicKey
	StateAddr         solana.PublicKey
	ValidatorList     solana.PublicKey
	MsolMint          solana.PublicKey
	MsolMintAuthority solana.PublicKey
	LiqPoolSolLegPda  solana.PublicKey
	// LiqPoolMsolLeg is the liquidity pool's mSOL-leg SPL Token Account.
	// It is fetched as a fixed, well-known address up front, the same way
	// the upstream SDK treats LIQ_POOL_MSOL_LEG_PUBKEY -- its balance
	// can't be read off Marinade's State account, so it is not something
	// Update can discover on its own the way it discovers, say, the
	// ValidatorList address from a decoded State.
	LiqPoolMsolLeg solana.PublicKey
}

// AdapterState is Marinade's full per-router state: immutable metadata plus
// the freshness slots Update populates.
type AdapterState struct {
	Meta ImmutableMeta

	State            *State
	ValidatorRecords *ValidatorRecords
	MsolLegBalance   *uint64
}

func (a *AdapterState) AccountsToUpdate() []solana.PublicKey {
	return []solana.PublicKey{a.Meta.StateAddr, a.Meta.ValidatorList, a.Meta.LiqPoolMsolLeg}
}

func (a *AdapterState) Update(accounts map[solana.PublicKey][]byte) error {
	stData, ok := accounts[a.Meta.StateAddr]
	if !ok {
		return routererr.AccountMissing(a.Meta.StateAddr)
	}
	st, err := DecodeState(stData)
	if err != nil {
		return routererr.InvalidData("marinade_state", err)
	}

	vrData, ok := accounts[a.Meta.ValidatorList]
	if !ok {
		return routererr.AccountMissing(a.Meta.ValidatorList)
	}
	vr, err := DecodeValidatorRecords(vrData)
	if err != nil {
		return routererr.InvalidData("marinade_validator_records", err)
	}

	legData, ok := accounts[a.Meta.LiqPoolMsolLeg]
	if !ok {
		return routererr.AccountMissing(a.Meta.LiqPoolMsolLeg)
	}
	legBal, err := decodeMsolLegBalance(legData)
	if err != nil {
		return routererr.InvalidData("marinade_liq_pool_msol_leg", err)
	}

	a.State = st
	a.ValidatorRecords = vr
	a.MsolLegBalance = &legBal
	return nil
}

func (a *AdapterState) requireFresh() error {
	if a.State == nil {
		return routererr.AccountMissing(a.Meta.StateAddr)
	}
	if a.ValidatorRecords == nil {
		return routererr.AccountMissing(a.Meta.ValidatorList)
	}
	if a.MsolLegBalance == nil {
		return routererr.AccountMissing(a.Meta.LiqPoolMsolLeg)
	}
	return nil
}

// effectiveMsolSupply excludes the liquidity pool's own mSOL-leg inventory
// from the circulating-supply denominator used to price new deposits: those
// tokens are already minted but held by the protocol itself rather than a
// third party, so they are not a competing claim against the backing pool
// that a freshly-deposited lamport has to share value with. This mirrors
// quote_deposit_sol's msol_leg_balance argument without reproducing its
// internal arithmetic, which lives in a crate not present in this codebase's
// reference material -- see DESIGN.md.
func (a *AdapterState) effectiveMsolSupply() uint64 {
	supply := a.State.MsolSupply
	leg := *a.MsolLegBalance
	if leg > supply {
		return 0
	}
	return supply - leg
}

// QuoteDepositSol quotes depositing lamports for mSOL, per the state's
// total active balance / msol supply ratio and the liquidity-pool leg.
func (a *AdapterState) QuoteDepositSol(lamports uint64) (quote.TokenQuote, error) {
	if err := a.requireFresh(); err != nil {
		return quote.TokenQuote{}, err
	}
	st := a.State
	totalLamports := st.ValidatorSystem.TotalActiveBalance + st.AvailableReserveBalance
	msolOut := tokensForLamports(lamports, totalLamports, a.effectiveMsolSupply())
	return quote.TokenQuote{InAmount: lamports, OutAmount: msolOut, FeeAmount: 0}, nil
}

// QuoteDepositStake quotes consuming an active stake account for mSOL. The
// validator must already be known to Marinade unless auto-add is enabled.
func (a *AdapterState) QuoteDepositStake(stake quote.ActiveStakeParams) (quote.DepositStakeQuote, error) {
	if err := a.requireFresh(); err != nil {
		return quote.DepositStakeQuote{}, err
	}
	st := a.State
	if !a.ValidatorRecords.Contains(stake.Vote) && st.ValidatorSystem.AutoAddValidatorEnabled == 0 {
		return quote.DepositStakeQuote{}, routererr.UserErr("Marinade", routererr.ErrWrongValidatorAccountOrIdx)
	}

	totalLamports := st.ValidatorSystem.TotalActiveBalance + st.AvailableReserveBalance
	msolOut := tokensForLamports(stake.Lamports.Total(), totalLamports, a.effectiveMsolSupply())

	// Fee field is 0 for Marinade deposits, per SPEC_FULL.md section 4.5.
	return quote.DepositStakeQuote{Inp: stake, Out: msolOut, Fee: 0}, nil
}

func tokensForLamports(lamports, totalLamports, tokenSupply uint64) uint64 {
	if totalLamports == 0 {
		return lamports
	}
	return lamports * tokenSupply / totalLamports
}

// DepositSolSufAccsLen is the fixed suffix-account count for a
// StakeWrappedSol instruction targeting Marinade.
const DepositSolSufAccsLen = 6

// DepositStakeSufAccsLen is the fixed suffix-account count for a
// DepositStake instruction targeting Marinade.
const DepositStakeSufAccsLen = 7

// DepositSolSufAccs returns the suffix accounts for a StakeWrappedSol
// instruction targeting Marinade.
func (a *AdapterState) DepositSolSufAccs() ([DepositSolSufAccsLen]solana.PublicKey, [DepositSolSufAccsLen]bool, [DepositSolSufAccsLen]bool) {
	st := a.State
	keys := [DepositSolSufAccsLen]solana.PublicKey{
		a.Meta.Program,
		a.Meta.StateAddr,
		a.Meta.LiqPoolMsolLeg,
		a.Meta.LiqPoolSolLegPda,
		st.MsolMint,
		a.Meta.MsolMintAuthority,
	}
	writable := [DepositSolSufAccsLen]bool{false, true, true, true, true, false}
	var signer [DepositSolSufAccsLen]bool
	return keys, signer, writable
}

// DepositStakeSufAccs returns the suffix accounts for a DepositStake
// instruction, given the stake's validator.
func (a *AdapterState) DepositStakeSufAccs(vote solana.PublicKey) ([DepositStakeSufAccsLen]solana.PublicKey, [DepositStakeSufAccsLen]bool, [DepositStakeSufAccsLen]bool, error) {
	dupFlag, _, err := marinadeDuplicationFlag(a.Meta.StateAddr, vote, a.Meta.Program)
	if err != nil {
		return [DepositStakeSufAccsLen]solana.PublicKey{}, [DepositStakeSufAccsLen]bool{}, [DepositStakeSufAccsLen]bool{}, err
	}
	st := a.State
	keys := [DepositStakeSufAccsLen]solana.PublicKey{
		a.Meta.Program,
		a.Meta.StateAddr,
		a.Meta.ValidatorList,
		dupFlag,
		st.MsolMint,
		a.Meta.MsolMintAuthority,
		consts.StakeProgram,
	}
	writable := [DepositStakeSufAccsLen]bool{false, true, true, true, true, false, false}
	var signer [DepositStakeSufAccsLen]bool
	return keys, signer, writable, nil
}

func marinadeDuplicationFlag(state, vote, program solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{state.Bytes(), []byte("unique_accounts"), vote.Bytes()}, program)
	if err != nil {
		return solana.PublicKey{}, 0, routererr.InvalidPda("marinade_duplication_flag")
	}
	return addr, bump, nil
}
