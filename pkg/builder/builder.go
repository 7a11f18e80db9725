// Package builder assembles the five user-facing aggregator instructions
// named in SPEC_FULL.md section 6: the deterministic prefix accounts
// derived from swap parameters, the pool-specific suffix accounts resolved
// by dispatching to the router's pool cache, and the discriminant-tagged,
// little-endian-encoded data payload.
//
// The on-chain aggregator program itself is out of scope (SPEC_FULL.md
// section 1): only its instruction discriminants and the general shape of
// its account ordering are consumed here, not a byte-exact verified
// layout, since this module has no golden reference transaction to check
// against. The account ordering of each instruction is the prefix meta list
// written out in its builder function below, followed by the pool's
// suffix accounts.
package builder

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/ix"
	"github.com/solana-zh/sanctum-router/pkg/pda"
	"github.com/solana-zh/sanctum-router/pkg/pool/lido"
	"github.com/solana-zh/sanctum-router/pkg/pool/marinade"
	"github.com/solana-zh/sanctum-router/pkg/pool/reserve"
	"github.com/solana-zh/sanctum-router/pkg/pool/splstakepool"
	"github.com/solana-zh/sanctum-router/pkg/router"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func meta(key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	return solana.NewAccountMeta(key, writable, signer)
}

// DepositSolParams names the accounts needed to build a StakeWrappedSol
// instruction.
type DepositSolParams struct {
	User               solana.PublicKey
	OutputTokenAccount solana.PublicKey
	OutputMint         solana.PublicKey
}

// DepositSolIx builds a StakeWrappedSol instruction: the user's native
// lamports are deposited for OutputMint's LST. The fee token account is
// keyed on OutputMint, matching TokenQuote's output-denominated fee.
func DepositSolIx(r *router.SanctumRouter, p DepositSolParams, amountLamports uint64) (ix.Instruction, error) {
	feeAcc, _, err := pda.FeeTokenAccount(p.OutputMint)
	if err != nil {
		return ix.Instruction{}, err
	}
	prefix := []*solana.AccountMeta{
		meta(p.User, true, true),
		meta(feeAcc, true, false),
		meta(p.OutputTokenAccount, true, false),
		meta(p.OutputMint, false, false),
		meta(consts.TokenProgram, false, false),
		meta(consts.SystemProgram, false, false),
	}

	suffix, err := depositSolSuffix(r, p.OutputMint)
	if err != nil {
		return ix.Instruction{}, err
	}

	data := ix.EncodeAmount(ix.DiscStakeWrappedSol, amountLamports)
	return ix.NewInstruction(data, prefix, suffix), nil
}

// WithdrawSolParams names the accounts needed to build a WithdrawWrappedSol
// instruction.
type WithdrawSolParams struct {
	User              solana.PublicKey
	InputTokenAccount solana.PublicKey
	InputMint         solana.PublicKey
}

// WithdrawSolIx builds a WithdrawWrappedSol instruction: the user burns
// InputMint's LST for native lamports. The fee token account is keyed on
// InputMint, matching TokenQuote's output-denominated fee convention for
// withdraw-SOL (output is lamports; the on-chain program still settles its
// own fee leg in the LST being burned).
func WithdrawSolIx(r *router.SanctumRouter, p WithdrawSolParams, amountTokens uint64) (ix.Instruction, error) {
	feeAcc, _, err := pda.FeeTokenAccount(p.InputMint)
	if err != nil {
		return ix.Instruction{}, err
	}
	prefix := []*solana.AccountMeta{
		meta(p.User, true, true),
		meta(feeAcc, true, false),
		meta(p.InputTokenAccount, true, false),
		meta(p.InputMint, false, false),
		meta(consts.TokenProgram, false, false),
		meta(consts.SystemProgram, false, false),
	}

	sp, ok := r.Spl[p.InputMint]
	if !ok {
		return ix.Instruction{}, routererr.RouterMissing(p.InputMint)
	}
	keys, signer, writable := sp.WithdrawSolSufAccs()
	suffix, err := ix.Meta(keys[:], signer[:], writable[:])
	if err != nil {
		return ix.Instruction{}, err
	}

	data := ix.EncodeAmount(ix.DiscWithdrawWrappedSol, amountTokens)
	return ix.NewInstruction(data, prefix, suffix), nil
}

// DepositStakeParams names the accounts needed to build a DepositStake
// instruction. Vote is the validator the input stake account is delegated
// to; it doubles as the "key" argument passed to the SPL/Marinade suffix
// builders. For a deposit into the reserve pool (OutputMint ==
// consts.NativeMint) the same field is ignored by the suffix builder,
// which instead derives its per-stake-account PDA from StakeAccount.
type DepositStakeParams struct {
	User               solana.PublicKey
	StakeAccount       solana.PublicKey
	OutputTokenAccount solana.PublicKey
	OutputMint         solana.PublicKey
	Vote               solana.PublicKey
}

// DepositStakeIx builds a DepositStake instruction. Per SPEC_FULL.md
// section 4.6, when OutputMint is native SOL the out_mint prefix account is
// marked read-only (the _WSOL_OUT variant); otherwise it is writable
// (_NON_WSOL_OUT), as are the stake, fee token and output token accounts.
// The token, stake and system program accounts are read-only in both.
func DepositStakeIx(r *router.SanctumRouter, p DepositStakeParams) (ix.Instruction, error) {
	feeAcc, _, err := pda.FeeTokenAccount(p.OutputMint)
	if err != nil {
		return ix.Instruction{}, err
	}
	outMintWritable := !p.OutputMint.Equals(consts.NativeMint)
	prefix := []*solana.AccountMeta{
		meta(p.User, true, true),
		meta(p.StakeAccount, true, false),
		meta(feeAcc, true, false),
		meta(p.OutputTokenAccount, true, false),
		meta(p.OutputMint, outMintWritable, false),
		meta(consts.TokenProgram, false, false),
		meta(consts.StakeProgram, false, false),
		meta(consts.SystemProgram, false, false),
	}

	key := p.Vote
	if p.OutputMint.Equals(consts.NativeMint) {
		key = p.StakeAccount
	}
	suffix, err := depositStakeSuffix(r, p.OutputMint, key)
	if err != nil {
		return ix.Instruction{}, err
	}

	data := ix.EncodeBare(ix.DiscDepositStake)
	return ix.NewInstruction(data, prefix, suffix), nil
}

// PrefundWithdrawStakeParams names the accounts needed to build a
// PrefundWithdrawStake instruction. Vote is the validator the withdraw
// quote selected (SPEC_FULL.md section 4.5's SPL/Lido selection rules);
// the caller obtains it from the preceding QuotePrefundWithdrawStake call.
type PrefundWithdrawStakeParams struct {
	User              solana.PublicKey
	InputTokenAccount solana.PublicKey
	InputMint         solana.PublicKey
	Vote              solana.PublicKey
	BridgeStakeSeed   uint32
}

// PrefundWithdrawStakeIx builds a PrefundWithdrawStake instruction: the
// user burns InputMint's LST for a freshly split, rent-exempt stake
// account, funded by the reserve pool's flash loan per SPEC_FULL.md
// section 4.3.
func PrefundWithdrawStakeIx(r *router.SanctumRouter, p PrefundWithdrawStakeParams, amountTokens uint64) (ix.Instruction, error) {
	if r.Reserve == nil {
		return ix.Instruction{}, routererr.RouterMissing(consts.NativeMint)
	}
	prefix, err := prefundPrefixAccounts(r, p.User, p.InputTokenAccount, p.InputMint, p.BridgeStakeSeed)
	if err != nil {
		return ix.Instruction{}, err
	}

	suffix, err := withdrawStakeSuffix(r, p.InputMint, p.Vote)
	if err != nil {
		return ix.Instruction{}, err
	}

	data := ix.EncodeAmountSeed(ix.DiscPrefundWithdrawStake, amountTokens, p.BridgeStakeSeed)
	return ix.NewInstruction(data, prefix, suffix), nil
}

// PrefundSwapViaStakeParams names the accounts needed to build a
// PrefundSwapViaStake instruction: InputMint's LST is withdrawn to a stake
// account delegated to WithdrawVote (via the same prefund flash loan as
// PrefundWithdrawStake), then that stake account is immediately deposited
// into OutputMint's pool.
type PrefundSwapViaStakeParams struct {
	User               solana.PublicKey
	InputTokenAccount  solana.PublicKey
	InputMint          solana.PublicKey
	OutputTokenAccount solana.PublicKey
	OutputMint         solana.PublicKey
	WithdrawVote       solana.PublicKey
	BridgeStakeSeed    uint32
}

// PrefundSwapViaStakeIx builds a PrefundSwapViaStake instruction. The
// out_mint writability rule from SPEC_FULL.md section 4.6 applies here too:
// read-only when OutputMint is native SOL, writable otherwise.
func PrefundSwapViaStakeIx(r *router.SanctumRouter, p PrefundSwapViaStakeParams, amountTokens uint64) (ix.Instruction, error) {
	if r.Reserve == nil {
		return ix.Instruction{}, routererr.RouterMissing(consts.NativeMint)
	}
	bridgeStake, _, err := pda.BridgeStake(p.User, p.BridgeStakeSeed)
	if err != nil {
		return ix.Instruction{}, err
	}
	slumdogStake, err := pda.SlumdogStake(bridgeStake)
	if err != nil {
		return ix.Instruction{}, err
	}
	slumdogRecord, _, err := pda.ReserveStakeAccountRecord(r.Reserve.Meta.PoolAddr, slumdogStake, r.Reserve.Meta.Program)
	if err != nil {
		return ix.Instruction{}, err
	}
	depositFeeAcc, _, err := pda.FeeTokenAccount(p.OutputMint)
	if err != nil {
		return ix.Instruction{}, err
	}

	outMintWritable := !p.OutputMint.Equals(consts.NativeMint)
	prefix := []*solana.AccountMeta{
		meta(p.User, true, true),
		meta(p.InputTokenAccount, true, false),
		meta(p.InputMint, false, false),
		meta(p.OutputTokenAccount, true, false),
		meta(p.OutputMint, outMintWritable, false),
		meta(depositFeeAcc, true, false),
		meta(bridgeStake, true, false),
		meta(slumdogStake, true, false),
		meta(slumdogRecord, true, false),
		meta(consts.Prefunder, true, false),
		meta(r.Reserve.Meta.PoolAddr, true, false),
		meta(r.Reserve.Meta.PoolSolReservesAddr, true, false),
		meta(r.Reserve.Meta.FeeAddr, false, false),
		meta(r.Reserve.Meta.ProtocolFeeAddr, true, false),
		meta(consts.TokenProgram, false, false),
		meta(consts.StakeProgram, false, false),
		meta(consts.SystemProgram, false, false),
		meta(consts.SysvarClock, false, false),
		meta(consts.SysvarStakeHistory, false, false),
		meta(consts.SysvarRent, false, false),
	}

	withdrawSuffix, err := withdrawStakeSuffix(r, p.InputMint, p.WithdrawVote)
	if err != nil {
		return ix.Instruction{}, err
	}
	depositKey := p.WithdrawVote
	if p.OutputMint.Equals(consts.NativeMint) {
		depositKey = bridgeStake
	}
	depositSuffix, err := depositStakeSuffix(r, p.OutputMint, depositKey)
	if err != nil {
		return ix.Instruction{}, err
	}
	suffix := append(append([]*solana.AccountMeta{}, withdrawSuffix...), depositSuffix...)

	data := ix.EncodeAmountSeed(ix.DiscPrefundSwapViaStake, amountTokens, p.BridgeStakeSeed)
	return ix.NewInstruction(data, prefix, suffix), nil
}

// prefundPrefixAccounts builds the prefix shared by PrefundWithdrawStake:
// the user's LST account plus the bridge/slumdog stake PDAs and the
// reserve pool's flash-loan accounts.
func prefundPrefixAccounts(r *router.SanctumRouter, user, inputTokenAccount, inputMint solana.PublicKey, bridgeStakeSeed uint32) ([]*solana.AccountMeta, error) {
	feeAcc, _, err := pda.FeeTokenAccount(inputMint)
	if err != nil {
		return nil, err
	}
	bridgeStake, _, err := pda.BridgeStake(user, bridgeStakeSeed)
	if err != nil {
		return nil, err
	}
	slumdogStake, err := pda.SlumdogStake(bridgeStake)
	if err != nil {
		return nil, err
	}
	slumdogRecord, _, err := pda.ReserveStakeAccountRecord(r.Reserve.Meta.PoolAddr, slumdogStake, r.Reserve.Meta.Program)
	if err != nil {
		return nil, err
	}

	return []*solana.AccountMeta{
		meta(user, true, true),
		meta(inputTokenAccount, true, false),
		meta(inputMint, false, false),
		meta(feeAcc, true, false),
		meta(bridgeStake, true, false),
		meta(slumdogStake, true, false),
		meta(slumdogRecord, true, false),
		meta(consts.Prefunder, true, false),
		meta(r.Reserve.Meta.PoolAddr, true, false),
		meta(r.Reserve.Meta.PoolSolReservesAddr, true, false),
		meta(r.Reserve.Meta.FeeAddr, false, false),
		meta(r.Reserve.Meta.ProtocolFeeAddr, true, false),
		meta(consts.TokenProgram, false, false),
		meta(consts.StakeProgram, false, false),
		meta(consts.SystemProgram, false, false),
		meta(consts.SysvarClock, false, false),
		meta(consts.SysvarStakeHistory, false, false),
		meta(consts.SysvarRent, false, false),
	}, nil
}

func depositSolSuffix(r *router.SanctumRouter, mint solana.PublicKey) ([]*solana.AccountMeta, error) {
	if sp, ok := r.Spl[mint]; ok {
		if sp.StakePool == nil {
			return nil, routererr.AccountMissing(sp.Meta.StakePoolAddr)
		}
		keys, signer, writable := sp.DepositSolSufAccs()
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	if r.Marinade != nil && mint.Equals(r.Marinade.Meta.MsolMint) {
		if r.Marinade.State == nil {
			return nil, routererr.AccountMissing(r.Marinade.Meta.StateAddr)
		}
		keys, signer, writable := r.Marinade.DepositSolSufAccs()
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	return nil, routererr.RouterMissing(mint)
}

func depositStakeSuffix(r *router.SanctumRouter, mint, key solana.PublicKey) ([]*solana.AccountMeta, error) {
	if mint.Equals(consts.NativeMint) {
		if r.Reserve == nil {
			return nil, routererr.RouterMissing(mint)
		}
		keys, signer, writable, err := r.Reserve.DepositStakeSufAccs(key)
		if err != nil {
			return nil, err
		}
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	if sp, ok := r.Spl[mint]; ok {
		keys, signer, writable, err := sp.DepositStakeSufAccs(key)
		if err != nil {
			return nil, err
		}
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	if r.Marinade != nil && mint.Equals(r.Marinade.Meta.MsolMint) {
		keys, signer, writable, err := r.Marinade.DepositStakeSufAccs(key)
		if err != nil {
			return nil, err
		}
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	return nil, routererr.RouterMissing(mint)
}

func withdrawStakeSuffix(r *router.SanctumRouter, mint, vote solana.PublicKey) ([]*solana.AccountMeta, error) {
	if sp, ok := r.Spl[mint]; ok {
		keys, signer, writable, err := sp.WithdrawStakeSufAccs(vote)
		if err != nil {
			return nil, err
		}
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	if r.Lido != nil && mint.Equals(r.Lido.Meta.StSolMint) {
		keys, signer, writable, err := r.Lido.WithdrawStakeSufAccs(vote)
		if err != nil {
			return nil, err
		}
		return ix.Meta(keys[:], signer[:], writable[:])
	}
	return nil, routererr.RouterMissing(mint)
}

// Blank references to the adapter types whose suffix-account methods this
// file calls through the router's pool cache. They assert no interface;
// they only require that each type exists under this name.
var (
	_ = (*splstakepool.State)(nil)
	_ = (*marinade.AdapterState)(nil)
	_ = (*lido.AdapterState)(nil)
	_ = (*reserve.AdapterState)(nil)
)
