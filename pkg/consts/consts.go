// Package consts holds the fixed program ids, sysvars and lamport constants
// the router and its instruction builders are wired against.
package consts

import "github.com/gagliardetto/solana-go"

var (
	SanctumRouterProgram = solana.MustPublicKeyFromBase58("stkitrT1Uoy18Dk1fTrgPw8W6MVzoCfYoAFT4MLsmhq")
	NativeMint           = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	Prefunder            = solana.MustPublicKeyFromBase58("ALpzvhALRr35nH8mw9SXk2WvmwEYjfw1dvmpFG9Kosu6")

	SysvarRent         = solana.SysVarRentPubkey
	SysvarClock        = solana.SysVarClockPubkey
	SysvarStakeHistory = solana.SysVarStakeHistoryPubkey
	SysvarStakeConfig  = solana.MustPublicKeyFromBase58("StakeConfig11111111111111111111111111111111")

	StakeProgram           = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
	SystemProgram          = solana.SystemProgramID
	TokenProgram           = solana.TokenProgramID
	AssociatedTokenProgram = solana.SPLAssociatedTokenAccountProgramID
)

// Bridge/fee accounts used by the StakeWrappedSol / WithdrawWrappedSol legs.
var (
	WsolBridgeIn        = solana.MustPublicKeyFromBase58("wB1gBYqTZwu9CsDbXNgeaBQF35Y4WBnNNb6VssCQcfk")
	SolBridgeOut        = solana.MustPublicKeyFromBase58("6c8oQufbsb7VDuFU16m6PzxJGA3GYSLi5ZR1aWUA1gLD")
	WsolFeeTokenAccount = solana.MustPublicKeyFromBase58("2cgHzxNvXvfeEG9Uz9NdWEXbkUw1sQtoM32N3sMBP3Ed")
)

const (
	// StakeAccountRentExemptLamports is the standard rent-exempt minimum for
	// a 200-byte stake account on mainnet.
	StakeAccountRentExemptLamports uint64 = 2_282_880

	// PrefundFlashLoanLamports is the amount the aggregator prefunds a new
	// stake account with, to be repaid in the same transaction.
	PrefundFlashLoanLamports uint64 = 2 * StakeAccountRentExemptLamports

	// ZeroDataAccRentExemptLamports is the rent-exempt minimum for a
	// zero-data account (used to size the reserve's liquidity floor check).
	ZeroDataAccRentExemptLamports uint64 = 890_880
)

// BPS router-fee table, see SPEC_FULL.md section 4.1; these are the
// on-chain defaults. pkg/config's FeeTable copies them, but the quote
// functions in pkg read these constants directly, so a Config's Fees field
// does not change the fees they charge.
const (
	DepositSolBps          uint64 = 0
	WithdrawSolBps         uint64 = 1
	DepositStakeBps        uint64 = 10
	WithdrawStakePrefundBps uint64 = 0
)

// MinActiveStake is the SPL stake-pool "exhausted validator" threshold: a
// preferred withdraw validator with active stake at or below this value is
// treated as exhausted and withdrawal falls back to the max-stake validator.
const MinActiveStake uint64 = 0
