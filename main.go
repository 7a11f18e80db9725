package main

import (
	"log"

	"github.com/gagliardetto/solana-go"

	sanctumrouter "github.com/solana-zh/sanctum-router/pkg"
	"github.com/solana-zh/sanctum-router/pkg/builder"
)

// Demo pool addresses, good enough to exercise Init/AccountsToUpdate/
// DepositSolIx locally. No account data is fetched and Update is never
// called, so DepositSolIx stops with an AccountMissing error for the stake
// pool account (the SPL suffix accounts come from the decoded StakePool)
// and the demo exits there. This module never performs RPC I/O, transaction
// signing or submission -- a real caller plugs the account-fetch and
// transaction-send steps in around these calls with whatever client they
// already use.
var (
	splProgram       = solana.MustPublicKeyFromBase58("SPoo1Ku8WFXoNDMHPsrGSTSG1Y47rzgn41SLUNakuHy")
	splStakePool     = solana.MustPublicKeyFromBase58("CtMyWsrUtAwXWiGr9WjHT5fC3PoEAKzWKj5bCfQTkn2Y")
	splValidatorList = solana.MustPublicKeyFromBase58("1istKgkkf7phFvNGcbptqXPfnLjSUkC2VcMhZhhqpkm")
	splReserveStake  = solana.MustPublicKeyFromBase58("CHPUEmaZPAkPEDqhMXEcNHnZTj7fCMshGmwAVC1XVUWD")
	splPoolMint      = solana.MustPublicKeyFromBase58("7Q2afV64in6N6SeZsAAB81TJzwDoD6zpqmHkzi9Dcavn")

	userWallet          = solana.MustPublicKeyFromBase58("11111111111111111111111111111112")
	userOutTokenAccount = solana.MustPublicKeyFromBase58("4ddbBjWrWCZh8hVVpXeVyV1WV7jfWJVuuT8iptJraEAM")
)

func main() {
	log.Printf("🚀 building a sanctum router")

	r := sanctumrouter.NewSanctumRouter()

	needed := sanctumrouter.InitAccounts([]solana.PublicKey{splStakePool})
	log.Printf("👌 fetch these %d accounts before Init", len(needed))

	err := sanctumrouter.Init(r, sanctumrouter.InitSpec{
		Spl: []sanctumrouter.SplPoolSpec{{
			Program:       splProgram,
			StakePool:     splStakePool,
			ValidatorList: splValidatorList,
			ReserveStake:  splReserveStake,
			PoolMint:      splPoolMint,
		}},
	})
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	swap := []sanctumrouter.SwapMints{{Kind: sanctumrouter.SwapDepositSol, Out: splPoolMint}}
	toRefresh := sanctumrouter.AccountsToUpdate(r, swap)
	log.Printf("⌛ quoting a deposit-SOL route needs %d fresh accounts -- fetch and call Update before quoting", len(toRefresh))

	params := builder.DepositSolParams{
		User:               userWallet,
		OutputTokenAccount: userOutTokenAccount,
		OutputMint:         splPoolMint,
	}
	ixn, err := sanctumrouter.DepositSolIx(r, params, 1_000_000_000)
	if err != nil {
		log.Fatalf("build DepositSolIx: %v", err)
	}
	log.Printf("😈 built instruction with %d accounts", len(ixn.Accounts()))
}
