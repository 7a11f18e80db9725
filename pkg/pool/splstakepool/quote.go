package splstakepool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
	"github.com/solana-zh/sanctum-router/pkg/quote"
	"github.com/solana-zh/sanctum-router/pkg/routererr"
)

func (s *State) requireFresh() error {
	if s.StakePool == nil {
		return routererr.AccountMissing(s.Meta.StakePoolAddr)
	}
	if s.ValidatorList == nil {
		return routererr.AccountMissing(s.Meta.ValidatorList)
	}
	return nil
}

func (s *State) requireNotStale() error {
	if s.CurrEpoch == nil {
		return nil
	}
	if *s.CurrEpoch > s.StakePool.LastUpdateEpoch {
		return routererr.PoolErr("SplStakePool", routererr.ErrStakeListAndPoolOutOfDate)
	}
	return nil
}

func proportional(amount, numerator, denominator uint64) uint64 {
	if denominator == 0 {
		return 0
	}
	return amount * numerator / denominator
}

// QuoteDepositSol quotes depositing lamports for pool tokens. Permissioned
// pools (a configured SolDepositAuthority) are rejected outright.
func (s *State) QuoteDepositSol(lamports uint64) (quote.TokenQuote, error) {
	if err := s.requireFresh(); err != nil {
		return quote.TokenQuote{}, err
	}
	if err := s.requireNotStale(); err != nil {
		return quote.TokenQuote{}, err
	}
	sp := s.StakePool
	if sp.SolDepositAuthority.IsSome {
		return quote.TokenQuote{}, routererr.UserErr("SplStakePool", routererr.ErrIncorrectDepositVoteAddress)
	}

	tokensOut := tokensForLamports(lamports, sp.TotalLamports, sp.PoolTokenSupply)
	feeLamportsEquivalent := sp.SolDepositFee.Apply(tokensOut)
	referral := proportional(feeLamportsEquivalent, uint64(sp.SolReferralFee), 100)
	managerFee := feeLamportsEquivalent - referral

	out := tokensOut - feeLamportsEquivalent
	return quote.TokenQuote{InAmount: lamports, OutAmount: out, FeeAmount: referral + managerFee}, nil
}

// QuoteWithdrawSol quotes burning pool tokens for lamports out of the
// pool's reserve stake account.
func (s *State) QuoteWithdrawSol(tokens uint64) (quote.TokenQuote, error) {
	if err := s.requireFresh(); err != nil {
		return quote.TokenQuote{}, err
	}
	if err := s.requireNotStale(); err != nil {
		return quote.TokenQuote{}, err
	}
	sp := s.StakePool

	fee := sp.SolWithdrawalFee.Apply(tokens)
	tokensAfterFee := tokens - fee
	lamportsOut := lamportsForTokens(tokensAfterFee, sp.TotalLamports, sp.PoolTokenSupply)

	if s.ReserveStakeLamports != nil && lamportsOut > *s.ReserveStakeLamports {
		return quote.TokenQuote{}, routererr.PoolErr("SplStakePool", routererr.ErrNotEnoughLiquidity)
	}

	return quote.TokenQuote{InAmount: tokens, OutAmount: lamportsOut, FeeAmount: fee}, nil
}

// QuoteDepositStake quotes consuming an active stake account for pool
// tokens, per SPEC_FULL.md section 4.5's SPL rules.
func (s *State) QuoteDepositStake(stake quote.ActiveStakeParams) (quote.DepositStakeQuote, error) {
	if err := s.requireFresh(); err != nil {
		return quote.DepositStakeQuote{}, err
	}
	if err := s.requireNotStale(); err != nil {
		return quote.DepositStakeQuote{}, err
	}
	sp := s.StakePool

	if !sp.StakeDepositAuthority.Equals(s.Meta.DepositAuthPda) {
		return quote.DepositStakeQuote{}, routererr.UserErr("SplStakePool", routererr.ErrIncorrectDepositVoteAddress)
	}
	if sp.PreferredDepositValidator.IsSome && !sp.PreferredDepositValidator.Key.Equals(stake.Vote) {
		return quote.DepositStakeQuote{}, routererr.UserErr("SplStakePool", routererr.ErrIncorrectDepositVoteAddress)
	}
	if _, ok := s.ValidatorList.FindByVote(stake.Vote); !ok {
		return quote.DepositStakeQuote{}, routererr.UserErr("SplStakePool", routererr.ErrValidatorNotFound)
	}

	lamportsIn := stake.Lamports.Total()
	tokensOut := tokensForLamports(lamportsIn, sp.TotalLamports, sp.PoolTokenSupply)
	fee := sp.StakeDepositFee.Apply(tokensOut)
	tokensAfterFee := tokensOut - fee
	referral := proportional(fee, uint64(sp.StakeReferralFee), 100)
	managerFee := fee - referral

	// Referral is routed to the user's own token account: aggregated into
	// Out, not into Fee, mirroring the asymmetry flagged in SPEC_FULL.md
	// section 9.
	return quote.DepositStakeQuote{
		Inp: stake,
		Out: tokensAfterFee + referral,
		Fee: managerFee,
	}, nil
}

// QuoteWithdrawStake quotes burning pool tokens for a split stake account,
// selecting a validator per SPEC_FULL.md section 4.5.
func (s *State) QuoteWithdrawStake(tokens uint64, vote *solana.PublicKey) (quote.WithdrawStakeQuote, error) {
	if err := s.requireFresh(); err != nil {
		return quote.WithdrawStakeQuote{}, err
	}
	if err := s.requireNotStale(); err != nil {
		return quote.WithdrawStakeQuote{}, err
	}
	sp := s.StakePool
	vl := s.ValidatorList

	var chosen ValidatorStakeInfo
	switch {
	case sp.PreferredWithdrawValidator.IsSome:
		pref := sp.PreferredWithdrawValidator.Key
		if vote != nil && !vote.Equals(pref) {
			return quote.WithdrawStakeQuote{}, routererr.UserErr("SplStakePool", routererr.ErrIncorrectWithdrawVoteAddr)
		}
		prefInfo, ok := vl.FindByVote(pref)
		exhausted := !ok || prefInfo.ActiveStakeLamports <= consts.MinActiveStake
		if exhausted {
			best, ok := vl.MaxActiveStake(pref)
			if !ok {
				return quote.WithdrawStakeQuote{}, routererr.PoolErr("SplStakePool", routererr.ErrValidatorNotFound)
			}
			chosen = best
		} else {
			chosen = prefInfo
		}
	case vote != nil:
		info, ok := vl.FindByVote(*vote)
		if !ok {
			return quote.WithdrawStakeQuote{}, routererr.UserErr("SplStakePool", routererr.ErrValidatorNotFound)
		}
		chosen = info
	default:
		best, ok := vl.MaxActiveStake()
		if !ok {
			return quote.WithdrawStakeQuote{}, routererr.PoolErr("SplStakePool", routererr.ErrValidatorNotFound)
		}
		chosen = best
	}

	fee := sp.StakeWithdrawalFee.Apply(tokens)
	tokensAfterFee := tokens - fee
	lamportsStaked := lamportsForTokens(tokensAfterFee, sp.TotalLamports, sp.PoolTokenSupply)

	if lamportsStaked > chosen.ActiveStakeLamports {
		return quote.WithdrawStakeQuote{}, routererr.PoolErr("SplStakePool", routererr.ErrStakeLamportsNotEqualToMin)
	}

	return quote.WithdrawStakeQuote{
		Inp: tokens,
		Out: quote.ActiveStakeParams{
			Vote: chosen.VoteAccountAddress,
			Lamports: quote.StakeAccountLamports{
				Staked:   lamportsStaked,
				Unstaked: 0,
			},
		},
		Fee: fee,
	}, nil
}

func tokensForLamports(lamports, totalLamports, poolTokenSupply uint64) uint64 {
	if totalLamports == 0 {
		return lamports
	}
	return lamports * poolTokenSupply / totalLamports
}

func lamportsForTokens(tokens, totalLamports, poolTokenSupply uint64) uint64 {
	if poolTokenSupply == 0 {
		return tokens
	}
	return tokens * totalLamports / poolTokenSupply
}
