package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/solana-zh/sanctum-router/pkg/consts"
)

func TestDefaultFeeTableMatchesOnChainConsts(t *testing.T) {
	fees := DefaultFeeTable()
	assert.Equal(t, consts.DepositSolBps, fees.DepositSolBps)
	assert.Equal(t, consts.WithdrawSolBps, fees.WithdrawSolBps)
	assert.Equal(t, consts.DepositStakeBps, fees.DepositStakeBps)
	assert.Equal(t, consts.WithdrawStakePrefundBps, fees.WithdrawStakePrefundBps)
}

func TestDefaultConfigLoggerIsUsable(t *testing.T) {
	cfg := Default()
	cfg.Logger.Info().Msg("config smoke test")
	assert.Equal(t, DefaultFeeTable(), cfg.Fees)
}
