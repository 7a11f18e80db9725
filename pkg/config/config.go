// Package config carries the router's ambient configuration: the logger
// every orchestration-level package writes through, and the overridable
// router-fee table. Grounded on ninja0404-pump-go-sdk's config.go
// (RPCConfig + DefaultRPCConfig pattern), slimmed to a non-I/O engine: no
// RPC URL, retry, or rate-limit fields, since nothing in this module makes
// a network call.
package config

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/solana-zh/sanctum-router/pkg/consts"
)

// FeeTable holds the router-fee basis points for each operation in
// SPEC_FULL.md section 4.1. Defaults match the on-chain program. The quote
// functions do not read this table (they use the pkg/consts values), so
// changing a field here does not change a quoted router fee.
type FeeTable struct {
	DepositSolBps           uint64
	WithdrawSolBps          uint64
	DepositStakeBps         uint64
	WithdrawStakePrefundBps uint64
}

// DefaultFeeTable returns the on-chain program's current fee schedule.
func DefaultFeeTable() FeeTable {
	return FeeTable{
		DepositSolBps:           consts.DepositSolBps,
		WithdrawSolBps:          consts.WithdrawSolBps,
		DepositStakeBps:         consts.DepositStakeBps,
		WithdrawStakePrefundBps: consts.WithdrawStakePrefundBps,
	}
}

// Config is the router's ambient configuration.
type Config struct {
	Logger zerolog.Logger
	Fees   FeeTable
}

// Default returns a Config with a console logger at info level and the
// on-chain default fee schedule.
func Default() Config {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
	return Config{
		Logger: logger,
		Fees:   DefaultFeeTable(),
	}
}
