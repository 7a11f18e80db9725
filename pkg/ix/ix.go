// Package ix assembles aggregator instructions: the fixed
// [program_id, ...accounts] shape plus the 1-byte-discriminant,
// little-endian-argument data payload described in SPEC_FULL.md section 6.
package ix

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/solana-zh/sanctum-router/pkg/consts"
)

// Discriminant identifies which aggregator instruction a payload encodes.
type Discriminant byte

const (
	DiscStakeWrappedSol        Discriminant = 0
	DiscSwapViaStake           Discriminant = 1
	DiscCreateFeeTokenAccount  Discriminant = 2
	DiscCloseFeeTokenAccount   Discriminant = 3
	DiscWithdrawFees           Discriminant = 4
	DiscDepositStake           Discriminant = 5
	DiscPrefundWithdrawStake   Discriminant = 6
	DiscPrefundSwapViaStake    Discriminant = 7
	DiscWithdrawWrappedSol     Discriminant = 8
)

// Instruction is the wire shape every *Ix builder returns: it satisfies
// solana.Instruction so a consumer can drop it straight into a
// solana-go-built transaction without this module ever constructing one
// itself.
type Instruction struct {
	ProgID       solana.PublicKey
	AccountMetas solana.AccountMetaSlice
	DataB        []byte
}

func (i Instruction) ProgramID() solana.PublicKey              { return i.ProgID }
func (i Instruction) Accounts() []*solana.AccountMeta           { return i.AccountMetas }
func (i Instruction) Data() ([]byte, error)                     { return i.DataB, nil }

// EncodeAmount encodes the 9-byte payload shared by StakeWrappedSol and
// WithdrawWrappedSol: [discriminant | u64 amount LE].
func EncodeAmount(d Discriminant, amount uint64) []byte {
	buf := make([]byte, 9)
	buf[0] = byte(d)
	binary.LittleEndian.PutUint64(buf[1:9], amount)
	return buf
}

// EncodeAmountSeed encodes the 13-byte payload shared by
// PrefundWithdrawStake and PrefundSwapViaStake:
// [discriminant | u64 amount LE | u32 bridge_stake_seed LE].
func EncodeAmountSeed(d Discriminant, amount uint64, bridgeStakeSeed uint32) []byte {
	buf := make([]byte, 13)
	buf[0] = byte(d)
	binary.LittleEndian.PutUint64(buf[1:9], amount)
	binary.LittleEndian.PutUint32(buf[9:13], bridgeStakeSeed)
	return buf
}

// EncodeBare encodes the 1-byte payload for instructions taking no
// arguments (DepositStake, CreateFeeTokenAccount, CloseFeeTokenAccount,
// WithdrawFees).
func EncodeBare(d Discriminant) []byte {
	return []byte{byte(d)}
}

// DecodeAmount is the inverse of EncodeAmount, used by round-trip tests.
func DecodeAmount(data []byte) (Discriminant, uint64, error) {
	if len(data) != 9 {
		return 0, 0, fmt.Errorf("ix: expected 9-byte amount payload, got %d", len(data))
	}
	return Discriminant(data[0]), binary.LittleEndian.Uint64(data[1:9]), nil
}

// DecodeAmountSeed is the inverse of EncodeAmountSeed.
func DecodeAmountSeed(data []byte) (Discriminant, uint64, uint32, error) {
	if len(data) != 13 {
		return 0, 0, 0, fmt.Errorf("ix: expected 13-byte amount+seed payload, got %d", len(data))
	}
	return Discriminant(data[0]), binary.LittleEndian.Uint64(data[1:9]), binary.LittleEndian.Uint32(data[9:13]), nil
}

// NewInstruction concatenates prefix and suffix account metas and wraps the
// result with the aggregator program id and an already-encoded payload.
func NewInstruction(data []byte, prefix, suffix []*solana.AccountMeta) Instruction {
	accounts := make(solana.AccountMetaSlice, 0, len(prefix)+len(suffix))
	accounts = append(accounts, prefix...)
	accounts = append(accounts, suffix...)
	return Instruction{
		ProgID:       consts.SanctumRouterProgram,
		AccountMetas: accounts,
		DataB:        data,
	}
}

// Meta is a small convenience wrapper matching the pool-adapter SufAccs
// triples (keys, is_signer, is_writable) into AccountMeta values.
func Meta(keys []solana.PublicKey, isSigner, isWritable []bool) ([]*solana.AccountMeta, error) {
	if len(keys) != len(isSigner) || len(keys) != len(isWritable) {
		return nil, fmt.Errorf("ix: mismatched suffix-account array lengths: %d keys, %d signer flags, %d writable flags", len(keys), len(isSigner), len(isWritable))
	}
	metas := make([]*solana.AccountMeta, len(keys))
	for i, k := range keys {
		metas[i] = solana.NewAccountMeta(k, isWritable[i], isSigner[i])
	}
	return metas, nil
}
