package marinade

import (
	"encoding/binary"
	"errors"

	bin "github.com/gagliardetto/binary"
)

// anchorDiscriminatorLen is the length of the 8-byte sighash Anchor
// prepends to every account's serialized data.
const anchorDiscriminatorLen = 8

// splTokenAccountAmountOffset is the byte offset of the `amount` field in an
// SPL Token Account's raw data (mint: 32, owner: 32, amount: 8, ...).
const splTokenAccountAmountOffset = 64

var errAccountTooShort = errors.New("marinade: account data shorter than anchor discriminator")
var errTokenAccountTooShort = errors.New("marinade: account data too short to hold an SPL token amount")

// DecodeState Borsh-decodes an Anchor-framed Marinade State account,
// skipping the 8-byte discriminator prefix.
func DecodeState(data []byte) (*State, error) {
	if len(data) < anchorDiscriminatorLen {
		return nil, errAccountTooShort
	}
	var s State
	if err := bin.UnmarshalBorsh(&s, data[anchorDiscriminatorLen:]); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeValidatorRecords Borsh-decodes Marinade's validator-list account: a
// Vec<ValidatorRecord> with no discriminator (it is a plain, non-Anchor
// account in the upstream program).
func DecodeValidatorRecords(data []byte) (*ValidatorRecords, error) {
	dec := bin.NewBorshDecoder(data)
	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	records := make([]ValidatorRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		var r ValidatorRecord
		if err := dec.Decode(&r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return &ValidatorRecords{Validators: records}, nil
}

// decodeMsolLegBalance reads the `amount` field out of the liquidity pool's
// mSOL-leg SPL Token Account, the way the upstream SDK's try_token_acc_amt
// does: a fixed-offset little-endian u64, no discriminator or Borsh framing
// involved since this is a plain SPL Token program account, not an Anchor
// one.
func decodeMsolLegBalance(data []byte) (uint64, error) {
	if len(data) < splTokenAccountAmountOffset+8 {
		return 0, errTokenAccountTooShort
	}
	return binary.LittleEndian.Uint64(data[splTokenAccountAmountOffset : splTokenAccountAmountOffset+8]), nil
}
