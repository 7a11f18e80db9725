package lido

import (
	"errors"

	bin "github.com/gagliardetto/binary"
)

const anchorDiscriminatorLen = 8

var errAccountTooShort = errors.New("lido: account data shorter than anchor discriminator")

// DecodeState Borsh-decodes an Anchor-framed Solido Lido account.
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

// DecodeValidatorList Borsh-decodes Solido's validator-list account.
func DecodeValidatorList(data []byte) (*ValidatorList, error) {
	if len(data) < anchorDiscriminatorLen {
		return nil, errAccountTooShort
	}
	dec := bin.NewBorshDecoder(data[anchorDiscriminatorLen:])
	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	validators := make([]Validator, 0, count)
	for i := uint32(0); i < count; i++ {
		var v Validator
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		validators = append(validators, v)
	}
	return &ValidatorList{Validators: validators}, nil
}
