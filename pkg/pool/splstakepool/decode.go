package splstakepool

import (
	bin "github.com/gagliardetto/binary"
)

// UnmarshalWithDecoder implements Borsh's Option<T> convention (a 1-byte
// presence flag followed by the value when present) for OptionFee, since
// gagliardetto/binary has no generic Option type for plain structs.
func (o *OptionFee) UnmarshalWithDecoder(dec *bin.Decoder) error {
	flag, err := dec.ReadByte()
	if err != nil {
		return err
	}
	o.IsSome = flag != 0
	if !o.IsSome {
		return nil
	}
	return dec.Decode(&o.Fee)
}

func (o *OptionPubkey) UnmarshalWithDecoder(dec *bin.Decoder) error {
	flag, err := dec.ReadByte()
	if err != nil {
		return err
	}
	o.IsSome = flag != 0
	if !o.IsSome {
		return nil
	}
	return dec.Decode(&o.Key)
}

// DecodeStakePool Borsh-decodes a SPL stake-pool program StakePool account.
func DecodeStakePool(data []byte) (*StakePool, error) {
	var sp StakePool
	if err := bin.UnmarshalBorsh(&sp, data); err != nil {
		return nil, err
	}
	return &sp, nil
}

// DecodeValidatorList Borsh-decodes a SPL stake-pool program ValidatorList
// account: a small header (AccountType, MaxValidators) followed by a
// Borsh Vec<ValidatorStakeInfo> (u32 length prefix then elements).
func DecodeValidatorList(data []byte) (*ValidatorList, error) {
	dec := bin.NewBorshDecoder(data)
	var vl ValidatorList
	accountType, err := dec.ReadUint8()
	if err != nil {
		return nil, err
	}
	vl.AccountType = accountType
	maxValidators, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	vl.MaxValidators = maxValidators

	count, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	vl.Validators = make([]ValidatorStakeInfo, 0, count)
	for i := uint32(0); i < count; i++ {
		var vsi ValidatorStakeInfo
		if err := dec.Decode(&vsi); err != nil {
			return nil, err
		}
		vl.Validators = append(vl.Validators, vsi)
	}
	return &vl, nil
}
