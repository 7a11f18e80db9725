package reserve

import (
	"errors"

	bin "github.com/gagliardetto/binary"
)

const anchorDiscriminatorLen = 8

var errAccountTooShort = errors.New("reserve: account data shorter than anchor discriminator")

func decodeAnchor(data []byte, v any) error {
	if len(data) < anchorDiscriminatorLen {
		return errAccountTooShort
	}
	return bin.UnmarshalBorsh(v, data[anchorDiscriminatorLen:])
}

func DecodePool(data []byte) (*Pool, error) {
	var p Pool
	if err := decodeAnchor(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func DecodeFee(data []byte) (*Fee, error) {
	var f Fee
	if err := decodeAnchor(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func DecodeProtocolFee(data []byte) (*ProtocolFee, error) {
	var pf ProtocolFee
	if err := decodeAnchor(data, &pf); err != nil {
		return nil, err
	}
	return &pf, nil
}
