package router

import (
	"encoding/binary"
	"fmt"
)

// ClockAccountDataSize is the fixed byte size of the SYSVAR_CLOCK account.
const ClockAccountDataSize = 40

// Clock is the decoded SYSVAR_CLOCK account. Only Epoch is consulted by the
// router; the remaining fields are carried for completeness.
type Clock struct {
	Slot                uint64
	EpochStartTime      uint64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       uint64
}

// DecodeClock parses a SYSVAR_CLOCK account's raw bytes. Unlike the
// teacher's RPC-fetching Client.GetClock, this module never fetches
// accounts itself: consumers pass the bytes in as part of Update's account
// map, per SPEC_FULL.md's non-goal that the engine performs no I/O.
func DecodeClock(data []byte) (*Clock, error) {
	if len(data) != ClockAccountDataSize {
		return nil, fmt.Errorf("router: invalid clock account data length: expected %d bytes, got %d", ClockAccountDataSize, len(data))
	}
	return &Clock{
		Slot:                binary.LittleEndian.Uint64(data[0:8]),
		EpochStartTime:      binary.LittleEndian.Uint64(data[8:16]),
		Epoch:               binary.LittleEndian.Uint64(data[16:24]),
		LeaderScheduleEpoch: binary.LittleEndian.Uint64(data[24:32]),
		UnixTimestamp:       binary.LittleEndian.Uint64(data[32:40]),
	}, nil
}
