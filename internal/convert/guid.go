package convert

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// guidOrder maps each byte of the UUID (text order) to its index in the
// big-endian rendering of hi followed by lo. The first eight bytes of the
// source structure are stored swapped as 4/2/2 little-endian groups; the
// last eight arrive fully reversed.
var guidOrder = [16]int{
	4, 5, 6, 7, // time_low
	2, 3, // time_mid
	0, 1, // time_hi_and_version
	15, 14, 13, 12, 11, 10, 9, 8, // clock_seq + node
}

// DeviceID rebuilds the device identifier from its two 64-bit halves.
func DeviceID(hi, lo uint64) uuid.UUID {
	var raw [16]byte
	binary.BigEndian.PutUint64(raw[0:8], hi)
	binary.BigEndian.PutUint64(raw[8:16], lo)

	var id uuid.UUID
	for i, src := range guidOrder {
		id[i] = raw[src]
	}
	return id
}

// DeviceIDString returns the canonical 36 character lowercase form.
func DeviceIDString(hi, lo uint64) string {
	return DeviceID(hi, lo).String()
}
