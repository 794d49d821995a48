package testutil

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Device describes one DeviceData entry for EncodePayload.
type Device struct {
	Ticks  int64
	Hi     uint64
	Lo     uint64
	Values []Reading

	OmitDateTime bool
	OmitDeviceID bool
}

// Reading is one DeviceValue entry.
type Reading struct {
	Obis  []byte
	Value float64
}

// EncodePayload hand-encodes a DeviceDataArray so tests do not depend on the
// schema file to produce their input.
func EncodePayload(devices ...Device) []byte {
	var out []byte
	for _, d := range devices {
		out = protowire.AppendTag(out, 1, protowire.BytesType)
		out = protowire.AppendBytes(out, encodeDevice(d))
	}
	return out
}

func encodeDevice(d Device) []byte {
	var b []byte
	if !d.OmitDateTime {
		var dt []byte
		dt = protowire.AppendTag(dt, 1, protowire.VarintType)
		dt = protowire.AppendVarint(dt, protowire.EncodeZigZag(d.Ticks))
		b = protowire.AppendTag(b, 1, protowire.BytesType)
		b = protowire.AppendBytes(b, dt)
	}
	if !d.OmitDeviceID {
		var id []byte
		id = protowire.AppendTag(id, 1, protowire.Fixed64Type)
		id = protowire.AppendFixed64(id, d.Lo)
		id = protowire.AppendTag(id, 2, protowire.Fixed64Type)
		id = protowire.AppendFixed64(id, d.Hi)
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, id)
	}
	for _, r := range d.Values {
		var v []byte
		v = protowire.AppendTag(v, 1, protowire.BytesType)
		v = protowire.AppendBytes(v, r.Obis)
		v = protowire.AppendTag(v, 2, protowire.Fixed64Type)
		v = protowire.AppendFixed64(v, math.Float64bits(r.Value))
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, v)
	}
	return b
}
