package sample

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/obis"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/wire"
)

var (
	energyImport = []byte{0x01, 0x00, 0x01, 0x08, 0x00, 0xFF}
	voltageL1    = []byte{0x01, 0x00, 0x20, 0x07, 0x00, 0xFF}
	currentL2    = []byte{0x01, 0x00, 0x33, 0x07, 0x00, 0xFF}
	unknownCode  = []byte{0x01, 0x00, 0x63, 0x07, 0x00, 0xFF}
)

func testPayload() wire.Payload {
	return wire.Payload{Items: []wire.DeviceData{
		{
			Ticks:    636000000000000000,
			DeviceID: wire.DeviceID{Hi: 0x0123456789ABCDEF, Lo: 0xFEDCBA9876543210},
			Values: []wire.Value{
				{Obis: voltageL1, Value: 231.2},
				{Obis: unknownCode, Value: 50},
				{Obis: energyImport, Value: 1000},
				{Obis: energyImport, Value: 2000},
				{Obis: []byte{0x01}, Value: 1},
			},
		},
		{
			Ticks:    0,
			DeviceID: wire.DeviceID{},
		},
		{
			Ticks:    636000000000019999,
			DeviceID: wire.DeviceID{Hi: 0x1122334455667788, Lo: 0x99AABBCCDDEEFF00},
			Values:   []wire.Value{{Obis: currentL2, Value: 4.5}},
		},
	}}
}

func TestBuildPreservesOrder(t *testing.T) {
	samples, stats := Build(testPayload(), Options{})
	require.Len(t, samples, 3)
	require.Equal(t, Stats{Samples: 3, Measurements: 4, Unrecognized: 2}, stats)

	first := samples[0]
	require.Equal(t, "89abcdef-4567-0123-1032-547698badcfe", first.DeviceID())
	require.Equal(t, int64(63600000000000), first.Timestamp().UnixMilli())
	require.Equal(t, []Measurement{
		{Kind: obis.VoltagePhaseL1, Value: 231.2},
		{Kind: obis.ActiveEnergyTotalImport, Value: 1000},
		{Kind: obis.ActiveEnergyTotalImport, Value: 2000},
	}, first.Measurements())

	require.Equal(t, "00000000-0000-0000-0000-000000000000", samples[1].DeviceID())
	require.Equal(t, 0, samples[1].Len())

	last := samples[2]
	require.Equal(t, "55667788-3344-1122-00ff-eeddccbbaa99", last.DeviceID())
	require.Equal(t, int64(63600000000001), last.Timestamp().UnixMilli())
}

func TestBuildDeterministic(t *testing.T) {
	a, _ := Build(testPayload(), Options{})
	b, _ := Build(testPayload(), Options{})
	require.Equal(t, a, b)
}

func TestBuildEmpty(t *testing.T) {
	samples, stats := Build(wire.Payload{}, Options{})
	require.NotNil(t, samples)
	require.Empty(t, samples)
	require.Equal(t, Stats{}, stats)
}

func TestBuildAdjustEpoch(t *testing.T) {
	samples, _ := Build(testPayload(), Options{AdjustEpoch: true})
	want := time.Date(2016, time.May, 28, 2, 40, 0, 0, time.UTC)
	require.True(t, want.Equal(samples[0].Timestamp()), samples[0].Timestamp().String())
}

func TestValueLookup(t *testing.T) {
	s := New("id", time.Unix(0, 0),
		Measurement{Kind: obis.VoltagePhaseL1, Value: 230},
		Measurement{Kind: obis.CurrentPhaseL1, Value: 5},
		Measurement{Kind: obis.VoltagePhaseL1, Value: 999},
	)

	v, ok := s.Value(obis.VoltagePhaseL1)
	require.True(t, ok)
	require.Equal(t, 230.0, v)

	v, ok = s.Value(obis.CurrentPhaseL1)
	require.True(t, ok)
	require.Equal(t, 5.0, v)

	v, ok = s.Value(obis.ActivePowerTotal)
	require.False(t, ok)
	require.Zero(t, v)
}

func TestMeasurementsIsACopy(t *testing.T) {
	s := New("id", time.Unix(0, 0), Measurement{Kind: obis.VoltagePhaseL1, Value: 230})
	got := s.Measurements()
	got[0].Value = 1
	v, _ := s.Value(obis.VoltagePhaseL1)
	require.Equal(t, 230.0, v)
}

func TestMarshal(t *testing.T) {
	s := New("89abcdef-4567-0123-1032-547698badcfe", time.UnixMilli(1500).UTC(),
		Measurement{Kind: obis.ActivePowerTotalImportExport, Value: -12.5},
	)
	data, err := json.Marshal(s)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"device_id": "89abcdef-4567-0123-1032-547698badcfe",
		"timestamp": "1970-01-01T00:00:01.5Z",
		"measurements": [{"kind": "ActivePowerTotal_ImportExport", "obis": "1-0:16.7.0*255", "value": -12.5}]
	}`, string(data))

	out, err := yaml.Marshal(s)
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, "89abcdef-4567-0123-1032-547698badcfe", back["device_id"])
	measurements, ok := back["measurements"].([]any)
	require.True(t, ok)
	require.Len(t, measurements, 1)
}

func TestMarshalEmptyMeasurements(t *testing.T) {
	data, err := json.Marshal(New("id", time.Unix(0, 0).UTC()))
	require.NoError(t, err)
	require.Contains(t, string(data), `"measurements":[]`)
}
