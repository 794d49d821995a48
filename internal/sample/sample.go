package sample

import (
	"encoding/json"
	"time"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/obis"
)

// Measurement is one classified reading.
type Measurement struct {
	Kind  obis.Kind
	Value float64
}

// DeviceSample is one device's reading at one instant. Values are fixed once
// Build returns it.
type DeviceSample struct {
	deviceID     string
	timestamp    time.Time
	measurements []Measurement
}

// New returns a sample holding a copy of measurements.
func New(deviceID string, ts time.Time, measurements ...Measurement) DeviceSample {
	s := DeviceSample{deviceID: deviceID, timestamp: ts}
	if len(measurements) > 0 {
		s.measurements = append([]Measurement(nil), measurements...)
	}
	return s
}

// DeviceID returns the canonical UUID text of the device.
func (s DeviceSample) DeviceID() string { return s.deviceID }

// Timestamp returns the reading time at millisecond precision.
func (s DeviceSample) Timestamp() time.Time { return s.timestamp }

// Len returns the number of measurements.
func (s DeviceSample) Len() int { return len(s.measurements) }

// Measurements returns a copy of the measurements in payload order.
func (s DeviceSample) Measurements() []Measurement {
	return append([]Measurement(nil), s.measurements...)
}

// Value returns the first measurement of the given kind. The boolean is false
// when the sample carries no such measurement.
func (s DeviceSample) Value(kind obis.Kind) (float64, bool) {
	for _, m := range s.measurements {
		if m.Kind == kind {
			return m.Value, true
		}
	}
	return 0, false
}

type measurementView struct {
	Kind  string  `json:"kind" yaml:"kind"`
	Obis  string  `json:"obis" yaml:"obis"`
	Value float64 `json:"value" yaml:"value"`
}

type sampleView struct {
	DeviceID     string            `json:"device_id" yaml:"device_id"`
	Timestamp    time.Time         `json:"timestamp" yaml:"timestamp"`
	Measurements []measurementView `json:"measurements" yaml:"measurements"`
}

func (s DeviceSample) view() sampleView {
	v := sampleView{
		DeviceID:     s.deviceID,
		Timestamp:    s.timestamp,
		Measurements: make([]measurementView, 0, len(s.measurements)),
	}
	for _, m := range s.measurements {
		v.Measurements = append(v.Measurements, measurementView{
			Kind:  m.Kind.String(),
			Obis:  m.Kind.Code().String(),
			Value: m.Value,
		})
	}
	return v
}

// MarshalJSON implements json.Marshaler.
func (s DeviceSample) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.view())
}

// MarshalYAML implements yaml.Marshaler.
func (s DeviceSample) MarshalYAML() (any, error) {
	return s.view(), nil
}
