package sample

import (
	"time"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/convert"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/obis"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/wire"
)

// Options tunes Build.
type Options struct {
	// AdjustEpoch subtracts the 0001-01-01 to 1970-01-01 offset before
	// converting ticks. Off by default.
	AdjustEpoch bool
}

// Stats summarises a Build call.
type Stats struct {
	Samples      int
	Measurements int
	Unrecognized int
}

// Build turns the raw payload into samples, one per device item, in payload
// order. Values with unrecognised OBIS codes are dropped and counted.
func Build(p wire.Payload, opts Options) ([]DeviceSample, Stats) {
	toTime := convert.TicksToTime
	if opts.AdjustEpoch {
		toTime = convert.TicksToUnixTime
	}

	var stats Stats
	samples := make([]DeviceSample, 0, len(p.Items))
	for _, item := range p.Items {
		s := buildOne(item, toTime, &stats)
		samples = append(samples, s)
	}
	stats.Samples = len(samples)
	return samples, stats
}

func buildOne(item wire.DeviceData, toTime func(int64) time.Time, stats *Stats) DeviceSample {
	s := DeviceSample{
		deviceID:  convert.DeviceIDString(item.DeviceID.Hi, item.DeviceID.Lo),
		timestamp: toTime(item.Ticks),
	}
	for _, v := range item.Values {
		kind, ok := obis.Classify(v.Obis)
		if !ok {
			stats.Unrecognized++
			continue
		}
		s.measurements = append(s.measurements, Measurement{Kind: kind, Value: v.Value})
	}
	stats.Measurements += len(s.measurements)
	return s
}
