package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Failure stages reported through ObserveFailure.
const (
	StageSchema = "schema"
	StageDecode = "decode"
	StageInput  = "input"
)

// Recorder receives decode outcomes.
type Recorder interface {
	ObserveDecode(samples, measurements, unrecognized int, elapsed time.Duration)
	ObserveFailure(stage string)
}

// Nop discards everything.
type Nop struct{}

// ObserveDecode does nothing.
func (Nop) ObserveDecode(int, int, int, time.Duration) {}

// ObserveFailure does nothing.
func (Nop) ObserveFailure(string) {}

// Prom exports decode outcomes as Prometheus metrics. Build it with NewProm;
// a nil *Prom records nothing.
type Prom struct {
	decodes      prometheus.Counter
	failures     *prometheus.CounterVec
	samples      prometheus.Counter
	measurements prometheus.Counter
	unrecognized prometheus.Counter
	duration     prometheus.Histogram
}

// NewProm registers the decoder metrics on reg.
func NewProm(reg prometheus.Registerer) (*Prom, error) {
	p := &Prom{
		decodes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartme_decodes_total",
			Help: "Payloads decoded successfully.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "smartme_decode_failures_total",
			Help: "Payloads rejected, by failing stage.",
		}, []string{"stage"}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartme_samples_total",
			Help: "Device samples produced.",
		}),
		measurements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartme_measurements_total",
			Help: "Measurements with a recognised OBIS code.",
		}),
		unrecognized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "smartme_unrecognized_obis_total",
			Help: "Values dropped because their OBIS code is not in the table.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "smartme_decode_duration_seconds",
			Help:    "Time spent decoding a payload once the schema is available.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
	for _, c := range []prometheus.Collector{p.decodes, p.failures, p.samples, p.measurements, p.unrecognized, p.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// ObserveDecode counts a successful decode and what it produced.
func (p *Prom) ObserveDecode(samples, measurements, unrecognized int, elapsed time.Duration) {
	if p == nil {
		return
	}
	p.decodes.Inc()
	p.samples.Add(float64(samples))
	p.measurements.Add(float64(measurements))
	p.unrecognized.Add(float64(unrecognized))
	p.duration.Observe(elapsed.Seconds())
}

// ObserveFailure counts a rejected payload under stage.
func (p *Prom) ObserveFailure(stage string) {
	if p == nil {
		return
	}
	p.failures.WithLabelValues(stage).Inc()
}
