package smartme

import (
	"context"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/metrics"
	internalopts "github.com/lekkimworld/smartme-protobuf-parser/internal/options"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/sample"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// SchemaPath points at a FileDescriptorSet (protojson or binary). Empty
	// selects the embedded schema.
	SchemaPath string
	// AdjustEpoch converts timestamps relative to the Unix epoch instead of
	// reading the scaled tick count as Unix milliseconds.
	AdjustEpoch bool
	// Recorder receives decode metrics. Nil disables them.
	Recorder metrics.Recorder
}

func (opts DecodeOptions) toInternal(ctx context.Context) context.Context {
	ctx = internalopts.WithRecorder(ctx, opts.Recorder)
	return internalopts.WithBuild(ctx, sample.Options{AdjustEpoch: opts.AdjustEpoch})
}
