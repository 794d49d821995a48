package options

import (
	"context"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/metrics"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/sample"
)

type recorderKey struct{}

type buildKey struct{}

// WithRecorder stores the metrics recorder inside the context.
func WithRecorder(ctx context.Context, r metrics.Recorder) context.Context {
	if r == nil {
		return ctx
	}
	return context.WithValue(ctx, recorderKey{}, r)
}

// Recorder retrieves the recorder from context, falling back to a no-op.
func Recorder(ctx context.Context) metrics.Recorder {
	if r, ok := ctx.Value(recorderKey{}).(metrics.Recorder); ok {
		return r
	}
	return metrics.Nop{}
}

// WithBuild stores sample build options inside the context.
func WithBuild(ctx context.Context, opts sample.Options) context.Context {
	return context.WithValue(ctx, buildKey{}, opts)
}

// Build retrieves the sample build options, zero value if absent.
func Build(ctx context.Context) sample.Options {
	if opts, ok := ctx.Value(buildKey{}).(sample.Options); ok {
		return opts
	}
	return sample.Options{}
}
