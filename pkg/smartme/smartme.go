package smartme

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/lekkimworld/smartme-protobuf-parser/internal/metrics"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/options"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/sample"
	"github.com/lekkimworld/smartme-protobuf-parser/internal/schema"
)

var (
	// ErrDecode is returned when a payload does not conform to the schema.
	ErrDecode = schema.ErrDecode
	// ErrSchemaLoad is returned when the schema cannot be loaded.
	ErrSchemaLoad = schema.ErrSchemaLoad
)

var (
	loadersMu sync.Mutex
	loaders   = map[string]*schema.Loader{}
)

// loaderFor returns the process-wide loader for a schema path; the empty path
// selects the embedded schema.
func loaderFor(path string) *schema.Loader {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	if l, ok := loaders[path]; ok {
		return l
	}
	src := schema.Embedded()
	if path != "" {
		src = schema.File(path)
	}
	l := schema.NewLoader(src)
	loaders[path] = l
	return l
}

// Decode turns a binary payload into device samples, one per device item in
// payload order. The schema is loaded on first use and shared afterwards.
func Decode(ctx context.Context, payload []byte) ([]DeviceSample, error) {
	return DecodeWithOptions(ctx, payload, DecodeOptions{})
}

// DecodeHex decodes a hex-encoded payload.
func DecodeHex(ctx context.Context, raw string) ([]DeviceSample, error) {
	return DecodeHexWithOptions(ctx, raw, DecodeOptions{})
}

// DecodeHexWithOptions decodes a hex-encoded payload with custom options.
func DecodeHexWithOptions(ctx context.Context, raw string, opts DecodeOptions) ([]DeviceSample, error) {
	data, err := decodeHex(raw)
	if err != nil {
		options.Recorder(opts.toInternal(ctx)).ObserveFailure(metrics.StageInput)
		return nil, err
	}
	return DecodeWithOptions(ctx, data, opts)
}

// DecodeWithOptions decodes a payload with custom options. No partial result
// is returned on error.
func DecodeWithOptions(ctx context.Context, payload []byte, opts DecodeOptions) ([]DeviceSample, error) {
	ctx = opts.toInternal(ctx)
	rec := options.Recorder(ctx)

	s, err := loaderFor(opts.SchemaPath).Load(ctx)
	if err != nil {
		rec.ObserveFailure(metrics.StageSchema)
		return nil, err
	}

	start := time.Now()
	raw, err := s.Decode(payload)
	if err != nil {
		rec.ObserveFailure(metrics.StageDecode)
		return nil, err
	}
	samples, stats := sample.Build(raw, options.Build(ctx))
	rec.ObserveDecode(stats.Samples, stats.Measurements, stats.Unrecognized, time.Since(start))
	return samples, nil
}

func decodeHex(input string) ([]byte, error) {
	clean := stripWhitespace(input)
	if strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "0X") {
		clean = clean[2:]
	}
	if len(clean)%2 != 0 {
		return nil, fmt.Errorf("hex payload must contain an even number of digits, got %d", len(clean))
	}
	decoded := make([]byte, len(clean)/2)
	if _, err := hex.Decode(decoded, []byte(clean)); err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded, nil
}

func stripWhitespace(s string) string {
	builder := strings.Builder{}
	builder.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '|' || r == '_' {
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
