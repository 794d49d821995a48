package schema

import (
	"context"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Source yields the raw descriptor set bytes.
type Source func(ctx context.Context) ([]byte, error)

// Embedded returns the descriptor set compiled into the binary.
func Embedded() Source {
	return func(context.Context) ([]byte, error) {
		return embeddedDescriptor, nil
	}
}

// File reads the descriptor set from path.
func File(path string) Source {
	return func(context.Context) ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		return data, nil
	}
}

// Loader loads a Schema at most once per successful attempt and shares a
// single in-flight load among concurrent callers. A failed load is not
// cached; the next call tries again.
type Loader struct {
	src   Source
	group singleflight.Group

	mu     sync.RWMutex
	schema *Schema
}

// NewLoader returns a Loader reading from src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load returns the schema, loading it on first use. The load itself is not
// tied to ctx; ctx only bounds how long this caller waits.
func (l *Loader) Load(ctx context.Context) (*Schema, error) {
	if s := l.cached(); s != nil {
		return s, nil
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("schema", func() (any, error) {
		if s := l.cached(); s != nil {
			return s, nil
		}
		data, err := l.src(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSchemaLoad, err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.schema = s
		l.mu.Unlock()
		return s, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Schema), nil
	}
}

// Loaded reports whether a schema is cached.
func (l *Loader) Loaded() bool {
	return l.cached() != nil
}

func (l *Loader) cached() *Schema {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.schema
}
