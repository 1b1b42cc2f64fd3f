package project

import (
	"context"
	"fmt"
)

// Generator materializes a configured template into location. Generation
// failures are returned to the caller unmodified.
type Generator interface {
	Generate(ctx context.Context, config Config, location string) error
}

// Named is implemented by generators and suppliers that want a stable name in
// diagnostics instead of their Go type.
type Named interface {
	Name() string
}

// GeneratorFunc adapts a function into a Generator.
type GeneratorFunc func(ctx context.Context, config Config, location string) error

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, config Config, location string) error {
	return f(ctx, config, location)
}

// NameOf returns a diagnostic name for a generator or supplier.
func NameOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	if named, ok := v.(Named); ok && named.Name() != "" {
		return named.Name()
	}
	return fmt.Sprintf("%T", v)
}
