package orchestrator

import (
	"context"

	"github.com/goliatone/go-initgen/pkg/project"
)

// Selection is the caller's choice of template and raw parameter values.
type Selection struct {
	SpecID string
	Values map[string]string
}

// Selector obtains a Selection from the caller once templates are known.
type Selector interface {
	Select(ctx context.Context, available []project.Spec) (Selection, error)
}

// SelectorFunc adapts a function into a Selector.
type SelectorFunc func(ctx context.Context, available []project.Spec) (Selection, error)

// Select calls f.
func (f SelectorFunc) Select(ctx context.Context, available []project.Spec) (Selection, error) {
	return f(ctx, available)
}

// StaticSelector returns a Selector that always answers with the given
// choice, used for non-interactive runs.
func StaticSelector(specID string, values map[string]string) Selector {
	return SelectorFunc(func(context.Context, []project.Spec) (Selection, error) {
		return Selection{SpecID: specID, Values: values}, nil
	})
}
