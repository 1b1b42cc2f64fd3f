// Package initgen discovers project templates contributed by plugins and
// generates new projects from them.
package initgen

import (
	"context"

	"github.com/goliatone/go-initgen/pkg/builtin"
	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/orchestrator"
	"github.com/goliatone/go-initgen/pkg/pack"
	"github.com/goliatone/go-initgen/pkg/project"
)

// Spec aliases project.Spec for callers that only import the root package.
type Spec = project.Spec

// Parameter aliases project.Parameter.
type Parameter = project.Parameter

// Config aliases project.Config.
type Config = project.Config

// Generator aliases project.Generator.
type Generator = project.Generator

// Supplier aliases project.Supplier.
type Supplier = project.Supplier

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewCatalog returns a catalog holding the built-in plugin and every pack
// found under packDirs.
func NewCatalog(packDirs ...string) (*extension.Catalog, error) {
	catalog := extension.NewCatalog()
	if err := builtin.Register(catalog); err != nil {
		return nil, err
	}
	packs, err := pack.LoadDirs(packDirs)
	if err != nil {
		return nil, err
	}
	for _, p := range packs {
		if err := catalog.Register(p); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// Generate runs a non-interactive generation of specID into location using
// the built-in plugin applied to the project.
func Generate(ctx context.Context, specID string, values map[string]string, location string, options ...orchestrator.Option) (Result, error) {
	catalog, err := NewCatalog()
	if err != nil {
		return Result{}, err
	}
	opts := append([]orchestrator.Option{
		orchestrator.WithCatalog(catalog),
		orchestrator.WithAppliedPlugins(builtin.PluginID),
	}, options...)

	return orchestrator.New(opts...).Generate(ctx, orchestrator.Request{
		SpecID:   specID,
		Values:   values,
		Location: location,
	})
}
