// Package loader runs a discovery pass: it enumerates the suppliers visible
// from a discovery context, collects their specs grouped by owning generator
// and builds a fresh registry from the result.
package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/project"
	"github.com/goliatone/go-initgen/pkg/registry"
)

// Option customises the loader.
type Option func(*Loader)

// WithLogger routes discovery diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// Loader discovers templates from a project-scoped discovery context.
type Loader struct {
	discovery extension.DiscoveryContext
	logger    zerolog.Logger
}

// New constructs a loader over the given discovery context.
func New(discovery extension.DiscoveryContext, options ...Option) *Loader {
	l := &Loader{
		discovery: discovery,
		logger:    zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// LoadTemplates runs one discovery pass. A supplier failing during discovery
// aborts the whole pass: no partial registry is ever returned.
func (l *Loader) LoadTemplates(ctx context.Context) (*registry.Registry, error) {
	if ctx == nil {
		return nil, errors.New("loader: context is required")
	}
	if l.discovery == nil {
		return nil, &project.InternalError{Op: "load templates", Msg: "discovery context is nil"}
	}

	passID := uuid.NewString()
	logger := l.logger.With().
		Str("pass_id", passID).
		Str("scope", l.discovery.Name()).
		Logger()

	suppliers, err := l.discovery.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader: enumerate suppliers: %w", err)
	}
	logger.Debug().Int("suppliers", len(suppliers)).Msg("Starting template discovery")

	entries := make([]registry.Entry, 0, len(suppliers))
	for _, supplier := range suppliers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		specs, err := supplier.ProjectDefinitions(ctx)
		if err != nil {
			logger.Error().Err(err).Str("supplier", supplier.Name()).Msg("Template discovery failed")
			return nil, &project.DiscoveryError{Supplier: supplier.Name(), Err: err}
		}

		generator := supplier.ProjectGenerator()
		if generator == nil {
			return nil, &project.InternalError{
				Op:  "load templates",
				Msg: fmt.Sprintf("supplier %q declared no generator", supplier.Name()),
			}
		}

		for _, spec := range specs {
			logger.Info().
				Str("template", spec.DisplayName()).
				Str("template_id", spec.ID()).
				Str("supplier", supplier.Name()).
				Str("generator", project.NameOf(generator)).
				Msg("Loaded template")
		}

		entries = append(entries, registry.Entry{
			Generator: generator,
			Specs:     specs,
			Supplier:  supplier.Name(),
		})
	}

	reg, err := registry.New(entries...)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Int("generators", reg.Len()).
		Int("templates", len(reg.AvailableTemplates())).
		Msg("Template discovery finished")
	return reg, nil
}
