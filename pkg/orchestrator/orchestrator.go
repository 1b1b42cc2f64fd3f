package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-initgen/pkg/extension"
	"github.com/goliatone/go-initgen/pkg/loader"
	"github.com/goliatone/go-initgen/pkg/pluginrequest"
	"github.com/goliatone/go-initgen/pkg/project"
	"github.com/goliatone/go-initgen/pkg/registry"
)

const (
	defaultScopeName = "project"
	defaultLocation  = "."
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects the plugin catalog discovery draws from.
func WithCatalog(catalog *extension.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = catalog
	}
}

// WithAppliedPlugins lists plugin ids the project applies on its own, ahead
// of any requested activation.
func WithAppliedPlugins(ids ...string) Option {
	return func(o *Orchestrator) {
		o.applied = append(o.applied, ids...)
	}
}

// WithSelector registers the Selector used when a request carries neither a
// selector nor a spec id.
func WithSelector(selector Selector) Option {
	return func(o *Orchestrator) {
		o.selector = selector
	}
}

// WithLogger routes orchestration and discovery diagnostics to logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithScopeName names the discovery scope created for each build.
func WithScopeName(name string) Option {
	return func(o *Orchestrator) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			o.scopeName = trimmed
		}
	}
}

// Orchestrator coordinates one build invocation. It keeps no state between
// invocations: every call creates a fresh scope and registry.
type Orchestrator struct {
	catalog   *extension.Catalog
	applied   []string
	selector  Selector
	logger    zerolog.Logger
	scopeName string
}

// New constructs an Orchestrator applying any provided options. A missing
// catalog is replaced with an empty one.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:    zerolog.Nop(),
		scopeName: defaultScopeName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.catalog == nil {
		o.catalog = extension.NewCatalog()
	}
	return o
}

// Request describes a single generation.
type Request struct {
	// TemplatePlugins is the comma separated `id[:version]` list of plugins
	// to force-activate before discovery. Empty means none.
	TemplatePlugins string

	// SpecID and Values are used when no Selector is available.
	SpecID string
	Values map[string]string

	// Location is the directory the project is generated into. Defaults to
	// the working directory.
	Location string

	// Selector overrides the orchestrator-level selector for this request.
	Selector Selector
}

// Outcome reports how a Generate call ended.
type Outcome int

const (
	// OutcomeGenerated means the generator ran successfully.
	OutcomeGenerated Outcome = iota
	// OutcomeNoTemplates means discovery found nothing; callers fall back to
	// their non-template flow.
	OutcomeNoTemplates
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGenerated:
		return "generated"
	case OutcomeNoTemplates:
		return "no-templates"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes a completed Generate call.
type Result struct {
	Outcome  Outcome
	Spec     project.Spec
	Location string
}

// Templates activates the requested plugins and runs discovery, returning
// the fresh registry.
func (o *Orchestrator) Templates(ctx context.Context, templatePlugins string) (*registry.Registry, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requests, err := pluginrequest.Parse(templatePlugins)
	if err != nil {
		return nil, err
	}

	scope, err := extension.NewScope(o.scopeName, o.catalog, o.applied...)
	if err != nil {
		return nil, err
	}
	if err := scope.Activate(ctx, requests); err != nil {
		return nil, err
	}
	if len(requests) > 0 {
		o.logger.Debug().
			Str("requests", pluginrequest.Format(requests)).
			Strs("applied", scope.Applied()).
			Msg("Activated template plugins")
	}

	return loader.New(scope, loader.WithLogger(o.logger)).LoadTemplates(ctx)
}

// Generate executes activation -> discovery -> selection -> validation ->
// resolution -> generation. An empty registry is not an error: the result
// carries OutcomeNoTemplates instead. Generator failures are returned as-is.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	reg, err := o.Templates(ctx, req.TemplatePlugins)
	if err != nil {
		return Result{}, err
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = defaultLocation
	}

	if !reg.TemplatesAvailable() {
		o.logger.Info().Msg("No project templates available")
		return Result{Outcome: OutcomeNoTemplates, Location: location}, nil
	}

	selection, err := o.selectTemplate(ctx, req, reg.AvailableTemplates())
	if err != nil {
		return Result{}, err
	}

	spec, ok := reg.Lookup(strings.TrimSpace(selection.SpecID))
	if !ok {
		return Result{}, &project.ConfigError{
			Subject: fmt.Sprintf("template %q", selection.SpecID),
			Reason:  "not offered by any applied plugin",
		}
	}

	config, err := project.NewConfig(spec, selection.Values)
	if err != nil {
		return Result{}, err
	}

	generator, err := reg.ProjectGenerator(spec)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	o.logger.Info().
		Str("template_id", spec.ID()).
		Str("generator", project.NameOf(generator)).
		Str("location", location).
		Msg("Generating project")

	if err := generator.Generate(ctx, config, location); err != nil {
		return Result{}, err
	}

	return Result{Outcome: OutcomeGenerated, Spec: spec, Location: location}, nil
}

func (o *Orchestrator) selectTemplate(ctx context.Context, req Request, available []project.Spec) (Selection, error) {
	selector := req.Selector
	if selector == nil && strings.TrimSpace(req.SpecID) == "" {
		selector = o.selector
	}
	if selector == nil {
		if strings.TrimSpace(req.SpecID) == "" {
			return Selection{}, &project.ConfigError{Subject: "template", Reason: "no template selected"}
		}
		selector = StaticSelector(req.SpecID, req.Values)
	}

	selection, err := selector.Select(ctx, available)
	if err != nil {
		return Selection{}, fmt.Errorf("orchestrator: select template: %w", err)
	}
	return selection, nil
}
