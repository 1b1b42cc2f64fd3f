package extension

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/goliatone/go-initgen/pkg/pluginrequest"
	"github.com/goliatone/go-initgen/pkg/project"
)

// DiscoveryContext enumerates the suppliers visible to one discovery pass.
type DiscoveryContext interface {
	Name() string
	Suppliers(ctx context.Context) ([]project.Supplier, error)
}

// Scope is the project-scoped discovery context. Only plugins applied to the
// scope, either by the project itself or through Activate, contribute
// suppliers. A Scope lives for one build and is discarded afterwards.
type Scope struct {
	name    string
	catalog *Catalog
	applied []Plugin
	index   map[string]struct{}
}

var _ DiscoveryContext = (*Scope)(nil)

// NewScope creates a scope over catalog and applies the given plugin ids.
func NewScope(name string, catalog *Catalog, applied ...string) (*Scope, error) {
	if catalog == nil {
		return nil, fmt.Errorf("extension: catalog is required")
	}
	scope := &Scope{
		name:    strings.TrimSpace(name),
		catalog: catalog,
		index:   make(map[string]struct{}),
	}
	if scope.name == "" {
		scope.name = "project"
	}
	for _, id := range applied {
		if err := scope.Apply(id); err != nil {
			return nil, err
		}
	}
	return scope, nil
}

// Name identifies the scope in diagnostics.
func (s *Scope) Name() string {
	return s.name
}

// Apply makes a catalog plugin visible to discovery. Applying twice is a
// no-op.
func (s *Scope) Apply(id string) error {
	plugin, ok := s.catalog.Get(id)
	if !ok {
		return &project.ConfigError{
			Subject: fmt.Sprintf("plugin %q", id),
			Reason:  "not found in the plugin catalog",
		}
	}
	s.apply(plugin)
	return nil
}

// Activate force-applies every request before discovery. A request naming an
// unknown plugin or a version the catalog does not carry is a ConfigError.
func (s *Scope) Activate(ctx context.Context, requests []pluginrequest.Request) error {
	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return err
		}
		plugin, ok := s.catalog.Get(req.ID)
		if !ok {
			return &project.ConfigError{
				Subject: fmt.Sprintf("plugin request %q", req.String()),
				Reason:  "plugin not found in the plugin catalog",
			}
		}
		if req.HasVersion() && !versionMatches(req.Version, plugin.Version()) {
			return &project.ConfigError{
				Subject: fmt.Sprintf("plugin request %q", req.String()),
				Reason:  fmt.Sprintf("requested version %s but %s is available", req.Version, displayVersion(plugin.Version())),
			}
		}
		s.apply(plugin)
	}
	return nil
}

// Applied returns the ids of the applied plugins in application order.
func (s *Scope) Applied() []string {
	ids := make([]string, 0, len(s.applied))
	for _, plugin := range s.applied {
		ids = append(ids, plugin.ID())
	}
	return ids
}

// Suppliers returns the suppliers contributed by applied plugins, in
// application order.
func (s *Scope) Suppliers(ctx context.Context) ([]project.Supplier, error) {
	var out []project.Supplier
	for _, plugin := range s.applied {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, supplier := range plugin.Suppliers() {
			if supplier == nil {
				return nil, &project.InternalError{
					Op:  "discover suppliers",
					Msg: fmt.Sprintf("plugin %q contributed a nil supplier", plugin.ID()),
				}
			}
			out = append(out, supplier)
		}
	}
	return out, nil
}

func (s *Scope) apply(plugin Plugin) {
	id := normalizeID(plugin.ID())
	if _, exists := s.index[id]; exists {
		return
	}
	s.index[id] = struct{}{}
	s.applied = append(s.applied, plugin)
}

func versionMatches(requested, available string) bool {
	if requested == available {
		return true
	}
	want, errWant := semver.NewVersion(requested)
	have, errHave := semver.NewVersion(available)
	if errWant != nil || errHave != nil {
		return false
	}
	return want.Equal(have)
}

func displayVersion(version string) string {
	if version == "" {
		return "an unversioned plugin"
	}
	return version
}
