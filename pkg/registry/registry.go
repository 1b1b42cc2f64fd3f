// Package registry indexes discovered templates by the generator that owns
// them. A Registry is built once per discovery pass and is read-only
// afterwards.
package registry

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-initgen/pkg/project"
)

// Entry groups the specs owned by one generator. Supplier names the first
// supplier that declared the generator; SupplierOf reports per template
// provenance when several suppliers share one.
type Entry struct {
	Generator project.Generator
	Specs     []project.Spec
	Supplier  string
}

// Registry maps generators to the ordered specs they own. Every spec appears
// under exactly one generator.
type Registry struct {
	entries []Entry
	owners  map[string]string
}

// New builds a registry from discovery results. Entries sharing a generator
// are merged in order. A spec declared twice is a programming error in the
// contributing extensions and is reported as an InternalError.
func New(entries ...Entry) (*Registry, error) {
	reg := &Registry{owners: make(map[string]string)}
	owners := reg.owners

	for _, entry := range entries {
		if entry.Generator == nil {
			return nil, &project.InternalError{
				Op:  "build registry",
				Msg: fmt.Sprintf("supplier %q declared no generator", entry.Supplier),
			}
		}

		target := reg.indexOf(entry.Generator)
		if target < 0 {
			reg.entries = append(reg.entries, Entry{
				Generator: entry.Generator,
				Supplier:  entry.Supplier,
			})
			target = len(reg.entries) - 1
		}

		for _, spec := range entry.Specs {
			if spec.IsZero() {
				return nil, &project.InternalError{
					Op:  "build registry",
					Msg: fmt.Sprintf("supplier %q declared an empty spec", entry.Supplier),
				}
			}
			if previous, exists := owners[spec.ID()]; exists {
				return nil, &project.InternalError{
					Op:  "build registry",
					Msg: fmt.Sprintf("template %q declared by both %q and %q", spec.ID(), previous, entry.Supplier),
				}
			}
			owners[spec.ID()] = entry.Supplier
			reg.entries[target].Specs = append(reg.entries[target].Specs, spec)
		}
	}

	return reg, nil
}

// AvailableTemplates returns every spec across all generators. Order follows
// discovery and is meant for display only.
func (r *Registry) AvailableTemplates() []project.Spec {
	if r == nil {
		return nil
	}
	var out []project.Spec
	for _, entry := range r.entries {
		out = append(out, entry.Specs...)
	}
	return out
}

// ProjectGenerator returns the generator owning spec. Asking for a spec this
// registry never issued is an InternalError, never a configuration error.
func (r *Registry) ProjectGenerator(spec project.Spec) (project.Generator, error) {
	if r != nil {
		for _, entry := range r.entries {
			for _, candidate := range entry.Specs {
				if candidate.Equal(spec) {
					return entry.Generator, nil
				}
			}
		}
	}
	return nil, &project.InternalError{
		Op:  "resolve generator",
		Msg: fmt.Sprintf("spec %q not found in available templates", spec.ID()),
	}
}

// TemplatesAvailable reports whether at least one generator owns a spec.
func (r *Registry) TemplatesAvailable() bool {
	if r == nil {
		return false
	}
	for _, entry := range r.entries {
		if len(entry.Specs) > 0 {
			return true
		}
	}
	return false
}

// Lookup resolves a spec by id.
func (r *Registry) Lookup(id string) (project.Spec, bool) {
	if r == nil {
		return project.Spec{}, false
	}
	for _, entry := range r.entries {
		for _, spec := range entry.Specs {
			if spec.ID() == id {
				return spec, true
			}
		}
	}
	return project.Spec{}, false
}

// SupplierOf returns the name of the supplier that declared template id.
func (r *Registry) SupplierOf(id string) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.owners[id]
	return name, ok
}

// Entries returns a snapshot of the registry for diagnostics.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	for i, entry := range r.entries {
		out[i] = Entry{
			Generator: entry.Generator,
			Specs:     append([]project.Spec(nil), entry.Specs...),
			Supplier:  entry.Supplier,
		}
	}
	return out
}

// Len reports the number of generator entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

func (r *Registry) indexOf(gen project.Generator) int {
	for i, entry := range r.entries {
		if sameGenerator(entry.Generator, gen) {
			return i
		}
	}
	return -1
}

// sameGenerator compares generator identity. Values that are not comparable
// (func adapters, structs holding slices directly or behind an interface
// field) never match, so each such generator keeps its own entry.
func sameGenerator(a, b project.Generator) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
