package project

import (
	"fmt"
	"strings"
)

// Spec identifies one offerable project template. The ID is the stable
// identity used for equality and lookup; DisplayName is for humans only.
type Spec struct {
	id          string
	displayName string
	description string
	parameters  []Parameter
}

// SpecOption customises a Spec during construction.
type SpecOption func(*Spec)

// WithDescription attaches a longer description shown by listings.
func WithDescription(description string) SpecOption {
	return func(s *Spec) {
		s.description = strings.TrimSpace(description)
	}
}

// WithParameters declares the template's inputs in prompt order.
func WithParameters(params ...Parameter) SpecOption {
	return func(s *Spec) {
		s.parameters = append(s.parameters, params...)
	}
}

// NewSpec builds an immutable Spec. The display name falls back to the id.
func NewSpec(id, displayName string, options ...SpecOption) (Spec, error) {
	spec := Spec{
		id:          strings.TrimSpace(id),
		displayName: strings.TrimSpace(displayName),
	}
	if spec.id == "" {
		return Spec{}, fmt.Errorf("project: spec id is required")
	}
	if spec.displayName == "" {
		spec.displayName = spec.id
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&spec)
	}

	seen := make(map[string]struct{}, len(spec.parameters))
	for _, param := range spec.parameters {
		if err := param.validate(); err != nil {
			return Spec{}, fmt.Errorf("project: spec %q: %w", spec.id, err)
		}
		if _, exists := seen[param.name]; exists {
			return Spec{}, fmt.Errorf("project: spec %q: duplicate parameter %q", spec.id, param.name)
		}
		seen[param.name] = struct{}{}
	}
	return spec, nil
}

// MustSpec panics when NewSpec fails. Useful for suppliers declaring their
// templates in package variables.
func MustSpec(id, displayName string, options ...SpecOption) Spec {
	spec, err := NewSpec(id, displayName, options...)
	if err != nil {
		panic(err)
	}
	return spec
}

func (s Spec) ID() string          { return s.id }
func (s Spec) DisplayName() string { return s.displayName }
func (s Spec) Description() string { return s.description }

// Parameters returns the declared parameters in declaration order.
func (s Spec) Parameters() []Parameter {
	if len(s.parameters) == 0 {
		return nil
	}
	return append([]Parameter(nil), s.parameters...)
}

// Parameter looks up a declared parameter by name.
func (s Spec) Parameter(name string) (Parameter, bool) {
	for _, param := range s.parameters {
		if param.name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// Equal reports whether both specs carry the same identity.
func (s Spec) Equal(other Spec) bool {
	return s.id == other.id
}

// IsZero reports whether the spec was never constructed.
func (s Spec) IsZero() bool {
	return s.id == ""
}

func (s Spec) String() string {
	if s.displayName == s.id {
		return s.id
	}
	return fmt.Sprintf("%s (%s)", s.displayName, s.id)
}
