package project

import (
	"fmt"
	"strconv"
	"strings"
)

// ParameterKind enumerates the value types a Parameter accepts.
type ParameterKind string

const (
	KindString  ParameterKind = "string"
	KindBoolean ParameterKind = "boolean"
	KindInteger ParameterKind = "integer"
	KindEnum    ParameterKind = "enum"
)

// Parameter declares one configurable input of a Spec. Values are never
// mutated after construction; Allowed returns a copy.
type Parameter struct {
	name        string
	description string
	kind        ParameterKind
	def         any
	allowed     []string
}

// StringParameter declares a free-form text input.
func StringParameter(name, description, def string) Parameter {
	return Parameter{name: strings.TrimSpace(name), description: description, kind: KindString, def: def}
}

// BooleanParameter declares a yes/no input.
func BooleanParameter(name, description string, def bool) Parameter {
	return Parameter{name: strings.TrimSpace(name), description: description, kind: KindBoolean, def: def}
}

// IntegerParameter declares a whole number input.
func IntegerParameter(name, description string, def int) Parameter {
	return Parameter{name: strings.TrimSpace(name), description: description, kind: KindInteger, def: def}
}

// EnumParameter declares an input restricted to a closed set of values. The
// default must be one of allowed; NewSpec rejects the parameter otherwise.
func EnumParameter(name, description, def string, allowed ...string) Parameter {
	return Parameter{
		name:        strings.TrimSpace(name),
		description: description,
		kind:        KindEnum,
		def:         def,
		allowed:     append([]string(nil), allowed...),
	}
}

func (p Parameter) Name() string        { return p.name }
func (p Parameter) Description() string { return p.description }
func (p Parameter) Kind() ParameterKind { return p.kind }
func (p Parameter) Default() any        { return p.def }

// Allowed returns the closed value set for enum parameters, nil otherwise.
func (p Parameter) Allowed() []string {
	if len(p.allowed) == 0 {
		return nil
	}
	return append([]string(nil), p.allowed...)
}

// IsAllowed reports whether value satisfies the allowed-value constraint.
// Parameters without a constraint accept everything.
func (p Parameter) IsAllowed(value string) bool {
	if len(p.allowed) == 0 {
		return true
	}
	for _, candidate := range p.allowed {
		if candidate == value {
			return true
		}
	}
	return false
}

// Coerce converts a raw textual value into the parameter's Go type.
func (p Parameter) Coerce(raw string) (any, error) {
	value := strings.TrimSpace(raw)
	switch p.kind {
	case KindBoolean:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, &ConfigError{Subject: p.name, Reason: fmt.Sprintf("expected a boolean, got %q", raw)}
		}
		return parsed, nil
	case KindInteger:
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return nil, &ConfigError{Subject: p.name, Reason: fmt.Sprintf("expected an integer, got %q", raw)}
		}
		return parsed, nil
	case KindEnum:
		if !p.IsAllowed(value) {
			return nil, &ConfigError{
				Subject: p.name,
				Reason:  fmt.Sprintf("value %q is not one of [%s]", raw, strings.Join(p.allowed, ", ")),
			}
		}
		return value, nil
	default:
		return raw, nil
	}
}

func (p Parameter) validate() error {
	if p.name == "" {
		return fmt.Errorf("parameter name is required")
	}
	switch p.kind {
	case KindString, KindBoolean, KindInteger:
		if len(p.allowed) > 0 {
			return fmt.Errorf("parameter %q: only enum parameters declare allowed values", p.name)
		}
	case KindEnum:
		if len(p.allowed) == 0 {
			return fmt.Errorf("parameter %q: enum requires at least one allowed value", p.name)
		}
		def, _ := p.def.(string)
		if !p.IsAllowed(def) {
			return fmt.Errorf("parameter %q: default %q is not an allowed value", p.name, def)
		}
	default:
		return fmt.Errorf("parameter %q: unknown kind %q", p.name, p.kind)
	}
	return nil
}
