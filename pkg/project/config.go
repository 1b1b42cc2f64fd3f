package project

import (
	"fmt"
	"sort"
	"strings"
)

// Config binds concrete values to every parameter of a Spec. It is built once
// per generation request and handed to exactly one Generator.
type Config struct {
	spec      Spec
	arguments map[string]any
}

// NewConfig validates values against the spec's parameters. Keys must be
// declared by the spec; missing parameters take their declared default.
// Failures are ConfigErrors naming the offending parameter.
func NewConfig(spec Spec, values map[string]string) (Config, error) {
	if spec.IsZero() {
		return Config{}, &InternalError{Op: "new config", Msg: "spec is required"}
	}

	var unknown []string
	for key := range values {
		if _, ok := spec.Parameter(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Config{}, &ConfigError{
			Subject: strings.Join(unknown, ", "),
			Reason:  fmt.Sprintf("not declared by template %q", spec.ID()),
		}
	}

	arguments := make(map[string]any, len(spec.parameters))
	for _, param := range spec.parameters {
		raw, ok := values[param.name]
		if !ok {
			arguments[param.name] = param.def
			continue
		}
		value, err := param.Coerce(raw)
		if err != nil {
			return Config{}, err
		}
		arguments[param.name] = value
	}

	return Config{spec: spec, arguments: arguments}, nil
}

// Spec returns the template this config was built for.
func (c Config) Spec() Spec {
	return c.spec
}

// Arguments returns a copy of the bound values keyed by parameter name.
func (c Config) Arguments() map[string]any {
	out := make(map[string]any, len(c.arguments))
	for key, value := range c.arguments {
		out[key] = value
	}
	return out
}

// Value returns the bound value for name.
func (c Config) Value(name string) (any, bool) {
	value, ok := c.arguments[name]
	return value, ok
}

// String returns the value for name formatted as text.
func (c Config) String(name string) string {
	value, ok := c.arguments[name]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// Bool returns the value for a boolean parameter, false when absent.
func (c Config) Bool(name string) bool {
	value, _ := c.arguments[name].(bool)
	return value
}

// Int returns the value for an integer parameter, zero when absent.
func (c Config) Int(name string) int {
	value, _ := c.arguments[name].(int)
	return value
}
