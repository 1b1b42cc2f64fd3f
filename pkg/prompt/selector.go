// Package prompt asks the user which template to generate and collects its
// parameter values interactively.
package prompt

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-initgen/pkg/orchestrator"
	"github.com/goliatone/go-initgen/pkg/project"
)

// Option configures the Selector.
type Option func(*Selector)

// WithPromptDriver overrides the prompt driver used by the selector.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Selector) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithPreset answers parameters up front; preset parameters are not prompted.
// Every preset is passed on, so keys the chosen template does not declare are
// rejected when the configuration is validated.
func WithPreset(values map[string]string) Option {
	return func(s *Selector) {
		for key, value := range values {
			s.preset[key] = value
		}
	}
}

// WithSpecID skips the template prompt. Select fails when id is not offered.
func WithSpecID(id string) Option {
	return func(s *Selector) {
		s.specID = id
	}
}

// Selector implements orchestrator.Selector with terminal prompts.
type Selector struct {
	driver PromptDriver
	preset map[string]string
	specID string
}

var _ orchestrator.Selector = (*Selector)(nil)

// New constructs a Selector with the survey driver by default.
func New(options ...Option) *Selector {
	s := &Selector{
		driver: NewSurveyDriver(),
		preset: make(map[string]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Select prompts for a template, then for each of its parameters.
func (s *Selector) Select(ctx context.Context, available []project.Spec) (orchestrator.Selection, error) {
	if len(available) == 0 {
		return orchestrator.Selection{}, ErrNoTemplates
	}

	spec, err := s.chooseSpec(ctx, available)
	if err != nil {
		return orchestrator.Selection{}, err
	}

	values := make(map[string]string, len(s.preset)+len(spec.Parameters()))
	for key, value := range s.preset {
		values[key] = value
	}
	for _, param := range spec.Parameters() {
		if _, ok := s.preset[param.Name()]; ok {
			continue
		}
		value, err := s.promptParameter(ctx, param)
		if err != nil {
			return orchestrator.Selection{}, err
		}
		values[param.Name()] = value
	}
	return orchestrator.Selection{SpecID: spec.ID(), Values: values}, nil
}

func (s *Selector) chooseSpec(ctx context.Context, available []project.Spec) (project.Spec, error) {
	if s.specID != "" {
		for _, spec := range available {
			if spec.ID() == s.specID {
				return spec, nil
			}
		}
		return project.Spec{}, &project.ConfigError{
			Subject: fmt.Sprintf("template %q", s.specID),
			Reason:  "not offered by any applied plugin",
		}
	}
	if len(available) == 1 {
		if err := s.driver.Info(ctx, fmt.Sprintf("Using template %s", available[0])); err != nil {
			return project.Spec{}, err
		}
		return available[0], nil
	}

	options := make([]string, len(available))
	for i, spec := range available {
		options[i] = spec.String()
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: "Select type of project to generate:",
		Options: options,
	})
	if err != nil {
		return project.Spec{}, err
	}
	if idx < 0 || idx >= len(available) {
		return project.Spec{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return available[idx], nil
}

func (s *Selector) promptParameter(ctx context.Context, param project.Parameter) (string, error) {
	message := param.Description()
	if message == "" {
		message = param.Name()
	}

	switch param.Kind() {
	case project.KindBoolean:
		def, _ := param.Default().(bool)
		answer, err := s.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(answer), nil
	case project.KindEnum:
		allowed := param.Allowed()
		def, _ := param.Default().(string)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      allowed,
			DefaultIndex: indexOf(allowed, def),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(allowed) {
			return "", fmt.Errorf("prompt: selection %d out of range for %s", idx, param.Name())
		}
		return allowed[idx], nil
	case project.KindInteger:
		return s.driver.Input(ctx, InputConfig{
			Message: message,
			Default: fmt.Sprint(param.Default()),
			Validator: func(answer string) error {
				_, err := param.Coerce(answer)
				return err
			},
		})
	default:
		def, _ := param.Default().(string)
		return s.driver.Input(ctx, InputConfig{Message: message, Default: def})
	}
}
