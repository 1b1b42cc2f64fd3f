package project

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalState marks invariant violations. They indicate a bug in a
	// caller or an extension and must never be reported as bad user input.
	ErrInternalState = errors.New("internal state error")
	// ErrConfig marks recoverable configuration mistakes the user can fix.
	ErrConfig = errors.New("configuration error")
)

// InternalError describes an invariant violation.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %s", ErrInternalState, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInternalState, e.Op, e.Msg)
}

func (e *InternalError) Is(target error) bool {
	return target == ErrInternalState
}

// ConfigError reports a malformed plugin token or a parameter value that does
// not satisfy its declaration. Subject names the token or parameter.
type ConfigError struct {
	Subject string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", ErrConfig, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfig, e.Subject, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// DiscoveryError wraps a failure raised by a supplier while listing its
// templates. It aborts the whole discovery pass.
type DiscoveryError struct {
	Supplier string
	Err      error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discovery failed in supplier %q: %v", e.Supplier, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsInternal reports whether err is, or wraps, an invariant violation.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternalState)
}

// IsConfig reports whether err is, or wraps, a configuration error.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
