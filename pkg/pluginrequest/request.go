// Package pluginrequest parses the comma separated list of extensions that
// must be activated before template discovery runs.
package pluginrequest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-initgen/pkg/project"
)

// PropertyName is the historical name of the setting carrying the request
// list. It is accepted as an alias key by the configuration layer; the parser
// itself never reads process state.
const PropertyName = "org.gradle.internal.buildinit.template.plugins"

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+(\.[A-Za-z0-9_-]+)*$`)
	versionPattern    = regexp.MustCompile(`^[^\s:,]+$`)
)

// Request names one extension to force-activate, optionally pinned to a
// version.
type Request struct {
	ID      string
	Version string
}

// HasVersion reports whether the request pins a version.
func (r Request) HasVersion() bool {
	return r.Version != ""
}

func (r Request) String() string {
	if r.Version == "" {
		return r.ID
	}
	return r.ID + ":" + r.Version
}

// Parse splits raw into requests, preserving order. Empty or whitespace-only
// input yields no requests. Every malformed token is reported as a
// ConfigError carrying the token; nothing is dropped.
func Parse(raw string) ([]Request, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	tokens := strings.Split(raw, ",")
	requests := make([]Request, 0, len(tokens))
	for _, token := range tokens {
		req, err := ParseToken(token)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// ParseToken parses a single `identifier` or `identifier:version` token.
func ParseToken(token string) (Request, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return Request{}, malformed(token, "empty plugin request")
	}

	id, version, hasVersion := strings.Cut(trimmed, ":")
	id = strings.TrimSpace(id)
	version = strings.TrimSpace(version)

	if !identifierPattern.MatchString(id) {
		return Request{}, malformed(token, fmt.Sprintf("invalid plugin id %q", id))
	}
	if hasVersion {
		if version == "" {
			return Request{}, malformed(token, "version is empty")
		}
		if !versionPattern.MatchString(version) {
			return Request{}, malformed(token, fmt.Sprintf("invalid version %q", version))
		}
	}
	return Request{ID: id, Version: version}, nil
}

// Format joins requests back into the textual list form.
func Format(requests []Request) string {
	parts := make([]string, 0, len(requests))
	for _, req := range requests {
		parts = append(parts, req.String())
	}
	return strings.Join(parts, ",")
}

func malformed(token, reason string) error {
	return &project.ConfigError{
		Subject: fmt.Sprintf("plugin request %q", token),
		Reason:  reason,
	}
}
