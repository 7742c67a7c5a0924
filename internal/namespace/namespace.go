// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package namespace

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// Wildcard turns the pattern it terminates into a prefix match.
	Wildcard = "*"

	excludePrefix = "-"
	separator     = ","
)

// Pattern is a single inclusion or exclusion entry of a Spec.
type Pattern struct {
	value string
}

// NewPattern returns a Pattern for raw, without any exclusion prefix handling.
func NewPattern(raw string) Pattern {
	return Pattern{value: strings.TrimSpace(raw)}
}

func (p Pattern) String() string {
	return p.value
}

// IsPrefix reports whether the pattern ends with the Wildcard.
func (p Pattern) IsPrefix() bool {
	return strings.HasSuffix(p.value, Wildcard)
}

// Matches reports whether namespace is equal to the pattern, or starts with the
// pattern prefix when the pattern ends with the Wildcard.
func (p Pattern) Matches(namespace string) bool {
	if prefix, ok := strings.CutSuffix(p.value, Wildcard); ok {
		return strings.HasPrefix(namespace, prefix)
	}

	return p.value == namespace
}

// AlwaysOn reports whether a channel namespace carries the trailing Wildcard that
// keeps it active regardless of the applied Spec.
func AlwaysOn(namespace string) bool {
	return strings.HasSuffix(namespace, Wildcard)
}

// Spec is a parsed activation string.
type Spec struct {
	includes []Pattern
	excludes []Pattern
}

// Parse splits raw on commas and whitespace. Empty tokens and a lone '-' are ignored,
// so a malformed spec never fails as a whole.
func Parse(raw string) Spec {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return string(r) == separator || unicode.IsSpace(r)
	})

	spec := Spec{}
	for _, field := range fields {
		if excluded, ok := strings.CutPrefix(field, excludePrefix); ok {
			if excluded != "" {
				spec.excludes = append(spec.excludes, NewPattern(excluded))
			}
			continue
		}

		spec.includes = append(spec.includes, NewPattern(field))
	}

	return spec
}

// HasInclusion reports whether pattern is listed verbatim as an inclusion.
func (s Spec) HasInclusion(pattern Pattern) bool {
	return slices.Contains(s.includes, pattern)
}

// Excluded reports whether any exclusion pattern matches namespace.
func (s Spec) Excluded(namespace string) bool {
	return slices.ContainsFunc(s.excludes, func(p Pattern) bool { return p.Matches(namespace) })
}

// Included reports whether any inclusion pattern matches namespace.
func (s Spec) Included(namespace string) bool {
	return slices.ContainsFunc(s.includes, func(p Pattern) bool { return p.Matches(namespace) })
}

// Enabled decides the activation of a channel namespace: exclusions always win,
// always-on namespaces need no inclusion, every other namespace needs one.
func (s Spec) Enabled(namespace string) bool {
	if s.Excluded(namespace) {
		return false
	}

	if AlwaysOn(namespace) {
		return true
	}

	return s.Included(namespace)
}

// String returns the canonical form of the spec: inclusions first, then exclusions,
// comma separated.
func (s Spec) String() string {
	tokens := make([]string, 0, len(s.includes)+len(s.excludes))
	for _, p := range s.includes {
		tokens = append(tokens, p.value)
	}
	for _, p := range s.excludes {
		tokens = append(tokens, excludePrefix+p.value)
	}

	return strings.Join(tokens, separator)
}
