// Package normalization maps loosely formatted configuration strings onto typed enums.
package normalization

import (
	"fmt"
	"slices"
	"strings"
)

// Normalizer matches input case-insensitively, ignoring surrounding
// whitespace, against a fixed set of enum values and their aliases.
type Normalizer[T ~string] struct {
	lookup   map[string]T
	fallback T
	names    []string
}

// NewNormalizer accepts each value under its own name. The fallback is
// returned for empty input.
func NewNormalizer[T ~string](fallback T, values ...T) *Normalizer[T] {
	n := &Normalizer[T]{lookup: make(map[string]T, len(values)), fallback: fallback}
	for _, v := range values {
		key := clean(string(v))
		n.lookup[key] = v
		n.names = append(n.names, key)
	}
	slices.Sort(n.names)
	return n
}

// Alias accepts alias as another spelling of value. Aliases are not listed
// in error messages.
func (n *Normalizer[T]) Alias(alias string, value T) *Normalizer[T] {
	n.lookup[clean(alias)] = value
	return n
}

// Normalize returns the matching value, or the fallback when raw is not recognized.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.lookup[clean(raw)]; ok {
		return v
	}
	return n.fallback
}

// NormalizeWithError is Normalize, but unknown non-empty input is an error.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	key := clean(raw)
	if key == "" {
		return n.fallback, nil
	}
	if v, ok := n.lookup[key]; ok {
		return v, nil
	}
	return "", fmt.Errorf("invalid value %q, valid options: %s", raw, strings.Join(n.names, ", "))
}

// Names returns the canonical values, sorted.
func (n *Normalizer[T]) Names() []string {
	return slices.Clone(n.names)
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
