package plugin

import (
	"errors"
	"fmt"
	"reflect"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
)

var (
	// ErrNilPlugin is returned when a chain entry is nil or wraps a nil transform.
	ErrNilPlugin = errors.New("plugin is nil")

	// ErrDuplicatePlugin is returned when two chain entries share a name.
	ErrDuplicatePlugin = errors.New("duplicate plugin name")

	// ErrInvalidMetadata is returned when a plugin's metadata fails validation.
	ErrInvalidMetadata = errors.New("invalid plugin metadata")
)

// Chain is an immutable, ordered list of plugins. Order is significant: each
// plugin sees the output of the one before it.
type Chain struct {
	plugins []Plugin
}

// NewChain validates plugins and returns them as a chain in the given order.
// Nil entries, nil transforms, invalid metadata and duplicate names are rejected.
func NewChain(plugins ...Plugin) (*Chain, error) {
	seen := make(map[string]int, len(plugins))
	list := make([]Plugin, 0, len(plugins))

	for i, p := range plugins {
		if isNil(p) {
			return nil, chainError(i, "", ErrNilPlugin)
		}
		if fp, ok := p.(*funcPlugin); ok && fp.fn == nil {
			return nil, chainError(i, fp.metadata.Name, ErrNilPlugin)
		}

		meta := p.Metadata()
		if err := meta.Validate(); err != nil {
			return nil, chainError(i, meta.Name, fmt.Errorf("%w: %w", ErrInvalidMetadata, err))
		}
		if prev, dup := seen[meta.Name]; dup {
			return nil, chainError(i, meta.Name, fmt.Errorf("%w: also at position %d", ErrDuplicatePlugin, prev))
		}
		seen[meta.Name] = i
		list = append(list, p)
	}

	return &Chain{plugins: list}, nil
}

// MustChain is like NewChain but panics on error. Intended for fixed, compiled-in chains.
func MustChain(plugins ...Plugin) *Chain {
	c, err := NewChain(plugins...)
	if err != nil {
		panic(err)
	}
	return c
}

// Plugins returns a copy of the chain's plugins in order.
func (c *Chain) Plugins() []Plugin {
	out := make([]Plugin, len(c.plugins))
	copy(out, c.plugins)
	return out
}

// Names returns the plugin names in order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.plugins))
	for i, p := range c.plugins {
		names[i] = p.Metadata().Name
	}
	return names
}

// Len returns the number of plugins.
func (c *Chain) Len() int {
	return len(c.plugins)
}

func chainError(position int, name string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryPlugin, "invalid plugin chain").
		WithContext("position", position).
		WithPlugin(name).
		Build()
}

func isNil(p Plugin) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Slice, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
