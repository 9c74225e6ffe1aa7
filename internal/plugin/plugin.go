// Package plugin defines the content transform contract and the ordered chain
// that applies transforms to every compiled file.
package plugin

import (
	"fmt"
	"regexp"
)

// Plugin is a content transform applied at a fixed position in the chain.
//
// Transform must be reproducible for the same content and options. It may perform
// read-only lookups (resolving a path, reading a referenced file) but must never fail
// on an unresolvable reference: the matched text is left as-is and a diagnostic is
// logged through options.Log().
type Plugin interface {
	// Metadata returns the plugin's identity.
	Metadata() PluginMetadata

	// Transform rewrites content and returns the result.
	Transform(content string, options CompileOptions) string
}

// PluginMetadata describes a plugin's identity and capabilities.
type PluginMetadata struct {
	// Name is the unique plugin identifier within a chain (e.g., "imports", "toc").
	Name string

	// Version is the semantic version (e.g., "v1.0.0").
	Version string

	// Description provides a human-readable summary of the plugin's purpose.
	Description string

	// Capabilities lists optional behaviors, see the Capability constants.
	Capabilities []Capability
}

var validName = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// String returns a human-readable representation of the plugin metadata.
func (m PluginMetadata) String() string {
	return fmt.Sprintf("%s@%s", m.Name, m.Version)
}

// Validate checks if the plugin metadata is valid.
func (m PluginMetadata) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if !validName.MatchString(m.Name) {
		return fmt.Errorf("invalid plugin name %q: use lower-case letters, digits and hyphens", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	for _, c := range m.Capabilities {
		if !c.IsValid() {
			return fmt.Errorf("invalid capability %q", c)
		}
	}
	return nil
}

// HasCapability reports whether the metadata lists c.
func (m PluginMetadata) HasCapability(c Capability) bool {
	for _, have := range m.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// TransformFunc is the function form of Plugin.Transform.
type TransformFunc func(content string, options CompileOptions) string

// funcPlugin adapts a TransformFunc to the Plugin interface.
type funcPlugin struct {
	metadata PluginMetadata
	fn       TransformFunc
}

// Func wraps fn as a Plugin named name. A nil fn is rejected when the chain is built.
func Func(name string, fn TransformFunc) Plugin {
	return &funcPlugin{
		metadata: PluginMetadata{Name: name, Version: "v0.0.0"},
		fn:       fn,
	}
}

func (p *funcPlugin) Metadata() PluginMetadata {
	return p.metadata
}

func (p *funcPlugin) Transform(content string, options CompileOptions) string {
	return p.fn(content, options)
}
