package plugin

import "fmt"

// Capability describes optional behavior a plugin declares.
type Capability string

const (
	// CapabilityReadsFiles marks plugins that read other files from the source tree.
	CapabilityReadsFiles Capability = "reads-files"

	// CapabilityDiagnostics marks plugins that log warnings for unresolved references.
	CapabilityDiagnostics Capability = "diagnostics"

	// CapabilityAggregates marks plugins that summarize the whole document and therefore
	// belong after every content-producing plugin.
	CapabilityAggregates Capability = "aggregates"
)

// IsValid returns true if the capability is recognized.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityReadsFiles, CapabilityDiagnostics, CapabilityAggregates:
		return true
	default:
		return false
	}
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// PluginError attributes a failure to one plugin in a chain.
type PluginError struct {
	PluginName string
	// Position is the plugin's zero-based index in its chain, or -1 when unknown.
	Position  int
	Operation string
	Err       error
}

func (e *PluginError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("plugin %s: %s: %v", e.PluginName, e.Operation, e.Err)
	}
	return fmt.Sprintf("plugin %s (#%d): %s: %v", e.PluginName, e.Position, e.Operation, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

// NewPluginError returns a PluginError with an unknown position.
func NewPluginError(pluginName, operation string, err error) *PluginError {
	return &PluginError{PluginName: pluginName, Position: -1, Operation: operation, Err: err}
}

// At returns a copy of e placed at position in the chain.
func (e *PluginError) At(position int) *PluginError {
	cp := *e
	cp.Position = position
	return &cp
}
