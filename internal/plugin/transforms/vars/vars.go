// Package vars implements the @var:NAME@ transform backed by a dictionary file.
package vars

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

// Name is the plugin name used in chains and logs.
const Name = "vars"

var tokenPattern = regexp.MustCompile(`@var:([^@]+)@`)

// Plugin substitutes @var:NAME@ tokens. Names are trimmed and looked up
// case-sensitively; unknown names leave the token in place.
type Plugin struct {
	dict Dictionary
}

// New returns a plugin resolving against dict. A nil dict resolves nothing.
func New(dict Dictionary) *Plugin {
	return &Plugin{dict: dict}
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:         Name,
		Version:      "v1.0.0",
		Description:  "Substitutes @var:NAME@ tokens from the variable dictionary",
		Capabilities: []plugin.Capability{plugin.CapabilityDiagnostics},
	}
}

// Transform implements plugin.Plugin.
func (p *Plugin) Transform(content string, options plugin.CompileOptions) string {
	if !strings.Contains(content, "@var:") {
		return content
	}

	return tokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		key := strings.TrimSpace(tokenPattern.FindStringSubmatch(token)[1])
		if value, ok := p.dict[key]; ok {
			return value
		}
		options.Log().Warn("Unresolved variable",
			logfields.Plugin(Name),
			logfields.Token(token))
		return token
	})
}

var _ plugin.Plugin = (*Plugin)(nil)
