// Package imports implements the @import:path@ transform, which inlines the
// contents of another file from the active source root.
package imports

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

// Name is the plugin name used in chains and logs.
const Name = "imports"

var tokenPattern = regexp.MustCompile(`@import:([^@]+)@`)

// Plugin replaces every @import:path@ token with the referenced file's contents.
// Paths are trimmed and resolved against CompileOptions.SourceRoot. Inclusion is a
// single pass: tokens inside imported content are not expanded again.
type Plugin struct{}

// New returns the import plugin.
func New() *Plugin {
	return &Plugin{}
}

// Metadata implements plugin.Plugin.
func (p *Plugin) Metadata() plugin.PluginMetadata {
	return plugin.PluginMetadata{
		Name:        Name,
		Version:     "v1.0.0",
		Description: "Inlines files referenced with @import:path@",
		Capabilities: []plugin.Capability{
			plugin.CapabilityReadsFiles,
			plugin.CapabilityDiagnostics,
		},
	}
}

// Transform implements plugin.Plugin.
func (p *Plugin) Transform(content string, options plugin.CompileOptions) string {
	if !strings.Contains(content, "@import:") {
		return content
	}
	log := options.Log().With(logfields.Plugin(Name))

	return tokenPattern.ReplaceAllStringFunc(content, func(token string) string {
		ref := tokenPattern.FindStringSubmatch(token)[1]
		data, reason := read(options.SourceRoot, ref)
		if reason != "" {
			log.Warn("Import target not found",
				logfields.Token(token),
				logfields.Path(strings.TrimSpace(ref)),
				logfields.Reason(reason))
			return token
		}
		return data
	})
}

// read resolves ref under root and returns its content, or a non-empty reason
// explaining why the reference is unresolved.
func read(root, ref string) (string, string) {
	rel := strings.TrimSpace(ref)
	if root == "" {
		return "", "no source root"
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !within(root, target) {
		return "", "outside source root"
	}

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", "does not exist"
	case err != nil:
		return "", err.Error()
	case info.IsDir():
		return "", "is a directory"
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", err.Error()
	}
	return string(data), ""
}

func within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

var _ plugin.Plugin = (*Plugin)(nil)
