// Package transforms assembles the built-in content transforms into the chain
// used by the compiler.
package transforms

import (
	"git.home.luguber.info/inful/doccompile/internal/plugin"
	"git.home.luguber.info/inful/doccompile/internal/plugin/transforms/imports"
	"git.home.luguber.info/inful/doccompile/internal/plugin/transforms/toc"
	"git.home.luguber.info/inful/doccompile/internal/plugin/transforms/vars"
)

// Settings configures the built-in transforms.
type Settings struct {
	// Dictionary resolves @var:NAME@ tokens.
	Dictionary vars.Dictionary

	// TOCTitle heads generated tables of contents. Empty selects toc.DefaultTitle.
	TOCTitle string
}

// Default returns the standard chain: imports, then vars, then toc.
// Imports run first so included content gets its variables substituted, and
// toc runs last so it indexes headings from included files.
func Default(settings Settings) (*plugin.Chain, error) {
	return plugin.NewChain(
		imports.New(),
		vars.New(settings.Dictionary),
		toc.New(settings.TOCTitle),
	)
}
