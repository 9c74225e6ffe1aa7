package commands

import (
	"fmt"

	"git.home.luguber.info/inful/doccompile/internal/metrics"
)

// CompileCmd implements the default 'compile' command.
type CompileCmd struct {
	ModeArgs `embed:""`

	FailFast bool `name:"fail-fast" help:"Abort on the first file that cannot be compiled"`
}

func (c *CompileCmd) Run(g *Global, root *CLI) error {
	s, err := root.Prepare(c.TestMode())
	if err != nil {
		return err
	}
	comp, err := s.NewCompiler(metrics.NoopRecorder{}, c.FailFast)
	if err != nil {
		return err
	}

	report, err := comp.Compile(g.Context, s.Profile)
	if report != nil && g.Stdout != nil {
		_, _ = fmt.Fprintf(g.Stdout, "%s -> %s: %s\n", s.Profile.SourceRoot, s.Profile.OutputRoot, report.Summary())
		for _, f := range report.Failures {
			_, _ = fmt.Fprintf(g.Stdout, "  failed: %s\n", f)
		}
	}
	return err
}
