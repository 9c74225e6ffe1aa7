// Package pipeline applies a plugin chain to document content.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
)

// Runner applies every plugin of a chain, in order, to a piece of content.
type Runner struct {
	chain    *plugin.Chain
	recorder metrics.Recorder
	logger   *slog.Logger
}

// RunnerOption configures runner behavior.
type RunnerOption func(*Runner)

// WithRecorder sets the recorder receiving per-plugin durations.
func WithRecorder(r metrics.Recorder) RunnerOption {
	return func(rn *Runner) {
		if r != nil {
			rn.recorder = r
		}
	}
}

// WithLogger sets the logger used for per-plugin debug output.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(rn *Runner) {
		if l != nil {
			rn.logger = l
		}
	}
}

// NewRunner creates a runner for chain. A nil chain runs no plugins.
func NewRunner(chain *plugin.Chain, options ...RunnerOption) *Runner {
	if chain == nil {
		chain = plugin.MustChain()
	}
	r := &Runner{
		chain:    chain,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Chain returns the chain the runner applies.
func (r *Runner) Chain() *plugin.Chain {
	return r.chain
}

// Run feeds content through each plugin and returns the final output. A plugin
// that panics aborts the run with a *plugin.PluginError; no partial result is
// returned.
func (r *Runner) Run(content string, options plugin.CompileOptions) (string, error) {
	for i, p := range r.chain.Plugins() {
		name := p.Metadata().Name
		start := time.Now()

		out, err := apply(p, i, name, content, options)
		elapsed := time.Since(start)
		r.recorder.ObservePluginDuration(name, elapsed)
		if err != nil {
			return "", err
		}

		r.logger.Debug("Applied plugin",
			logfields.Plugin(name),
			logfields.DurationMS(float64(elapsed.Microseconds())/1000),
			slog.Bool("changed", out != content))
		content = out
	}
	return content, nil
}

// Run applies chain to content with a default runner.
func Run(content string, chain *plugin.Chain, options plugin.CompileOptions) (string, error) {
	return NewRunner(chain).Run(content, options)
}

func apply(p plugin.Plugin, position int, name, content string, options plugin.CompileOptions) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = plugin.NewPluginError(name, "transform", fmt.Errorf("panic: %v", rec)).At(position)
		}
	}()
	return p.Transform(content, options), nil
}
