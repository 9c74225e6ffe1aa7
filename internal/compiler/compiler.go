// Package compiler drives a compile run: it cleans the output root, walks the
// source root, and writes every non-skipped file through the plugin pipeline to
// its mirrored location.
//
// Runs against the same output root must be serialized by the caller.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/doccompile/internal/discovery"
	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/mode"
	"git.home.luguber.info/inful/doccompile/internal/pipeline"
	"git.home.luguber.info/inful/doccompile/internal/plugin"
	"git.home.luguber.info/inful/doccompile/internal/skipmarker"
)

// Compiler compiles a source tree with a fixed plugin chain.
type Compiler struct {
	chain    *plugin.Chain
	recorder metrics.Recorder
	logger   *slog.Logger
	failFast bool
	now      func() time.Time
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Compiler) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the base logger. Each run derives a logger carrying its run id.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFailFast aborts the run on the first per-file failure instead of
// recording it and continuing.
func WithFailFast(enabled bool) Option {
	return func(c *Compiler) {
		c.failFast = enabled
	}
}

// New creates a compiler applying chain to every file. A nil chain copies files unchanged.
func New(chain *plugin.Chain, options ...Option) *Compiler {
	if chain == nil {
		chain = plugin.MustChain()
	}
	c := &Compiler{
		chain:    chain,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Compile performs one run for profile. The returned report is non-nil whenever
// the output root was touched. A non-nil error is classified: missing source root
// (not_found), unsafe layout (validation), cleanup failure (filesystem), per-file
// failures (build, wrapping ErrFilesFailed) and cancellation (runtime, wrapping ErrCanceled).
func (c *Compiler) Compile(ctx context.Context, profile mode.Profile) (*Report, error) {
	runID := uuid.NewString()
	log := c.logger.With(logfields.RunID(runID), logfields.Mode(string(profile.Name)))

	if err := validateLayout(profile); err != nil {
		return nil, err
	}

	report := newReport(runID, profile, c.now())
	defer func() {
		c.recorder.ObserveRunDuration(report.Duration())
		c.recorder.IncRunOutcome(report.Outcome)
	}()

	if err := c.clean(profile.OutputRoot, log); err != nil {
		report.abort(c.now())
		return report, err
	}

	files, err := discovery.ListFiles(profile.SourceRoot)
	if err != nil {
		report.abort(c.now())
		return report, classifyDiscovery(err, profile.SourceRoot)
	}
	report.Files = len(files)

	runner := pipeline.NewRunner(c.chain, pipeline.WithRecorder(c.recorder), pipeline.WithLogger(log))
	options := plugin.NewCompileOptions(profile.TestMode, profile.SourceRoot, log)

	for _, file := range files {
		if ctx.Err() != nil {
			report.finish(c.now(), true)
			log.Warn("Compile canceled", slog.Int("remaining", report.Files-report.Compiled-report.Skipped-report.Failed()))
			return report, ferrors.WrapError(fmt.Errorf("%w: %w", ErrCanceled, ctx.Err()), ferrors.CategoryRuntime, "compile canceled").
				WithRunID(runID).
				Build()
		}

		failure := c.compileFile(file, profile.OutputRoot, runner, options, report, log)
		if failure == nil {
			continue
		}
		report.Failures = append(report.Failures, *failure)
		c.recorder.IncFileResult(metrics.FileFailed)
		log.Error("Failed to compile file",
			logfields.RelPath(file.SlashPath()),
			slog.String("stage", string(failure.Stage)),
			logfields.Error(failure.Err))

		if c.failFast {
			report.finish(c.now(), false)
			return report, fileError(failure, runID)
		}
	}

	report.finish(c.now(), false)
	log.Info("Compile finished",
		logfields.Count("files", report.Files),
		logfields.Count("compiled", report.Compiled),
		logfields.Count("skipped", report.Skipped),
		logfields.Count("failed", report.Failed()),
		logfields.DurationMS(float64(report.Duration().Microseconds())/1000))

	if report.Failed() > 0 {
		return report, ferrors.WrapError(ErrFilesFailed, ferrors.CategoryBuild, "compile finished with failures").
			WithRunID(runID).
			WithContext("failed", report.Failed()).
			WithContext("first_failure", report.Failures[0].String()).
			Build()
	}
	return report, nil
}

// compileFile processes a single entry. It returns nil on success or skip.
func (c *Compiler) compileFile(file discovery.FileEntry, outputRoot string, runner *pipeline.Runner,
	options plugin.CompileOptions, report *Report, log *slog.Logger,
) *FileFailure {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return &FileFailure{RelPath: file.SlashPath(), Stage: StageRead, Err: err}
	}
	content := string(data)

	if skipmarker.ShouldSkip(content) {
		report.Skipped++
		c.recorder.IncFileResult(metrics.FileSkipped)
		log.Info("Skipped file", logfields.Path(file.Path), logfields.Reason("skip marker"))
		return nil
	}

	out, err := runner.Run(content, options)
	if err != nil {
		return &FileFailure{RelPath: file.SlashPath(), Stage: StageTransform, Err: err}
	}

	dest := filepath.Join(outputRoot, file.RelativePath)
	if err := writeFileAtomic(dest, []byte(out)); err != nil {
		return &FileFailure{RelPath: file.SlashPath(), Stage: StageWrite, Err: err}
	}

	report.Compiled++
	c.recorder.IncFileResult(metrics.FileCompiled)
	log.Info("Compiled file", logfields.Source(file.Path), logfields.Destination(dest))
	return nil
}

// clean removes outputRoot recursively. A missing directory is not an error.
func (c *Compiler) clean(outputRoot string, log *slog.Logger) error {
	if _, err := os.Lstat(outputRoot); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := os.RemoveAll(outputRoot); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to clean output directory").
			WithPath(outputRoot).
			Fatal().
			Build()
	}
	log.Info("Cleaned output directory", logfields.Path(outputRoot))
	return nil
}

// validateLayout checks the source root before anything is deleted.
func validateLayout(profile mode.Profile) error {
	info, err := os.Stat(profile.SourceRoot)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return ferrors.WrapError(discovery.ErrSourceRootNotFound, ferrors.CategoryNotFound, "source root not found").
			WithPath(profile.SourceRoot).
			Fatal().
			Build()
	case err != nil:
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot access source root").
			WithPath(profile.SourceRoot).
			Fatal().
			Build()
	case !info.IsDir():
		return ferrors.WrapError(discovery.ErrSourceRootNotDir, ferrors.CategoryValidation, "source root is not a directory").
			WithPath(profile.SourceRoot).
			Fatal().
			Build()
	}

	src := filepath.Clean(profile.SourceRoot)
	out := filepath.Clean(profile.OutputRoot)
	if src == out || strings.HasPrefix(src, out+string(filepath.Separator)) {
		return ferrors.WrapError(ErrUnsafeOutputRoot, ferrors.CategoryValidation, "refusing to clean output root").
			WithContext("source", src).
			WithContext("output", out).
			Fatal().
			Build()
	}
	return nil
}

func classifyDiscovery(err error, root string) error {
	category := ferrors.CategoryFileSystem
	switch {
	case errors.Is(err, discovery.ErrSourceRootNotFound):
		category = ferrors.CategoryNotFound
	case errors.Is(err, discovery.ErrSourceRootNotDir):
		category = ferrors.CategoryValidation
	}
	return ferrors.WrapError(err, category, "failed to list source files").
		WithPath(root).
		Build()
}

func fileError(failure *FileFailure, runID string) error {
	category := ferrors.CategoryFileSystem
	if failure.Stage == StageTransform {
		category = ferrors.CategoryPlugin
	}
	return ferrors.WrapError(fmt.Errorf("%w: %w", ErrFilesFailed, failure.Err), category, "compile aborted").
		WithRunID(runID).
		WithPath(failure.RelPath).
		WithStage(string(failure.Stage)).
		Build()
}
