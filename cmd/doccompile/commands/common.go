// Package commands implements the doccompile CLI commands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/doccompile/internal/compiler"
	"git.home.luguber.info/inful/doccompile/internal/config"
	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/mode"
	"git.home.luguber.info/inful/doccompile/internal/plugin/transforms"
	"git.home.luguber.info/inful/doccompile/internal/plugin/transforms/vars"
	"git.home.luguber.info/inful/doccompile/internal/workspace"
)

// Global carries process-wide state into command Run methods.
type Global struct {
	Context context.Context
	Stdout  io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: doccompile.yaml in the project root)" type:"path"`
	Root      string           `short:"r" help:"Project root (default: working directory or enclosing git worktree)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text|json), overrides log.format"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Compile CompileCmd `cmd:"" default:"withargs" help:"Compile src/ into dist/ (or test/src/ into test/build/ with 'test')"`
	Watch   WatchCmd   `cmd:"" help:"Compile, then recompile whenever the source tree changes"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; installs a logger from the flags and
// environment. It is replaced once the configuration file is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.ResolveLogLevel(c.Verbose, os.Getenv(config.EnvLogLevel), nil)
	slog.SetDefault(newLogger(os.Stderr, level, config.NormalizeLogFormat(c.LogFormat)))
	return nil
}

// Session is the resolved state shared by the compile and watch commands.
type Session struct {
	Root    workspace.Root
	Config  *config.Config
	Profile mode.Profile
	Logger  *slog.Logger
}

// Prepare loads dotenv files, resolves the project root, loads the
// configuration and reinstalls the logger with the configured level and format.
func (c *CLI) Prepare(testMode bool) (*Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	loaded, err := config.LoadEnvFiles(cwd)
	if err != nil {
		slog.Warn("Failed to load .env file", logfields.Error(err))
	}

	root, err := workspace.Resolve(c.Root, cwd)
	if err != nil {
		return nil, err
	}

	cfgPath := c.Config
	if cfgPath == "" {
		cfgPath = filepath.Join(root.Path, config.DefaultFileName)
	}
	cfg, err := config.Load(cfgPath, c.Config != "")
	if err != nil {
		return nil, err
	}

	format := cfg.Log.Format
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	logger := newLogger(os.Stderr, config.ResolveLogLevel(c.Verbose, os.Getenv(config.EnvLogLevel), cfg), format)
	slog.SetDefault(logger)

	for _, f := range loaded {
		logger.Debug("Loaded environment file", logfields.Path(f))
	}
	logger.Debug("Resolved project root", logfields.Path(root.Path), slog.String("via", string(root.Source)))

	return &Session{
		Root:    root,
		Config:  cfg,
		Profile: mode.Resolve(root.Path, testMode),
		Logger:  logger,
	}, nil
}

// NewCompiler loads the variable dictionary and assembles the default chain.
func (s *Session) NewCompiler(recorder metrics.Recorder, failFast bool) (*compiler.Compiler, error) {
	dict, err := vars.LoadDictionary(s.Config.DictionaryPath(s.Root.Path), s.Config.DictionaryRequired())
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("Loaded variable dictionary", logfields.Count("variables", len(dict)))

	chain, err := transforms.Default(transforms.Settings{
		Dictionary: dict,
		TOCTitle:   s.Config.TOC.Title,
	})
	if err != nil {
		return nil, err
	}

	return compiler.New(chain,
		compiler.WithLogger(s.Logger),
		compiler.WithRecorder(recorder),
		compiler.WithFailFast(failFast || s.Config.FailFast),
	), nil
}

// ModeArgs is embedded by commands that accept the optional "test" argument.
// Positional arguments other than "test" are accepted and ignored.
type ModeArgs struct {
	Mode []string `arg:"" optional:"" name:"mode" help:"Pass 'test' to compile test/src -> test/build instead of src -> dist"`
	Test bool     `help:"Same as passing the 'test' argument"`
}

// TestMode reports whether the test layout was requested.
func (m ModeArgs) TestMode() bool {
	return m.Test || mode.FromArgs(m.Mode)
}

func newLogger(w io.Writer, level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
