package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/doccompile/internal/foundation/errors"
	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/metrics"
	"git.home.luguber.info/inful/doccompile/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ModeArgs `embed:""`

	Debounce      time.Duration `help:"Quiet window after the last change before recompiling (default from config, 300ms)"`
	MetricsListen string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address (overrides metrics.listen)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	s, err := root.Prepare(w.TestMode())
	if err != nil {
		return err
	}
	if info, err := os.Stat(s.Profile.SourceRoot); err != nil || !info.IsDir() {
		return ferrors.NotFoundError("source root not found").
			WithPath(s.Profile.SourceRoot).
			Fatal().
			Build()
	}

	listen := s.Config.Metrics.Listen
	if w.MetricsListen != "" {
		listen = w.MetricsListen
	}
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if listen != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		stop := serveMetrics(listen, reg, s.Logger)
		defer stop()
	}

	comp, err := s.NewCompiler(recorder, false)
	if err != nil {
		return err
	}

	debounce := s.Config.DebounceDuration()
	if w.Debounce > 0 {
		debounce = w.Debounce
	}

	watcher := watch.New(s.Profile.SourceRoot,
		func(ctx context.Context) error {
			_, err := comp.Compile(ctx, s.Profile)
			return err
		},
		watch.WithDebounce(debounce),
		watch.WithRecorder(recorder),
		watch.WithLogger(s.Logger),
	)
	return watcher.Run(g.Context)
}

// serveMetrics starts the metrics and health endpoints and returns a function that stops it.
func serveMetrics(addr string, reg *prom.Registry, logger *slog.Logger) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.NewMux(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("Serving metrics", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", logfields.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("Metrics server shutdown error", logfields.Error(err))
		}
	}
}
