package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "doccompile"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runDuration    prom.Histogram
	runOutcome     *prom.CounterVec
	fileResults    *prom.CounterVec
	pluginDuration *prom.HistogramVec
	watchTriggers  prom.Counter
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total compile run duration",
			Buckets:   prom.DefBuckets,
		}),
		runOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Compile runs by final status",
		}, []string{"outcome"}),
		fileResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "file_results_total",
			Help:      "Processed files by result",
		}, []string{"result"}),
		pluginDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "plugin_duration_seconds",
			Help:      "Duration of a single plugin transform",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		}, []string{"plugin"}),
		watchTriggers: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_triggers_total",
			Help:      "Recompiles triggered by filesystem changes",
		}),
	}
	reg.MustRegister(pr.runDuration, pr.runOutcome, pr.fileResults, pr.pluginDuration, pr.watchTriggers)
	return pr
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome RunOutcome) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFileResult(result FileResult) {
	if p == nil || p.fileResults == nil {
		return
	}
	p.fileResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObservePluginDuration(plugin string, d time.Duration) {
	if p == nil || p.pluginDuration == nil {
		return
	}
	p.pluginDuration.WithLabelValues(plugin).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncWatchTrigger() {
	if p == nil || p.watchTriggers == nil {
		return
	}
	p.watchTriggers.Inc()
}
