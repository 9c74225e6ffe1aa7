package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath and HealthPath are the routes served by NewMux.
const (
	MetricsPath = "/metrics"
	HealthPath  = "/healthz"
)

// HTTPHandler serves reg in the Prometheus exposition format. A nil reg
// falls back to the default registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          reg,
	})
}

// NewMux routes MetricsPath to reg and answers HealthPath with 200 while
// the watcher process is up.
func NewMux(reg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(MetricsPath, HTTPHandler(reg))
	mux.HandleFunc(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}
