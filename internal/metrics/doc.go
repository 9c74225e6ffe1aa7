// Package metrics provides the observability hooks for compile runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	c := compiler.New(chain, compiler.WithRecorder(metrics.NoopRecorder{}))
//
// The watch command swaps in a PrometheusRecorder and serves it with
// HTTPHandler when a metrics listen address is configured.
package metrics
