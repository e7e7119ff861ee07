// Package metrics records what a preprocessing run did.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so nothing needs a nil check:
//
//	p := mdbook.Preprocessor{Recorder: metrics.NoopRecorder{}}
//
// The CLI swaps in a PrometheusRecorder when --metrics-file is set and
// writes the registry out in the node_exporter textfile format once the
// run finishes:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	...
//	err := metrics.WriteTextfile(path, reg)
//
// Every Recorder must be safe for concurrent use; chapters are annotated
// in parallel.
package metrics
