// Package metrics exports dispatcher activity and process memory as
// Prometheus metrics. Collector implements the dispatcher observer hook.
package metrics
